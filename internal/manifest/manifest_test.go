package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mc-installer/internal/model"
)

func writeVersionJSON(t *testing.T, path string, d model.VersionDetails) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadManifestInheritNoParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "versions", "1.20.1", "1.20.1.json")
	writeVersionJSON(t, path, model.VersionDetails{ID: "1.20.1", MainClass: "net.minecraft.client.main.Main"})

	d, err := ReadManifestInherit(path, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != "1.20.1" {
		t.Fatalf("unexpected id %q", d.ID)
	}
}

func TestReadManifestInheritMergesParent(t *testing.T) {
	dir := t.TempDir()

	parentPath := filepath.Join(dir, "versions", "1.20.1", "1.20.1.json")
	writeVersionJSON(t, parentPath, model.VersionDetails{
		ID:         "1.20.1",
		Assets:     "1.20",
		Libraries:  []model.Library{{Name: "parent:lib:1.0"}},
		Arguments:  &model.Arguments{Game: []model.Argument{{Shape: model.ShapePlain, Plain: "--parentArg"}}},
	})

	childPath := filepath.Join(dir, "versions", "fabric-1.20.1", "fabric-1.20.1.json")
	writeVersionJSON(t, childPath, model.VersionDetails{
		ID:           "fabric-1.20.1",
		InheritsFrom: "1.20.1",
		MainClass:    "net.fabricmc.loader.impl.launch.knot.KnotClient",
		Libraries:    []model.Library{{Name: "fabric:loader:1.0"}},
		Arguments:    &model.Arguments{Game: []model.Argument{{Shape: model.ShapePlain, Plain: "--fabricArg"}}},
	})

	d, err := ReadManifestInherit(childPath, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID != "fabric-1.20.1" {
		t.Fatalf("child id must be preserved, got %q", d.ID)
	}
	if d.MainClass != "net.fabricmc.loader.impl.launch.knot.KnotClient" {
		t.Fatalf("child main class must be preserved, got %q", d.MainClass)
	}
	if d.Assets != "1.20" {
		t.Fatalf("assets must come from parent, got %q", d.Assets)
	}
	if d.InheritsFrom != "" {
		t.Fatalf("merged result must clear inheritsFrom")
	}
	if len(d.Libraries) != 2 || d.Libraries[0].Name != "parent:lib:1.0" || d.Libraries[1].Name != "fabric:loader:1.0" {
		t.Fatalf("libraries must be parent-then-child, got %+v", d.Libraries)
	}
	if len(d.Arguments.Game) != 2 || d.Arguments.Game[0].Plain != "--parentArg" || d.Arguments.Game[1].Plain != "--fabricArg" {
		t.Fatalf("game arguments must be parent-then-child, got %+v", d.Arguments.Game)
	}
}

func TestResolveVersionDetailsOfflineServesFromCache(t *testing.T) {
	cacheDir := t.TempDir()
	c := NewClient()

	want := &model.VersionDetails{ID: "1.20.1", MainClass: "net.minecraft.client.main.Main"}
	if err := c.cacheVersionDetails(cacheDir, "1.20.1", want); err != nil {
		t.Fatalf("priming cache: %v", err)
	}

	got, err := c.ResolveVersionDetails(context.Background(), "1.20.1", cacheDir, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID || got.MainClass != want.MainClass {
		t.Fatalf("cached details mismatch: %+v", got)
	}
}

func TestResolveVersionDetailsOfflineMissingCacheErrors(t *testing.T) {
	c := NewClient()
	_, err := c.ResolveVersionDetails(context.Background(), "missing", t.TempDir(), true)
	if err == nil {
		t.Fatal("expected an error when the offline cache has no entry")
	}
}
