package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mc-installer/internal/model"
)

func writeVersionFixture(t *testing.T, mcDir, id string, details *model.VersionDetails) {
	t.Helper()
	dir := filepath.Join(mcDir, "versions", id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(details)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}
	// BuildLaunchCommand only stats <id>.json; the <id>.jar classpath entry
	// is derived from the path and need not exist.
}

func TestBuildLaunchCommandSmoke(t *testing.T) {
	mcDir := t.TempDir()
	details := &model.VersionDetails{
		ID:        "1.19",
		Type:      model.VersionTypeRelease,
		MainClass: "net.minecraft.client.main.Main",
		Arguments: &model.Arguments{
			Game: []model.Argument{
				{Shape: model.ShapePlain, Plain: "--username"},
				{Shape: model.ShapePlain, Plain: "${auth_player_name}"},
			},
		},
		Assets: "13",
	}
	writeVersionFixture(t, mcDir, "1.19", details)

	opts := &model.GameOptions{Username: "u"}
	exe, argv, err := BuildLaunchCommand("1.19", mcDir, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exe == "" {
		t.Fatal("expected a non-empty java executable")
	}

	foundMainClass := false
	for i, a := range argv {
		if a == "net.minecraft.client.main.Main" {
			foundMainClass = true
			if i+2 >= len(argv) || argv[i+1] != "--username" || argv[i+2] != "u" {
				t.Fatalf("expected --username u right after the main class, got %v", argv[i:])
			}
		}
	}
	if !foundMainClass {
		t.Fatalf("main class missing from argv: %v", argv)
	}
	if opts.NativesDirectory == "" {
		t.Fatal("expected NativesDirectory to be defaulted")
	}
	if opts.Classpath == "" {
		t.Fatal("expected Classpath to be populated")
	}
}

func TestBuildLaunchCommandMissingVersionIsNotFound(t *testing.T) {
	mcDir := t.TempDir()
	_, _, err := BuildLaunchCommand("missing", mcDir, &model.GameOptions{})
	if err == nil {
		t.Fatal("expected an error for a missing version")
	}
}

func TestBuildLaunchCommandLegacyMinecraftArguments(t *testing.T) {
	mcDir := t.TempDir()
	details := &model.VersionDetails{
		ID:                 "1.5.2",
		Type:               model.VersionTypeRelease,
		MainClass:          "net.minecraft.client.Minecraft",
		MinecraftArguments: "--username ${auth_player_name} --gameDir ${game_directory}",
		Assets:             "legacy",
	}
	writeVersionFixture(t, mcDir, "1.5.2", details)

	opts := &model.GameOptions{Username: "legacyuser"}
	_, argv, err := BuildLaunchCommand("1.5.2", mcDir, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := map[string]bool{}
	for _, a := range argv {
		joined[a] = true
	}
	if !joined["legacyuser"] {
		t.Fatalf("expected the legacy arguments to be substituted, got %v", argv)
	}
}
