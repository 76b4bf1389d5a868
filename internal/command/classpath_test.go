package command

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/platform"
)

func TestBuildClasspathOrdersLibrariesThenJar(t *testing.T) {
	libs := []model.Library{
		{Name: "a:b:1"},
		{Name: "c:d:2"},
	}
	cp, err := BuildClasspath(libs, filepath.Join("R", "libraries"), filepath.Join("R", "versions"), "1.19")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sep := platform.ClasspathSeparator()
	parts := strings.Split(cp, sep)
	if len(parts) != 3 {
		t.Fatalf("expected 3 classpath entries, got %d: %v", len(parts), parts)
	}
	if !strings.HasSuffix(parts[0], filepath.Join("libraries", "a", "b", "1", "b-1.jar")) {
		t.Fatalf("unexpected first entry: %s", parts[0])
	}
	if !strings.HasSuffix(parts[1], filepath.Join("libraries", "c", "d", "2", "d-2.jar")) {
		t.Fatalf("unexpected second entry: %s", parts[1])
	}
	if !strings.HasSuffix(parts[2], filepath.Join("versions", "1.19", "1.19.jar")) {
		t.Fatalf("expected the version jar last, got: %s", parts[2])
	}
}

func TestBuildClasspathSkipsRuleGatedLibrary(t *testing.T) {
	libs := []model.Library{
		{Name: "a:b:1", Rules: []model.Rule{{Action: model.ActionAllow, OS: &model.OSRule{Name: "bogus-os"}}}},
	}
	cp, err := BuildClasspath(libs, "R/libraries", "R/versions", "1.19")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(cp, "a"+string(filepath.Separator)+"b") {
		t.Fatalf("expected rule-gated library to be excluded: %s", cp)
	}
}
