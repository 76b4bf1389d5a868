package archivezip

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/quasar/mc-installer/internal/model"
)

func writeTestJar(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractNativesWritesContent(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "lwjgl-natives.jar")
	writeTestJar(t, jar, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\n",
		"liblwjgl.so":          "binary-content",
	})

	dest := filepath.Join(dir, "natives")
	if err := ExtractNatives(jar, dest, &model.ExtractRule{Exclude: []string{"META-INF/"}}); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "META-INF", "MANIFEST.MF")); !os.IsNotExist(err) {
		t.Fatal("excluded entry should not have been extracted")
	}

	data, err := os.ReadFile(filepath.Join(dest, "liblwjgl.so"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(data) != "binary-content" {
		t.Fatalf("extracted content mismatch, got %q", data)
	}
}

func TestExtractNativesNoExcludeRule(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "natives.jar")
	writeTestJar(t, jar, map[string]string{"lib.dylib": "x"})

	dest := filepath.Join(dir, "out")
	if err := ExtractNatives(jar, dest, nil); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "lib.dylib")); err != nil {
		t.Fatalf("expected extracted file: %v", err)
	}
}
