package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigPopulatesDerivedPaths(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir == "" {
		t.Fatal("expected a non-empty DataDir")
	}
	if cfg.InstancesDir != filepath.Join(cfg.DataDir, "instances") {
		t.Errorf("InstancesDir = %q", cfg.InstancesDir)
	}
	if cfg.JVMCacheDir != filepath.Join(cfg.DataDir, "jvm") {
		t.Errorf("JVMCacheDir = %q", cfg.JVMCacheDir)
	}
	if cfg.DownloadWorkers != DefaultDownloadWorkers {
		t.Errorf("DownloadWorkers = %d, want %d", cfg.DownloadWorkers, DefaultDownloadWorkers)
	}
	if cfg.PreferVendorJDK {
		t.Error("expected PreferVendorJDK to default false")
	}
}

func TestLoadFallsBackToDefaultWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DownloadWorkers != DefaultDownloadWorkers {
		t.Errorf("DownloadWorkers = %d, want %d", cfg.DownloadWorkers, DefaultDownloadWorkers)
	}
}

func TestLoadClampsOutOfRangeDownloadWorkers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	dataDir := filepath.Join(dir, "mc-installer")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	raw, _ := json.Marshal(map[string]any{"downloadWorkers": 999})
	if err := os.WriteFile(filepath.Join(dataDir, "config.json"), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DownloadWorkers != MaxDownloadWorkers {
		t.Errorf("DownloadWorkers = %d, want clamped to %d", cfg.DownloadWorkers, MaxDownloadWorkers)
	}
}

func TestSaveRoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DataDir:         dir,
		InstancesDir:    filepath.Join(dir, "instances"),
		AssetsDir:       filepath.Join(dir, "assets"),
		LibrariesDir:    filepath.Join(dir, "libraries"),
		JVMCacheDir:     filepath.Join(dir, "jvm"),
		JVMArgs:         []string{"-Xmx4G"},
		DownloadWorkers: 4,
		PreferVendorJDK: true,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	var reloaded Config
	if err := json.Unmarshal(raw, &reloaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if reloaded.DownloadWorkers != 4 || !reloaded.PreferVendorJDK {
		t.Errorf("reloaded config mismatch: %+v", reloaded)
	}
}

func TestEnsureDirsCreatesJVMCacheDir(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.InstancesDir = filepath.Join(dir, "instances")
	cfg.AssetsDir = filepath.Join(dir, "assets")
	cfg.LibrariesDir = filepath.Join(dir, "libraries")
	cfg.JVMCacheDir = filepath.Join(dir, "jvm")

	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
	if info, err := os.Stat(cfg.JVMCacheDir); err != nil || !info.IsDir() {
		t.Errorf("expected JVMCacheDir to exist: %v", err)
	}
}
