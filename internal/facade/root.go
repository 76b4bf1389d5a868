package facade

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/quasar/mc-installer/internal/launcherr"
)

// defaultRoot resolves the game directory when the caller supplies none.
// Grounded verbatim in utils.rs::get_minecraft_directory for the Windows
// APPDATA case, enriched (not replaced) with the teacher's
// config.getDefaultDataDir portable-mode/XDG fallback for the other OSes
// the base contract otherwise leaves unsupported.
func defaultRoot() (string, error) {
	if exe, err := os.Executable(); err == nil {
		portable := filepath.Join(filepath.Dir(exe), "data", ".minecraft")
		if info, err := os.Stat(filepath.Dir(portable)); err == nil && info.IsDir() {
			return portable, nil
		}
	}

	switch runtime.GOOS {
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return "", launcherr.Env("failed to read APPDATA env variable", nil)
		}
		return filepath.Join(appdata, ".minecraft"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", launcherr.OS("resolving home directory", err)
		}
		return filepath.Join(home, "Library", "Application Support", "minecraft"), nil
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, ".minecraft"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", launcherr.OS("resolving home directory", err)
		}
		return filepath.Join(home, ".minecraft"), nil
	default:
		return "", launcherr.Unsupported("this operating system is unsupported")
	}
}
