package libinstall

import (
	"context"
	"os"
	"path/filepath"

	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/manifest"
	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/runtimejvm"
)

// InstallVersion performs do_version_install's full sequence for one
// already-known version id: fetch/write the version manifest if
// manifestURL is non-empty, resolve inheritance, install libraries, then
// assets, then the logging config and client jar, then the bundled JVM
// runtime if it isn't already present. Ordering matches the original and
// the spec's dependency chain exactly.
func InstallVersion(ctx context.Context, mgr *download.Manager, versionID, mcDir, manifestURL string, sink events.Sink) error {
	if sink == nil {
		sink = events.Discard
	}

	versionManifestPath := filepath.Join(mcDir, "versions", versionID, versionID+".json")

	sink.Emit(events.Status("getting version.json file"))
	if manifestURL != "" {
		if _, err := download.File(ctx, mgr.Client(), sink, manifestURL, versionManifestPath, "", false); err != nil {
			return err
		}
	}

	details, err := manifest.ReadManifestInherit(versionManifestPath, mcDir)
	if err != nil {
		return err
	}

	sink.Emit(events.Status("installing libraries"))
	if err := InstallLibraries(ctx, mgr, details.ID, details.Libraries, mcDir, sink); err != nil {
		return err
	}

	sink.Emit(events.Status("installing assets"))
	if err := InstallAssets(ctx, mgr, details, mcDir, sink); err != nil {
		return err
	}

	if details.Logging != nil && details.Logging.Client != nil && details.Logging.Client.File != nil {
		sink.Emit(events.Status("setting up logging"))
		loggingFile := filepath.Join(mcDir, "assets", "log_configs", filepath.Base(details.Logging.Client.File.URL))
		if _, err := download.File(ctx, mgr.Client(), sink, details.Logging.Client.File.URL, loggingFile, details.Logging.Client.File.SHA1, false); err != nil {
			return err
		}
	}

	if details.Downloads.Client != nil {
		sink.Emit(events.Status("installing downloads"))
		jarPath := filepath.Join(mcDir, "versions", details.ID, details.ID+".jar")
		if _, err := download.File(ctx, mgr.Client(), sink, details.Downloads.Client.URL, jarPath, details.Downloads.Client.SHA1, false); err != nil {
			return err
		}
	}

	if details.JavaVersion.Component != "" {
		sink.Emit(events.Status("installing java runtime"))
		kind := model.RuntimeKind(details.JavaVersion.Component)
		exists, err := runtimejvm.Exists(kind, mcDir)
		if err != nil {
			return err
		}
		if !exists {
			if err := runtimejvm.Install(ctx, kind, mcDir, sink); err != nil {
				return err
			}
		}
	}

	return nil
}

// InstallMinecraftVersion is the top-level vanilla entry point: if the
// version's manifest is already cached on disk it installs directly,
// otherwise it resolves the version id against the Mojang catalog first.
// Mirrors install_minecraft_version.
func InstallMinecraftVersion(ctx context.Context, mgr *download.Manager, client *manifest.Client, versionID, mcDir string, sink events.Sink) error {
	versionManifestPath := filepath.Join(mcDir, "versions", versionID, versionID+".json")
	if info, err := os.Stat(versionManifestPath); err == nil && !info.IsDir() {
		return InstallVersion(ctx, mgr, versionID, mcDir, "", sink)
	}

	v, err := client.FindVersion(ctx, versionID)
	if err != nil {
		return err
	}
	return InstallVersion(ctx, mgr, v.ID, mcDir, v.URL, sink)
}
