package loader

import (
	"context"

	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/libinstall"
	"github.com/quasar/mc-installer/internal/manifest"
	"github.com/quasar/mc-installer/internal/model"
)

// GetVanillaVersions returns the top-level Mojang catalog, mirroring
// get_vanilla_versions.
func GetVanillaVersions(ctx context.Context, client *manifest.Client) ([]model.Version, error) {
	m, err := client.VersionManifest(ctx)
	if err != nil {
		return nil, err
	}
	return m.Versions, nil
}

// InstallVanilla installs an unmodified client version. It is the
// terminal step every other loader calls first to guarantee the base
// game is present before laying a loader on top of it.
func InstallVanilla(ctx context.Context, mgr *download.Manager, client *manifest.Client, mcVersion, mcDir string, sink events.Sink) error {
	return libinstall.InstallMinecraftVersion(ctx, mgr, client, mcVersion, mcDir, sink)
}
