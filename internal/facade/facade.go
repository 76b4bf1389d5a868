// Package facade is the top-level installer entry point: it resolves the
// game directory, then dispatches an InstallManifest to the right
// orchestrator in internal/loader. Grounded in the original's
// ClientBuilder::install/install_str.
package facade

import (
	"context"
	"encoding/json"

	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/loader"
	"github.com/quasar/mc-installer/internal/manifest"
	"github.com/quasar/mc-installer/internal/model"
)

// Options carries the install() call's optional parameters.
type Options struct {
	Root            string
	TempPath        string
	JavaPath        string
	CacheCLI        bool
	CacheInstall    bool
	DownloadWorkers int
}

// Install resolves root (or the OS default) and dispatches req to the
// matching loader orchestrator, grounded in ClientBuilder::install.
func Install(ctx context.Context, req model.InstallManifest, opts Options, sink events.Sink) error {
	root := opts.Root
	if root == "" {
		var err error
		root, err = defaultRoot()
		if err != nil {
			return err
		}
	}

	workers := opts.DownloadWorkers
	if workers <= 0 {
		workers = 8
	}
	mgr := download.NewManager(workers)
	mc := manifest.NewClient()

	switch req.Modloader {
	case model.LoaderFabric:
		if opts.TempPath == "" {
			return launcherr.General("Missing temp path")
		}
		return loader.InstallFabric(ctx, mgr, mc, req.Minecraft, root, req.ModloaderVer, opts.JavaPath, opts.TempPath, sink)
	case model.LoaderForge:
		if opts.TempPath == "" {
			return launcherr.General("Missing temp path")
		}
		return loader.InstallForge(ctx, mgr, mc, req.Minecraft, root, opts.TempPath, req.ModloaderVer, loader.ForgeOptions{
			CacheHeadless:  req.CacheCLI,
			CacheInstaller: req.CacheInstall,
			JavaPath:       opts.JavaPath,
		}, sink)
	case model.LoaderOptiFine:
		if opts.TempPath == "" {
			return launcherr.General("Missing temp path")
		}
		return loader.InstallOptifine(ctx, mgr, mc, req.Minecraft, root, opts.TempPath, req.ModloaderVer, loader.OptifineOptions{
			CacheHeadless:  req.CacheCLI,
			CacheInstaller: req.CacheInstall,
			JavaPath:       opts.JavaPath,
		}, sink)
	case model.LoaderVanilla:
		return loader.InstallVanilla(ctx, mgr, mc, req.Minecraft, root, sink)
	default:
		return launcherr.Unsupported("loader (" + string(req.Modloader) + ") is unsupported")
	}
}

// InstallFromJSON unmarshals a JSON-encoded InstallManifest and dispatches
// it through Install, grounded in ClientBuilder::install_str.
func InstallFromJSON(ctx context.Context, raw []byte, opts Options, sink events.Sink) error {
	var req model.InstallManifest
	if err := json.Unmarshal(raw, &req); err != nil {
		return launcherr.ParseJSON("decoding install manifest", err)
	}
	return Install(ctx, req, opts, sink)
}
