// Package libinstall installs a version's libraries and assets: rule
// filtering, Maven coordinate resolution, native-classifier download and
// extraction, and content-addressed asset fan-out. Grounded in the
// original's install.rs (install_libraries/install_assets/
// do_version_install), generalized from its sequential download.File calls
// to the bounded worker pool in internal/download so large batches
// download concurrently while rule filtering and native extraction keep
// the original's per-library semantics.
package libinstall

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/quasar/mc-installer/internal/archivezip"
	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/platform"
)

const defaultLibraryRepo = "https://libraries.minecraft.net"
const assetResourceRoot = "https://resources.download.minecraft.net"

type pendingExtraction struct {
	jarPath string
	extract *model.ExtractRule
	destDir string
}

// InstallLibraries downloads every rule-passing library (and its native
// classifier, if any) for versionID under mcDir, then extracts natives.
func InstallLibraries(ctx context.Context, mgr *download.Manager, versionID string, libraries []model.Library, mcDir string, sink events.Sink) error {
	if sink == nil {
		sink = events.Discard
	}
	librariesRoot := filepath.Join(mcDir, "libraries")
	nativesDir := filepath.Join(mcDir, "versions", versionID, "natives")

	var items []download.Item
	var pending []pendingExtraction

	for _, lib := range libraries {
		if !platform.EvaluateRules(lib.Rules, nil, "") {
			continue
		}

		coord, err := ParseCoordinate(lib.Name)
		if err != nil {
			sink.Emit(events.Error("skipping malformed library name: " + lib.Name))
			continue
		}
		native := platform.NativeClassifier(lib)

		if lib.Downloads != nil && lib.Downloads.Artifact != nil {
			path := artifactPath(librariesRoot, coord, lib.Downloads.Artifact)
			items = append(items, download.Item{
				URL: lib.Downloads.Artifact.URL, Path: path,
				SHA1: lib.Downloads.Artifact.SHA1, Size: lib.Downloads.Artifact.Size,
			})

			if native != "" && lib.Downloads.Classifiers != nil {
				if art, ok := lib.Downloads.Classifiers[native]; ok {
					nativePath := artifactPath(librariesRoot, coord, art)
					items = append(items, download.Item{
						URL: art.URL, Path: nativePath, SHA1: art.SHA1, Size: art.Size,
					})
					if lib.Extract != nil {
						pending = append(pending, pendingExtraction{jarPath: nativePath, extract: lib.Extract, destDir: nativesDir})
					}
				}
			}
			continue
		}

		// Legacy manifest with no downloads block: reconstruct the jar's
		// location from its Maven coordinate against lib.URL (or the
		// default Mojang library repo), matching install.rs's fallback.
		repoURL := lib.URL
		if repoURL == "" {
			repoURL = defaultLibraryRepo
		}
		dir, mavenURL := coord.Path(librariesRoot, repoURL)
		filename := coord.Filename()
		items = append(items, download.Item{
			URL: mavenURL + "/" + filename, Path: filepath.Join(dir, filename),
		})

		if native != "" && lib.Extract != nil {
			nativeFilename := coord.Artifact + "-" + coord.RawVersion + "-" + native + ".jar"
			items = append(items, download.Item{
				URL: mavenURL + "/" + nativeFilename, Path: filepath.Join(dir, nativeFilename),
			})
			pending = append(pending, pendingExtraction{jarPath: filepath.Join(dir, nativeFilename), extract: lib.Extract, destDir: nativesDir})
		}
	}

	if _, err := mgr.Download(ctx, items, sink); err != nil {
		return err
	}

	for _, p := range pending {
		if _, err := os.Stat(p.jarPath); err != nil {
			continue
		}
		if err := archivezip.ExtractNatives(p.jarPath, p.destDir, p.extract); err != nil {
			return err
		}
	}
	return nil
}

// artifactPath prefers the manifest's own declared relative path (modern
// manifests always set it); it falls back to the coordinate-derived
// layout only for the rare manifest that omits it.
func artifactPath(librariesRoot string, coord Coordinate, art *model.Artifact) string {
	if art.Path != "" {
		return filepath.Join(librariesRoot, filepath.FromSlash(art.Path))
	}
	dir, _ := coord.Path(librariesRoot, defaultLibraryRepo)
	return filepath.Join(dir, coord.Filename())
}

type assetIndex struct {
	Objects map[string]struct {
		Hash string `json:"hash"`
		Size int64  `json:"size"`
	} `json:"objects"`
}

// InstallAssets downloads details.AssetIndex and fans its content-addressed
// objects out across mgr's worker pool. Grounded in install_assets.
func InstallAssets(ctx context.Context, mgr *download.Manager, details *model.VersionDetails, mcDir string, sink events.Sink) error {
	if sink == nil {
		sink = events.Discard
	}
	if details.Assets == "" {
		return launcherr.General("assets key in manifest is missing")
	}

	indexPath := filepath.Join(mcDir, "assets", "indexes", details.Assets+".json")
	if _, err := download.File(ctx, mgr.Client(), sink, details.AssetIndex.URL, indexPath, details.AssetIndex.SHA1, false); err != nil {
		return err
	}

	raw, err := os.ReadFile(indexPath)
	if err != nil {
		return launcherr.OS("reading asset index "+indexPath, err)
	}
	var idx assetIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return launcherr.ParseJSON("decoding asset index", err)
	}

	var items []download.Item
	for _, obj := range idx.Objects {
		if len(obj.Hash) < 2 {
			sink.Emit(events.Error("skipping asset with malformed hash: " + obj.Hash))
			continue
		}
		prefix := obj.Hash[:2]
		items = append(items, download.Item{
			URL:  assetResourceRoot + "/" + prefix + "/" + obj.Hash,
			Path: filepath.Join(mcDir, "assets", "objects", prefix, obj.Hash),
			SHA1: obj.Hash,
			Size: obj.Size,
		})
	}

	_, err = mgr.Download(ctx, items, sink)
	return err
}
