package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Jeffail/gabs"

	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/libinstall"
	"github.com/quasar/mc-installer/internal/manifest"
)

const (
	forgeDownloadURLTemplate = "https://files.minecraftforge.net/maven/net/minecraftforge/forge/{version}/forge-{version}-installer.jar"
	forgeHeadlessURL         = "https://github.com/TeamKun/ForgeCLI/releases/download/1.0.1/ForgeCLI-1.0.1-all.jar"
	forgeMavenRoot           = "https://maven.minecraftforge.net/net/minecraftforge/forge/"
)

// GetForgeVersions mirrors get_forge_versions: the full "<mc>-<loader>"
// version listing straight from Forge's maven-metadata.xml.
func GetForgeVersions(ctx context.Context) ([]string, error) {
	meta, err := manifest.MavenMetadata(ctx, forgeMavenRoot+"maven-metadata.xml")
	if err != nil {
		return nil, err
	}
	return meta.Versioning.Versions, nil
}

// IsSupported mirrors forge.rs::is_supported.
func IsSupported(ctx context.Context, mc string) (bool, error) {
	versions, err := GetForgeVersions(ctx)
	if err != nil {
		return false, err
	}
	return forgeSupports(versions, mc), nil
}

func forgeSupports(versions []string, mc string) bool {
	for _, v := range versions {
		if parts := strings.SplitN(v, "-", 2); len(parts) > 0 && parts[0] == mc {
			return true
		}
	}
	return false
}

// ValidForgeVersion mirrors vaild_forge_version: confirms a specific
// loader version exists, optionally pinned to a given mc release.
func ValidForgeVersion(ctx context.Context, forgeVersion string, mc string) (bool, error) {
	versions, err := GetForgeVersions(ctx)
	if err != nil {
		return false, err
	}
	if !forgeVersionValid(versions, forgeVersion, mc) {
		return false, launcherr.NotFound(forgeVersion)
	}
	return true, nil
}

func forgeVersionValid(versions []string, forgeVersion, mc string) bool {
	for _, v := range versions {
		parts := strings.SplitN(v, "-", 2)
		if len(parts) < 2 || parts[1] != forgeVersion {
			continue
		}
		if mc != "" && parts[0] != mc {
			continue
		}
		return true
	}
	return false
}

// ForgeOptions controls cache placement of the intermediate headless
// runner and installer jars, mirroring install_forge's cache_path/
// cache_headless/cache_installer parameters.
type ForgeOptions struct {
	CachePath     string
	CacheHeadless bool
	CacheInstaller bool
	JavaPath      string
}

// InstallForge mirrors install_forge: resolve (or validate) the loader
// version, install the vanilla base if missing, download ForgeCLI and the
// matching Forge installer jar, run the headless installer, then verify
// and finish installing the resulting forge version.
func InstallForge(ctx context.Context, mgr *download.Manager, mc *manifest.Client, mcVersion, mcDir, tempPath, loader string, opts ForgeOptions, sink events.Sink) error {
	if sink == nil {
		sink = events.Discard
	}

	loaderVersion := loader
	if loaderVersion != "" {
		ok, err := ValidForgeVersion(ctx, loaderVersion, mcVersion)
		if err != nil {
			return err
		}
		if !ok {
			return launcherr.Unsupported(mcVersion)
		}
	} else {
		versions, err := GetForgeVersions(ctx)
		if err != nil {
			return err
		}
		for _, v := range versions {
			parts := strings.SplitN(v, "-", 2)
			if len(parts) == 2 && parts[0] == mcVersion {
				loaderVersion = parts[1]
				break
			}
		}
		if loaderVersion == "" {
			return launcherr.NotFound(mcVersion)
		}
	}

	headlessDir := tempPath
	if opts.CacheHeadless && opts.CachePath != "" {
		headlessDir = opts.CachePath
	}
	installerDir := tempPath
	if opts.CacheInstaller && opts.CachePath != "" {
		installerDir = opts.CachePath
	}

	sink.Emit(events.Status("Checking for vanilla minecraft"))
	mcPath := filepath.Join(mcDir, "versions", mcVersion, mcVersion+".json")
	if !isFile(mcPath) {
		if err := InstallVanilla(ctx, mgr, mc, mcVersion, mcDir, sink); err != nil {
			return err
		}
	}

	forgeID := mcVersion + "-forge-" + loaderVersion
	headlessFile := filepath.Join(headlessDir, "ForgeCLI.jar")
	forgeJarFile := filepath.Join(installerDir, forgeID+".jar")

	sink.Emit(events.Status("Downloading ForgeCLI"))
	sink.Emit(events.Progress(0, 2))
	if _, err := download.File(ctx, mgr.Client(), sink, forgeHeadlessURL, headlessFile, "", false); err != nil {
		return err
	}
	sink.Emit(events.Progress(1, 2))

	forgeURL := strings.ReplaceAll(forgeDownloadURLTemplate, "{version}", mcVersion+"-"+loaderVersion)
	sink.Emit(events.Status("Downloading Forge"))
	if _, err := download.File(ctx, mgr.Client(), sink, forgeURL, forgeJarFile, "", false); err != nil {
		return err
	}
	sink.Emit(events.Progress(2, 2))

	exec, err := resolveJava(opts.JavaPath, mcDir)
	if err != nil {
		return err
	}

	args := []string{
		"-jar", headlessFile,
		"--installer", forgeJarFile,
		"--target", mcDir,
	}
	if err := runInstaller(ctx, exec, args, sink); err != nil {
		return err
	}

	sink.Emit(events.Status("Starting cleanup"))
	sink.Emit(events.Progress(0, 2))
	if err := removeIfNotCached(headlessFile, opts.CacheHeadless); err != nil {
		return err
	}
	sink.Emit(events.Progress(1, 2))
	if err := removeIfNotCached(forgeJarFile, opts.CacheInstaller); err != nil {
		return err
	}
	sink.Emit(events.Progress(2, 2))

	if err := verifyForgeProfile(mcDir, forgeID); err != nil {
		return err
	}

	return libinstall.InstallVersion(ctx, mgr, forgeID, mcDir, "", sink)
}

// verifyForgeProfile is a sanity check the original never performed: it
// confirms ForgeCLI actually wrote a usable version profile (one with a
// mainClass) before handing off to the regular version installer, rather
// than surfacing a confusing failure several steps later.
func verifyForgeProfile(mcDir, forgeID string) error {
	profilePath := filepath.Join(mcDir, "versions", forgeID, forgeID+".json")
	container, err := gabs.ParseJSONFile(profilePath)
	if err != nil {
		return launcherr.ParseJSON("reading forge install profile "+profilePath, err)
	}
	if !container.ExistsP("mainClass") {
		return launcherr.General("forge installer did not produce a usable profile: " + profilePath)
	}
	return nil
}
