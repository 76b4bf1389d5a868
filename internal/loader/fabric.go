package loader

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/httpclient"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/libinstall"
	"github.com/quasar/mc-installer/internal/manifest"
	"github.com/quasar/mc-installer/internal/model"
)

const (
	fabricAPIRoot        = "https://meta.fabricmc.net/v2/versions/"
	fabricInstallerMaven = "https://maven.fabricmc.net/net/fabricmc/fabric-installer/"
)

func fabricGetJSON(ctx context.Context, client *retryablehttp.Client, url string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return launcherr.HTTP("building fabric request", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return launcherr.HTTP("Failed to maker request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return launcherr.HTTP("unexpected status from fabric meta", nil)
	}
	return decodeJSON(resp, out)
}

// GetSupportedMCVersions mirrors get_supported_mc_versions.
func GetSupportedMCVersions(ctx context.Context) ([]model.FabricVersionItem, error) {
	client := httpclient.New()
	var versions []model.FabricVersionItem
	if err := fabricGetJSON(ctx, client, fabricAPIRoot+"game", &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetSupportedStableVersions mirrors get_supported_stable_versions.
func GetSupportedStableVersions(ctx context.Context) ([]model.FabricVersionItem, error) {
	versions, err := GetSupportedMCVersions(ctx)
	if err != nil {
		return nil, err
	}
	var stable []model.FabricVersionItem
	for _, v := range versions {
		if v.Stable {
			stable = append(stable, v)
		}
	}
	return stable, nil
}

// GetLatestSupported mirrors get_latest_supported.
func GetLatestSupported(ctx context.Context) (string, error) {
	versions, err := GetSupportedMCVersions(ctx)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", launcherr.NotFound("Unknown")
	}
	return versions[0].Version, nil
}

// IsSupported mirrors is_supported.
func IsSupported(ctx context.Context, mcVersion string) (bool, error) {
	versions, err := GetSupportedMCVersions(ctx)
	if err != nil {
		return false, err
	}
	for _, v := range versions {
		if v.Version == mcVersion {
			return true, nil
		}
	}
	return false, nil
}

func getLoaderVersions(ctx context.Context, client *retryablehttp.Client) ([]model.FabricLoaderVersion, error) {
	var loaders []model.FabricLoaderVersion
	if err := fabricGetJSON(ctx, client, fabricAPIRoot+"loader", &loaders); err != nil {
		return nil, err
	}
	return loaders, nil
}

// getLatestLoaderVersion mirrors get_latest_loader_version: the meta API
// lists loader versions newest-first by its own contract, so "latest" is
// just the first entry, not a re-sort (decided Open Question (d)).
func getLatestLoaderVersion(ctx context.Context, client *retryablehttp.Client) (string, error) {
	loaders, err := getLoaderVersions(ctx, client)
	if err != nil {
		return "", err
	}
	return pickLatestLoaderVersion(loaders)
}

func pickLatestLoaderVersion(loaders []model.FabricLoaderVersion) (string, error) {
	if len(loaders) == 0 {
		return "", launcherr.NotFound("Unknown")
	}
	return loaders[0].Version, nil
}

func getLatestInstaller(ctx context.Context) (string, error) {
	meta, err := manifest.MavenMetadata(ctx, fabricInstallerMaven+"maven-metadata.xml")
	if err != nil {
		return "", err
	}
	return meta.Versioning.Release, nil
}

// InstallFabric mirrors install_fabric: validate the requested mc version
// is both a real vanilla release and fabric-supported, resolve (or
// default) the loader version, install the vanilla base if missing, skip
// entirely if the fabric profile is already installed, then fetch and run
// the fabric installer jar headlessly before installing the resulting
// fabric version like any other.
func InstallFabric(ctx context.Context, mgr *download.Manager, mc *manifest.Client, mcVersion, mcDir string, loader, javaPath, tempPath string, sink events.Sink) error {
	if sink == nil {
		sink = events.Discard
	}

	vanillaVersions, err := GetVanillaVersions(ctx, mc)
	if err != nil {
		return err
	}
	found := false
	for _, v := range vanillaVersions {
		if v.ID == mcVersion {
			found = true
			break
		}
	}
	if !found {
		return launcherr.NotFound(mcVersion)
	}

	supported, err := IsSupported(ctx, mcVersion)
	if err != nil {
		return err
	}
	if !supported {
		return launcherr.Unsupported(mcVersion)
	}

	httpClient := httpclient.New()
	loaderVersion := loader
	if loaderVersion == "" {
		loaderVersion, err = getLatestLoaderVersion(ctx, httpClient)
		if err != nil {
			return err
		}
	} else if _, err := semver.NewVersion(loaderVersion); err != nil {
		return launcherr.General("invalid fabric loader version: " + loaderVersion)
	}

	mcPath := filepath.Join(mcDir, "versions", mcVersion, mcVersion+".json")
	if !isFile(mcPath) {
		if err := InstallVanilla(ctx, mgr, mc, mcVersion, mcDir, sink); err != nil {
			return err
		}
	}

	fabricID := "fabric-loader-" + loaderVersion + "-" + mcVersion
	fabricPath := filepath.Join(mcDir, "versions", fabricID, fabricID+".json")
	if isFile(fabricPath) {
		return nil
	}

	installerVersion, err := getLatestInstaller(ctx)
	if err != nil {
		return err
	}
	installerURL := fabricInstallerMaven + installerVersion + "/fabric-installer-" + installerVersion + ".jar"
	installerFile := filepath.Join(tempPath, "fabric-install.jar")

	sink.Emit(events.Progress(0, 1))
	if _, err := download.File(ctx, mgr.Client(), sink, installerURL, installerFile, "", false); err != nil {
		return err
	}
	sink.Emit(events.Progress(1, 1))

	exec, err := resolveJava(javaPath, mcDir)
	if err != nil {
		return err
	}

	args := []string{
		"-jar", installerFile,
		"client",
		"-dir", mcDir,
		"-mcversion", mcVersion,
		"-loader", loaderVersion,
		"-noprofile",
	}
	if err := runInstaller(ctx, exec, args, sink); err != nil {
		return err
	}
	if err := removeIfNotCached(installerFile, false); err != nil {
		return err
	}

	return libinstall.InstallVersion(ctx, mgr, fabricID, mcDir, "", sink)
}
