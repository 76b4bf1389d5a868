package loader

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/quasar/mc-installer/internal/download"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/httpclient"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/libinstall"
	"github.com/quasar/mc-installer/internal/manifest"
	"github.com/quasar/mc-installer/internal/model"
)

const (
	optifineHeadlessURL   = "https://github.com/VisualSource/mc-installer-v2/raw/master/wellknowns/jars/optifineheadless.jar"
	optifineDownloadsPage = "https://optifine.net/downloads"
)

// GetOptifineVersions scrapes the OptiFine downloads page, replacing the
// original's scraper-crate CSS selectors with an equivalent x/net/html
// tree walk: each "tr.downloadLine.downloadLineMain" row yields a name
// (its "td.colFile" cell) and a mirror link (the href on "td.colMirror >
// a"), from which the targeted mc version is parsed back out of the
// mirror URL's query string.
func GetOptifineVersions(ctx context.Context) ([]model.OptifineVersion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, optifineDownloadsPage, nil)
	if err != nil {
		return nil, launcherr.HTTP("building optifine request", err)
	}
	resp, err := httpclient.Standard().Do(req)
	if err != nil {
		return nil, launcherr.HTTP("Failed to make request", err)
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, launcherr.General("parsing optifine downloads page: " + err.Error())
	}

	var versions []model.OptifineVersion
	for _, row := range findAll(doc, hasClass("tr", "downloadLine", "downloadLineMain")) {
		nameCell := firstMatch(row, hasClass("td", "colFile"))
		mirrorLink := firstMatch(row, hasClass("td", "colMirror"))

		var v model.OptifineVersion
		if nameCell != nil {
			v.Name = strings.ReplaceAll(strings.ReplaceAll(textContent(nameCell), "OptiFine ", ""), " ", "_")
		}
		if mirrorLink != nil {
			if a := findTag(mirrorLink, "a"); a != nil {
				v.URL = attr(a, "href")
			}
		}
		if parts := strings.SplitN(v.URL, "=", 2); len(parts) == 2 {
			mc := strings.ReplaceAll(parts[1], "OptiFine_", "")
			mc = strings.ReplaceAll(mc, "_", " ")
			v.MC = strings.SplitN(mc, " ", 2)[0]
		}
		if v.Name != "" {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// GetOptifineDownload resolves one version's detail page into its actual
// download URL, mirroring get_optifine_download's "span#Download > a"
// selector.
func GetOptifineDownload(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", launcherr.HTTP("building optifine download request", err)
	}
	resp, err := httpclient.Standard().Do(req)
	if err != nil {
		return "", launcherr.HTTP("Failed to get file jar", err)
	}
	defer resp.Body.Close()

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", launcherr.General("parsing optifine version page: " + err.Error())
	}

	span := firstMatch(doc, hasID("span", "Download"))
	if span == nil {
		return "", launcherr.General("Failed to get optifine download url")
	}
	a := findTag(span, "a")
	if a == nil {
		return "", launcherr.General("Failed to get optifine download url")
	}
	return "https://optifine.net/" + attr(a, "href"), nil
}

// OptifineOptions mirrors install_optifine's cache_path/cache_headless/
// cache_installer/java parameters.
type OptifineOptions struct {
	CachePath      string
	CacheHeadless  bool
	CacheInstaller bool
	JavaPath       string
}

// InstallOptifine mirrors install_optifine: resolve the requested (or
// latest, i.e. first listed) version row for mcVersion, install the
// vanilla base if missing, fetch the headless runner and the resolved
// installer jar, run it, clean up, and then install the produced
// <mc>-OptiFine_<name> version.
func InstallOptifine(ctx context.Context, mgr *download.Manager, mc *manifest.Client, mcVersion, mcDir, tempPath, loader string, opts OptifineOptions, sink events.Sink) error {
	if sink == nil {
		sink = events.Discard
	}

	versions, err := GetOptifineVersions(ctx)
	if err != nil {
		return err
	}

	var chosen model.OptifineVersion
	for _, v := range versions {
		if v.MC != mcVersion {
			continue
		}
		if loader != "" && v.Name != loader {
			continue
		}
		chosen = v
		break
	}
	if chosen.Name == "" {
		if loader != "" {
			return launcherr.NotFound(loader)
		}
		return launcherr.NotFound(mcVersion)
	}

	headlessDir := tempPath
	if opts.CacheHeadless && opts.CachePath != "" {
		headlessDir = opts.CachePath
	}
	headlessFile := filepath.Join(headlessDir, "optifineheadless.jar")

	optifineID := chosen.MC + "-OptiFine_" + chosen.Name
	installerDir := tempPath
	if opts.CacheInstaller && opts.CachePath != "" {
		installerDir = opts.CachePath
	}
	installerFile := filepath.Join(installerDir, optifineID+".jar")

	sink.Emit(events.Status("Checking for vanilla minecraft"))
	mcPath := filepath.Join(mcDir, "versions", mcVersion, mcVersion+".json")
	if !isFile(mcPath) {
		if err := InstallVanilla(ctx, mgr, mc, mcVersion, mcDir, sink); err != nil {
			return err
		}
	}

	sink.Emit(events.Status("Downloading OptiFine Headless"))
	sink.Emit(events.Progress(0, 2))
	if _, err := download.File(ctx, mgr.Client(), sink, optifineHeadlessURL, headlessFile, "", false); err != nil {
		return err
	}
	sink.Emit(events.Progress(1, 2))

	downloadURL, err := GetOptifineDownload(ctx, chosen.URL)
	if err != nil {
		return err
	}

	sink.Emit(events.Status("Downloading OptiFine"))
	if _, err := download.File(ctx, mgr.Client(), sink, downloadURL, installerFile, "", false); err != nil {
		return err
	}
	sink.Emit(events.Progress(2, 2))

	exec, err := resolveJava(opts.JavaPath, mcDir)
	if err != nil {
		return err
	}

	args := []string{"-jar", headlessFile, installerFile, mcDir}
	if err := runInstaller(ctx, exec, args, sink); err != nil {
		return err
	}

	sink.Emit(events.Status("Starting cleanup"))
	sink.Emit(events.Progress(0, 2))
	if err := removeIfNotCached(headlessFile, opts.CacheHeadless); err != nil {
		return err
	}
	sink.Emit(events.Progress(1, 2))
	if err := removeIfNotCached(installerFile, opts.CacheInstaller); err != nil {
		return err
	}
	sink.Emit(events.Progress(2, 2))

	return libinstall.InstallVersion(ctx, mgr, optifineID, mcDir, "", sink)
}
