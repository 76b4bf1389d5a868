// VendorDownloader is the secondary JVM runtime source described in
// §4.4.1: the teacher's Adoptium-resolution path. No install or launch
// path in this module calls it, and Config.PreferVendorJDK is not read
// by any code.
package java

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mholt/archiver/v3"

	"github.com/quasar/mc-installer/internal/httpclient"
)

// Downloader fetches and unpacks a vendor (Adoptium) JDK/JRE build,
// exposed to callers as VendorDownloader.
type Downloader struct {
	client *retryablehttp.Client
}

// NewDownloader creates a new Java downloader
func NewDownloader() *Downloader {
	return &Downloader{
		client: httpclient.New(),
	}
}

// VendorDownloader is the name this type is referenced by in SPEC_FULL
// §4.4.1; kept as an alias so both names resolve to the same type.
type VendorDownloader = Downloader

// NewVendorDownloader is an alias for NewDownloader.
func NewVendorDownloader() *VendorDownloader { return NewDownloader() }

// DownloadRuntime downloads and extracts the requested Java version
// Returns the path to the java executable
func (d *Downloader) DownloadRuntime(ctx context.Context, version int, destBaseDir string, progressCb func(string)) (string, error) {
	// 1. Resolve URL
	progressCb(fmt.Sprintf("Resolving Java %d...", version))
	downloadURL, filename, err := d.resolveAdoptiumURL(ctx, version)
	if err != nil {
		return "", fmt.Errorf("resolving java version: %w", err)
	}

	// 2. Prepare paths
	versionDir := filepath.Join(destBaseDir, fmt.Sprintf("%d", version))
	if err := os.MkdirAll(versionDir, 0755); err != nil {
		return "", fmt.Errorf("creating dir: %w", err)
	}

	downloadPath := filepath.Join(versionDir, filename)

	// 3. Download
	progressCb(fmt.Sprintf("Downloading Java %d...", version))
	if err := d.downloadFile(ctx, downloadURL, downloadPath); err != nil {
		return "", fmt.Errorf("downloading file: %w", err)
	}
	defer os.Remove(downloadPath) // Clean up archive

	// 4. Extract
	progressCb("Extracting Java runtime...")
	if err := d.extractArchive(downloadPath, versionDir); err != nil {
		return "", fmt.Errorf("extracting archive: %w", err)
	}

	// 5. Find executable
	return d.FindJavaExecutable(versionDir)
}

func (d *Downloader) resolveAdoptiumURL(ctx context.Context, version int) (string, string, error) {
	osName := runtime.GOOS
	if osName == "darwin" {
		osName = "mac"
	}

	arch := runtime.GOARCH
	if arch == "amd64" {
		arch = "x64"
	} else if arch == "arm64" {
		arch = "aarch64"
	}

	url := fmt.Sprintf("https://api.adoptium.net/v3/assets/feature_releases/%d/ga?architecture=%s&heap_size=normal&image_type=jre&jvm_impl=hotspot&os=%s&page=0&page_size=1&project=jdk&sort_method=DEFAULT&sort_order=DESC&vendor=eclipse", version, arch, osName)

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", "", fmt.Errorf("api returned status %d", resp.StatusCode)
	}

	var releases []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return "", "", err
	}

	if len(releases) == 0 {
		return "", "", fmt.Errorf("no releases found for java %d on %s/%s", version, osName, arch)
	}

	// Extract URL and Filename
	// Structure: [ { binaries: [ { package: { link: "...", name: "..." } } ] } ]
	rel := releases[0].(map[string]interface{})
	binaries := rel["binaries"].([]interface{})
	if len(binaries) == 0 {
		return "", "", fmt.Errorf("no binaries in release")
	}
	binary := binaries[0].(map[string]interface{})
	pkg := binary["package"].(map[string]interface{})

	link, _ := pkg["link"].(string)
	name, _ := pkg["name"].(string)

	return link, name, nil
}

func (d *Downloader) downloadFile(ctx context.Context, url, dest string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	// Just a simple copy for now, could add progress tracking wrapper if needed
	_, err = io.Copy(f, resp.Body)
	return err
}

// extractArchive unpacks the Adoptium tar.gz (unix) or zip (Windows)
// download into dest, using archiver/v3's format-sniffing Unarchive
// instead of the hand-rolled tar/gzip/zip walkers the teacher wrote for
// this (grounded in the pack's AdoptOpenJDK-jlink.online usage of the same
// library for the same concern). Adoptium archives nest everything under
// a single "jdk-<version>/" root; FindJavaExecutable walks recursively, so
// that nesting doesn't need to be stripped here.
func (d *Downloader) extractArchive(src, dest string) error {
	return archiver.Unarchive(src, dest)
}

func (d *Downloader) FindJavaExecutable(dir string) (string, error) {
	// Look for bin/java or bin/java.exe
	binName := "java"
	if runtime.GOOS == "windows" {
		binName = "java.exe"
	}

	var foundPath string
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if foundPath != "" {
			return filepath.SkipDir
		}
		if info.Name() == binName {
			// Check if it's in a bin folder to avoid other java files
			if filepath.Base(filepath.Dir(path)) == "bin" {
				foundPath = path
				return filepath.SkipDir
			}
		}
		return nil
	})

	if foundPath != "" {
		return foundPath, nil
	}
	return "", fmt.Errorf("java executable not found in %s", dir)
}
