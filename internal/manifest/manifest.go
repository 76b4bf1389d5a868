// Package manifest fetches and resolves Mojang's version manifest and
// per-version detail documents, including single-level inheritance
// ("inheritsFrom") merging. Grounded in the teacher's internal/api
// (MojangClient) for the network/cache shape, and in the original's
// utils.rs::read_manifest / inherit_json / read_manifest_inherit for the
// exact field-ownership rules of an inherited version.
package manifest

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mc-installer/internal/httpclient"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

// The spec's literal endpoints (deliberately the older launchermeta host,
// not the teacher's piston-meta migration).
const versionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// Client fetches and caches the Mojang version catalog.
type Client struct {
	http            *retryablehttp.Client
	manifest        *model.VersionManifest
	manifestFetched time.Time
	manifestTTL     time.Duration
}

// NewClient builds a manifest Client sharing the module's pooled HTTP
// client.
func NewClient() *Client {
	return &Client{http: httpclient.New(), manifestTTL: 5 * time.Minute}
}

// VersionManifest fetches (or returns the cached) top-level catalog.
func (c *Client) VersionManifest(ctx context.Context) (*model.VersionManifest, error) {
	if c.manifest != nil && time.Since(c.manifestFetched) < c.manifestTTL {
		return c.manifest, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, versionManifestURL, nil)
	if err != nil {
		return nil, launcherr.HTTP("building version manifest request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, launcherr.HTTP("fetching version manifest", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, launcherr.HTTP("unexpected status fetching version manifest", nil)
	}

	var m model.VersionManifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, launcherr.ParseJSON("decoding version manifest", err)
	}

	c.manifest = &m
	c.manifestFetched = time.Now()
	return &m, nil
}

// FindVersion looks a version id up in the catalog.
func (c *Client) FindVersion(ctx context.Context, id string) (*model.Version, error) {
	m, err := c.VersionManifest(ctx)
	if err != nil {
		return nil, err
	}
	for i := range m.Versions {
		if m.Versions[i].ID == id {
			return &m.Versions[i], nil
		}
	}
	return nil, launcherr.NotFound(id)
}

// VersionDetails fetches the full per-version manifest from v.URL.
func (c *Client) VersionDetails(ctx context.Context, v *model.Version) (*model.VersionDetails, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, v.URL, nil)
	if err != nil {
		return nil, launcherr.HTTP("building version details request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, launcherr.HTTP("fetching version details", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, launcherr.HTTP("unexpected status fetching version details", nil)
	}

	var d model.VersionDetails
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return nil, launcherr.ParseJSON("decoding version details", err)
	}
	return &d, nil
}

// ResolveVersionDetails fetches v's full manifest, caching it under
// cacheDir/<id>.json so a later offline call can still serve it. When
// offline is true, only the cache is consulted. Grounded in the teacher's
// api.MojangClient.ResolveVersionDetails, adapted onto this package's
// Client/model types.
func (c *Client) ResolveVersionDetails(ctx context.Context, id, cacheDir string, offline bool) (*model.VersionDetails, error) {
	if offline {
		return c.loadCachedVersionDetails(cacheDir, id)
	}

	v, err := c.FindVersion(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := c.VersionDetails(ctx, v)
	if err != nil {
		return nil, err
	}

	_ = c.cacheVersionDetails(cacheDir, id, details)
	return details, nil
}

func (c *Client) loadCachedVersionDetails(cacheDir, id string) (*model.VersionDetails, error) {
	raw, err := os.ReadFile(filepath.Join(cacheDir, id+".json"))
	if err != nil {
		return nil, launcherr.OS("reading cached version details", err)
	}
	var d model.VersionDetails
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, launcherr.ParseJSON("decoding cached version details", err)
	}
	return &d, nil
}

func (c *Client) cacheVersionDetails(cacheDir, id string, details *model.VersionDetails) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return launcherr.OS("creating version details cache directory", err)
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return launcherr.ParseJSON("encoding version details for cache", err)
	}
	return os.WriteFile(filepath.Join(cacheDir, id+".json"), raw, 0o644)
}

// ReadManifest reads a version's manifest JSON from disk at path.
func ReadManifest(path string) (*model.VersionDetails, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, launcherr.OS("reading version manifest "+path, err)
	}
	var d model.VersionDetails
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, launcherr.ParseJSON("decoding version manifest "+path, err)
	}
	return &d, nil
}

// ReadManifestInherit reads versionJSON and, if it declares inheritsFrom,
// merges it on top of its parent found under mcDir/versions/<id>/<id>.json.
// Grounded verbatim in utils.rs::read_manifest_inherit/inherit_json: only a
// single inheritance level is resolved (the parent is never itself
// resolved further), the child keeps its own id/time/releaseTime/type/
// mainClass/jar, and appends its own libraries/arguments after the
// parent's.
func ReadManifestInherit(versionJSON, mcDir string) (*model.VersionDetails, error) {
	child, err := ReadManifest(versionJSON)
	if err != nil {
		return nil, err
	}
	if child.InheritsFrom == "" {
		return child, nil
	}
	return inherit(child, mcDir)
}

func inherit(child *model.VersionDetails, mcDir string) (*model.VersionDetails, error) {
	parentPath := filepath.Join(mcDir, "versions", child.InheritsFrom, child.InheritsFrom+".json")
	parent, err := ReadManifest(parentPath)
	if err != nil {
		return nil, err
	}

	merged := *child
	merged.InheritsFrom = ""
	merged.AssetIndex = parent.AssetIndex
	merged.Assets = parent.Assets
	merged.JavaVersion = parent.JavaVersion
	merged.Downloads = parent.Downloads
	merged.ComplianceLevel = parent.ComplianceLevel
	merged.Logging = parent.Logging
	merged.MinimumLauncher = parent.MinimumLauncher

	merged.Libraries = append(append([]model.Library{}, parent.Libraries...), child.Libraries...)

	if parent.Arguments != nil {
		if merged.Arguments == nil {
			merged.Arguments = &model.Arguments{}
		}
		merged.Arguments.Game = append(append([]model.Argument{}, parent.Arguments.Game...), merged.Arguments.Game...)
		merged.Arguments.JVM = append(append([]model.Argument{}, parent.Arguments.JVM...), merged.Arguments.JVM...)
	}

	return &merged, nil
}
