// Package model holds the typed shapes of the version manifests, libraries,
// rules, and installation records this installer reads and writes. Grounded
// in the teacher's internal/core/version.go, generalized from a
// Mojang-manifest-only model to the full sum-typed Argument grammar and
// the loader/account/install-request shapes the spec requires.
package model

import "time"

// VersionType is the Mojang release channel of a version entry.
type VersionType string

const (
	VersionTypeRelease  VersionType = "release"
	VersionTypeSnapshot VersionType = "snapshot"
	VersionTypeOldBeta  VersionType = "old_beta"
	VersionTypeOldAlpha VersionType = "old_alpha"
)

// Loader is the mod-loader variant requested for an installation.
type Loader string

const (
	LoaderVanilla  Loader = "vanilla"
	LoaderFabric   Loader = "fabric"
	LoaderForge    Loader = "forge"
	LoaderOptiFine Loader = "optifine"
)

// Version is one entry in the top-level Mojang version manifest.
type Version struct {
	ID          string      `json:"id"`
	Type        VersionType `json:"type"`
	URL         string      `json:"url"`
	ReleaseTime time.Time   `json:"releaseTime"`
	SHA1        string      `json:"sha1"`
}

// VersionManifest is the root of Mojang's top-level version_manifest.json.
type VersionManifest struct {
	Latest   LatestVersions `json:"latest"`
	Versions []Version      `json:"versions"`
}

// LatestVersions names the newest release and snapshot ids.
type LatestVersions struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// VersionDetails is the full per-version manifest fetched from a Version's
// URL (or read from <root>/versions/<id>/<id>.json).
type VersionDetails struct {
	ID                 string         `json:"id"`
	Type               VersionType    `json:"type"`
	MainClass          string         `json:"mainClass"`
	MinecraftArguments string         `json:"minecraftArguments,omitempty"`
	Arguments          *Arguments     `json:"arguments,omitempty"`
	Libraries          []Library      `json:"libraries"`
	AssetIndex         AssetIndexRef  `json:"assetIndex"`
	Assets             string         `json:"assets"`
	Downloads          Downloads      `json:"downloads"`
	JavaVersion        JavaVersionReq `json:"javaVersion"`
	Logging            *Logging       `json:"logging,omitempty"`
	ComplianceLevel    int            `json:"complianceLevel,omitempty"`
	MinimumLauncher    int            `json:"minimumLauncherVersion,omitempty"`
	InheritsFrom       string         `json:"inheritsFrom,omitempty"`
	Jar                string         `json:"jar,omitempty"`
	ReleaseTime        time.Time      `json:"releaseTime"`
	Time               time.Time      `json:"time"`
	ReleaseType         string        `json:"type,omitempty"`
}

// Arguments holds the modern game/jvm argument lists.
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm"`
}

// Library is a single Maven-coordinate dependency.
type Library struct {
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	URL       string            `json:"url,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Extract   *ExtractRule      `json:"extract,omitempty"`
}

// ExtractRule names path prefixes to skip when unpacking a native jar.
type ExtractRule struct {
	Exclude []string `json:"exclude,omitempty"`
}

// LibraryDownloads carries the primary artifact and any native classifiers.
type LibraryDownloads struct {
	Artifact    *Artifact            `json:"artifact,omitempty"`
	Classifiers map[string]*Artifact `json:"classifiers,omitempty"`
}

// Artifact is one downloadable file referenced by a library or manifest.
type Artifact struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// AssetIndexRef references the index of content-addressed game assets.
type AssetIndexRef struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	TotalSize int64  `json:"totalSize"`
	URL       string `json:"url"`
}

// Downloads holds the client/server jar references.
type Downloads struct {
	Client         *Artifact `json:"client,omitempty"`
	ClientMappings *Artifact `json:"client_mappings,omitempty"`
	Server         *Artifact `json:"server,omitempty"`
	ServerMappings *Artifact `json:"server_mappings,omitempty"`
}

// JavaVersionReq names the JVM runtime component a version needs.
type JavaVersionReq struct {
	Component    string `json:"component"`
	MajorVersion int    `json:"majorVersion"`
}

// Logging carries the optional log4j config reference.
type Logging struct {
	Client *LoggingConfig `json:"client,omitempty"`
}

// LoggingConfig names the XML config artifact and the argument template
// used to wire it into the launch command.
type LoggingConfig struct {
	Argument string    `json:"argument"`
	File     *Artifact `json:"file"`
	Type     string    `json:"type"`
}

// AssetIndex is the parsed content of an asset index JSON document.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject names one logical asset's content hash and size.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}
