package model

// RuntimeKind is one of the four JVM trees Mojang publishes, grounded in
// the original's MinecraftJavaRuntime enum (json.rs).
type RuntimeKind string

const (
	RuntimeJavaAlpha  RuntimeKind = "java-runtime-alpha"
	RuntimeJavaBeta   RuntimeKind = "java-runtime-beta"
	RuntimeJavaExe    RuntimeKind = "minecraft-java-exe"
	RuntimeJreLegacy  RuntimeKind = "jre-legacy"
)

// JvmManifest is the top-level `arch -> runtime-kind -> [candidates]` map
// fetched from the Mojang JVM runtime manifest URL.
type JvmManifest map[string]map[string][]RuntimeCandidate

// RuntimeCandidate is one entry in a runtime-kind's candidate list; the
// spec selects the *last* element as the active candidate.
type RuntimeCandidate struct {
	Availability RuntimeAvailability `json:"availability"`
	Manifest     RuntimeManifestRef  `json:"manifest"`
	Version      RuntimeVersion      `json:"version"`
}

type RuntimeAvailability struct {
	Group    int `json:"group"`
	Progress int `json:"progress"`
}

// RuntimeManifestRef points at the sub-manifest enumerating this
// candidate's files.
type RuntimeManifestRef struct {
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type RuntimeVersion struct {
	Name     string `json:"name"`
	Released string `json:"released"`
}

// RuntimeFiles is the sub-manifest listing every file/directory the
// runtime tree is built from.
type RuntimeFiles struct {
	Files map[string]RuntimeFileEntry `json:"files"`
}

// RuntimeFileEntry describes one path's action and (if a file) its
// download variants.
type RuntimeFileEntry struct {
	Action     string                  `json:"type"`
	Executable bool                    `json:"executable,omitempty"`
	Downloads  *RuntimeFileDownloads   `json:"downloads,omitempty"`
	Target     string                  `json:"target,omitempty"`
}

// RuntimeFileDownloads carries the raw download and, when present, a
// preferred LZMA-compressed variant.
type RuntimeFileDownloads struct {
	LZMA *Artifact `json:"lzma,omitempty"`
	Raw  Artifact  `json:"raw"`
}
