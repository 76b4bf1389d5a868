package libinstall

import (
	"path/filepath"
	"strings"

	"github.com/quasar/mc-installer/internal/launcherr"
)

// Coordinate is a parsed Maven library name: group:artifact:version[@ext].
type Coordinate struct {
	Group      string
	Artifact   string
	Version    string
	RawVersion string
	Extension  string
}

// ParseCoordinate mirrors natives.rs::get_library_data's ':'-split parse,
// extended to split an optional "@ext" suffix off the version segment the
// way install.rs's version_at splitting does inline.
func ParseCoordinate(name string) (Coordinate, error) {
	parts := strings.Split(name, ":")
	if len(parts) != 3 {
		return Coordinate{}, launcherr.General("library name does not contain required params: " + name)
	}

	version, ext := parts[2], "jar"
	if at := strings.SplitN(parts[2], "@", 2); len(at) == 2 {
		version, ext = at[0], at[1]
	}

	return Coordinate{Group: parts[0], Artifact: parts[1], Version: version, RawVersion: parts[2], Extension: ext}, nil
}

// Path returns the libraries/<group-as-path>/<artifact>/<version> directory
// a coordinate resolves to, and the maven-repository URL path built the
// same way (group segments joined with "/" under the given repo root).
func (c Coordinate) Path(librariesRoot, repoURL string) (dir, url string) {
	groupParts := strings.Split(c.Group, ".")
	dir = librariesRoot
	url = strings.TrimSuffix(repoURL, "/")
	for _, p := range groupParts {
		dir = filepath.Join(dir, p)
		url = url + "/" + p
	}
	dir = filepath.Join(dir, c.Artifact, c.Version)
	url = url + "/" + c.Artifact + "/" + c.Version
	return dir, url
}

// Filename is "<artifact>-<version>.<ext>".
func (c Coordinate) Filename() string {
	return c.Artifact + "-" + c.Version + "." + c.Extension
}
