// Package command builds the `(executable, argv)` pair a Client spawns,
// grounded in the original's command.rs: classpath assembly, rule-guarded
// argument expansion, and the JVM-argument/logging/main-class ordering.
package command

import (
	"path/filepath"
	"strings"

	"github.com/quasar/mc-installer/internal/libinstall"
	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/platform"
)

// BuildClasspath assembles the separator-joined library classpath the way
// get_libraries_string does: every rule-passing library's
// <artifact>-<version>[-<native>].jar under librariesRoot, followed by the
// version's own jar.
func BuildClasspath(libraries []model.Library, librariesRoot, versionsRoot, jarID string) (string, error) {
	sep := platform.ClasspathSeparator()
	var parts []string

	for _, lib := range libraries {
		if !platform.EvaluateRules(lib.Rules, nil, "") {
			continue
		}
		coord, err := libinstall.ParseCoordinate(lib.Name)
		if err != nil {
			return "", err
		}
		dir, _ := coord.Path(librariesRoot, "")

		filename := coord.Artifact + "-" + coord.Version
		if native := platform.NativeClassifier(lib); native != "" {
			filename += "-" + native
		}
		filename += ".jar"

		parts = append(parts, filepath.Join(dir, filename))
	}

	parts = append(parts, filepath.Join(versionsRoot, jarID, jarID+".jar"))
	return strings.Join(parts, sep), nil
}
