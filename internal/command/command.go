package command

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quasar/mc-installer/internal/java"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/manifest"
	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/runtimejvm"
)

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// systemJavaOrDefault probes installed system Java before trusting a bare
// "java" off PATH, grounded in java.Detector per §4.4.1's supplemental
// system-Java detection step.
func systemJavaOrDefault(minVersion int) string {
	if best := java.NewDetector().FindBest(minVersion); best != nil {
		return best.Path
	}
	return "java"
}

// BuildLaunchCommand produces the executable and argv a Client spawns for
// versionID, mirroring get_launch_command's full sequence: resolve the
// inherited manifest, default the natives directory, assemble the
// classpath, choose the java executable, then append JVM args, the
// optional logging argument, the main class, and the game arguments in
// that order. opts is mutated in place (NativesDirectory, Classpath),
// matching the original's `&mut GameOptions` contract.
func BuildLaunchCommand(versionID, mcDir string, opts *model.GameOptions) (string, []string, error) {
	versionPath := filepath.Join(mcDir, "versions", versionID, versionID+".json")
	if !isFile(versionPath) {
		return "", nil, launcherr.NotFound(versionID)
	}

	details, err := manifest.ReadManifestInherit(versionPath, mcDir)
	if err != nil {
		return "", nil, err
	}

	if opts.NativesDirectory == "" {
		opts.NativesDirectory = filepath.Join(mcDir, "versions", details.ID, "natives")
	}

	jarID := details.Jar
	if jarID == "" {
		jarID = details.ID
	}
	classpath, err := BuildClasspath(details.Libraries, filepath.Join(mcDir, "libraries"), filepath.Join(mcDir, "versions"), jarID)
	if err != nil {
		return "", nil, err
	}
	opts.Classpath = classpath

	var argv []string
	switch {
	case opts.ExecutablePath != "":
		argv = append(argv, opts.ExecutablePath)
	case details.JavaVersion.Component != "":
		exe, err := runtimejvm.ExecutablePath(model.RuntimeKind(details.JavaVersion.Component), mcDir)
		if err != nil {
			return "", nil, err
		}
		if exe == "" {
			exe = systemJavaOrDefault(details.JavaVersion.MajorVersion)
		}
		argv = append(argv, exe)
	default:
		argv = append(argv, systemJavaOrDefault(details.JavaVersion.MajorVersion))
	}

	if opts.JVMArguments != "" {
		argv = append(argv, strings.Fields(opts.JVMArguments)...)
	}

	if details.Arguments != nil {
		argv = append(argv, ExpandArguments(details.Arguments.JVM, details, opts, mcDir)...)
	}

	if opts.EnableLogging && details.Logging != nil && details.Logging.Client != nil && details.Logging.Client.File != nil {
		loggingDir := opts.LoggingPath
		if loggingDir == "" {
			loggingDir = filepath.Join(mcDir, "assets", "log_configs")
		}
		loggerFile := filepath.Join(loggingDir, filepath.Base(details.Logging.Client.File.URL))
		argv = append(argv, strings.ReplaceAll(details.Logging.Client.Argument, "${path}", loggerFile))
	}

	argv = append(argv, details.MainClass)

	switch {
	case details.Arguments != nil:
		argv = append(argv, ExpandArguments(details.Arguments.Game, details, opts, mcDir)...)
	case details.MinecraftArguments != "":
		replacer := replacerFor(buildSubstitutions(details, opts, mcDir))
		for _, tok := range strings.Fields(details.MinecraftArguments) {
			argv = append(argv, replacer.Replace(tok))
		}
	}

	return argv[0], argv[1:], nil
}
