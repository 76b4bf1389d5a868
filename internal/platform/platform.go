// Package platform implements OS/architecture detection and the rule
// evaluator gating libraries and arguments on platform/feature predicates.
// Grounded in the teacher's runtime.GOOS switches (internal/launch/launcher.go
// libraryApplies, internal/java/download.go resolveAdoptiumURL) and the
// original's runtime.rs::get_jvm_platform_string / utils.rs rule parser.
package platform

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

// Tag yields one of {windows-x86, windows-x64, linux-i386, linux, mac-os}.
func Tag() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "386" {
			return "windows-x86", nil
		}
		return "windows-x64", nil
	case "darwin":
		return "mac-os", nil
	case "linux":
		if runtime.GOARCH == "386" {
			return "linux-i386", nil
		}
		return "linux", nil
	default:
		return "", launcherr.Unsupported("platform (" + runtime.GOOS + ") is unsupported")
	}
}

// ClasspathSeparator is ';' on Windows and ':' elsewhere.
func ClasspathSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// OSName maps the Go runtime OS to the Mojang manifest's vocabulary
// {windows, linux, osx}.
func OSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	case "windows":
		return "windows"
	default:
		return "linux"
	}
}

// Arch is "32" or "64", used to substitute ${arch} into a native classifier
// string (spec §4.5 step 3).
func Arch() string {
	switch runtime.GOARCH {
	case "386", "arm":
		return "32"
	default:
		return "64"
	}
}

var osVersionRegexCache = map[string]*regexp.Regexp{}

// EvaluateRules implements the spec §4.1 rule-list evaluator: a list
// passes iff every rule in it individually passes. An absent/empty rule
// list passes unconditionally. Grounded verbatim in the original's
// utils.rs::parse_rule_list, which ANDs parse_single_rule across the list.
func EvaluateRules(rules []model.Rule, opts *model.GameOptions, osVersion string) bool {
	for _, r := range rules {
		if !evaluateRule(r, opts, osVersion) {
			return false
		}
	}
	return true
}

// evaluateRule reproduces utils.rs::parse_single_rule exactly: a rule
// passes iff whether its predicates match the current environment agrees
// with its action (match+allow, or mismatch+disallow both pass). A
// predicate-less rule (the decided Open Question (b) case) vacuously
// matches, so it passes iff its action is "allow".
func evaluateRule(r model.Rule, opts *model.GameOptions, osVersion string) bool {
	return ruleMatches(r, opts, osVersion) == (r.Action == model.ActionAllow)
}

// ruleMatches reports whether every predicate a rule declares holds for
// the current platform/feature set. Absent predicates are vacuously true.
func ruleMatches(r model.Rule, opts *model.GameOptions, osVersion string) bool {
	if r.OS != nil {
		if r.OS.Name != "" && r.OS.Name != OSName() {
			return false
		}
		if r.OS.Arch == "x86" && Arch() != "32" {
			return false
		}
		if r.OS.Version != "" {
			re, ok := osVersionRegexCache[r.OS.Version]
			if !ok {
				// A manifest-supplied pattern can be malformed; treat that
				// as a non-match instead of panicking, and cache the
				// failure (nil) so we don't retry compiling it.
				re, _ = regexp.Compile(r.OS.Version)
				osVersionRegexCache[r.OS.Version] = re
			}
			if re == nil || !re.MatchString(osVersion) {
				return false
			}
		}
	}

	if r.Features != nil {
		if r.Features.HasCustomRes && !(opts != nil && opts.CustomResolution) {
			return false
		}
		if r.Features.IsDemoUser && !(opts != nil && opts.Demo) {
			return false
		}
	}

	return true
}

// NativeClassifier returns a library's natives classifier for the current
// OS, with "${arch}" substituted, or "" if the library declares none.
// Grounded verbatim in natives.rs::get_natives.
func NativeClassifier(lib model.Library) string {
	if lib.Natives == nil {
		return ""
	}
	value, ok := lib.Natives[OSName()]
	if !ok {
		return ""
	}
	return strings.ReplaceAll(value, "${arch}", Arch())
}
