package command

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quasar/mc-installer/internal/model"
	"github.com/quasar/mc-installer/internal/platform"
)

const (
	defaultLauncherName    = "mc-installer"
	defaultLauncherVersion = "1.0.0"
)

// buildSubstitutions computes every launch-argument token's replacement
// value, grounded in replace_argument, with each token's `.or(default)`
// fallback kept as an explicit default here instead.
func buildSubstitutions(manifest *model.VersionDetails, opts *model.GameOptions, root string) map[string]string {
	releaseType := manifest.ReleaseType
	if releaseType == "" {
		releaseType = string(manifest.Type)
	}
	assetsIndexName := manifest.Assets
	if assetsIndexName == "" {
		assetsIndexName = manifest.ID
	}
	gameDirectory := opts.GameDirectory
	if gameDirectory == "" {
		gameDirectory = root
	}
	launcherName := opts.LauncherName
	if launcherName == "" {
		launcherName = defaultLauncherName
	}
	launcherVersion := opts.LauncherVersion
	if launcherVersion == "" {
		launcherVersion = defaultLauncherVersion
	}
	uuid := opts.UUID
	if uuid == "" {
		uuid = "{uuid}"
	}
	xuid := opts.XUID
	if xuid == "" {
		xuid = "{xuid}"
	}
	token := opts.Token
	if token == "" {
		token = "{token}"
	}
	width := "854"
	if opts.ResolutionWidth > 0 {
		width = strconv.Itoa(opts.ResolutionWidth)
	}
	height := "480"
	if opts.ResolutionHeight > 0 {
		height = strconv.Itoa(opts.ResolutionHeight)
	}
	clientID := opts.ClientID
	if clientID == "" {
		clientID = "{clientId}"
	}

	return map[string]string{
		"${version_name}":       manifest.ID,
		"${version_type}":       releaseType,
		"${assets_root}":        filepath.Join(root, "assets"),
		"${assets_index_name}":  assetsIndexName,
		"${game_directory}":     gameDirectory,
		"${game_assets}":        filepath.Join(root, "assets", "virtual", "legacy"),
		"${library_directory}":  filepath.Join(root, "libraries"),
		"${classpath_separator}": platform.ClasspathSeparator(),
		"${classpath}":          opts.Classpath,
		"${natives_directory}":  opts.NativesDirectory,
		"${user_type}":          string(opts.UserType),
		"${user_properties}":    "{}",
		"${launcher_name}":      launcherName,
		"${launcher_version}":   launcherVersion,
		"${auth_player_name}":   opts.Username,
		"${auth_uuid}":          uuid,
		"${auth_xuid}":          xuid,
		"${auth_access_token}":  token,
		"${auth_session}":       token,
		"${resolution_width}":   width,
		"${resolution_height}":  height,
		"${clientid}":           clientID,
	}
}

// replacerFor builds a strings.Replacer that applies every substitution
// simultaneously in a single pass, rather than the original's sequential
// ogargs.replace() chain (which silently drops every assignment to
// ${game_assets} after the first, since the token is already consumed by
// the time later replacements run).
func replacerFor(subs map[string]string) *strings.Replacer {
	pairs := make([]string, 0, len(subs)*2)
	for k, v := range subs {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...)
}

// ExpandArguments walks a manifest's argument list, substituting tokens
// per buildSubstitutions and filtering by rule, grounded in get_arguments.
func ExpandArguments(args []model.Argument, manifest *model.VersionDetails, opts *model.GameOptions, root string) []string {
	replacer := replacerFor(buildSubstitutions(manifest, opts, root))

	var out []string
	for _, a := range args {
		switch a.Shape {
		case model.ShapePlain:
			out = append(out, replacer.Replace(a.Plain))
		case model.ShapeRuleMulti:
			if !platform.EvaluateRules(a.Rules, opts, "") {
				continue
			}
			for _, v := range a.Multi {
				out = append(out, replacer.Replace(v))
			}
		case model.ShapeRuleSingle:
			if !platform.EvaluateRules(a.Rules, opts, "") {
				continue
			}
			// Pushed unexpanded: mirrors get_arguments's RuleSingle arm,
			// which pushes value.clone() without calling replace_argument.
			out = append(out, a.Single)
		}
	}
	return out
}
