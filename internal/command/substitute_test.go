package command

import (
	"testing"

	"github.com/quasar/mc-installer/internal/model"
)

func baseManifest() *model.VersionDetails {
	return &model.VersionDetails{ID: "1.19", Type: model.VersionTypeRelease, Assets: "13"}
}

func TestExpandArgumentsPlainSubstitutesTokens(t *testing.T) {
	opts := &model.GameOptions{Username: "Steve"}
	args := []model.Argument{
		{Shape: model.ShapePlain, Plain: "--username"},
		{Shape: model.ShapePlain, Plain: "${auth_player_name}"},
	}
	got := ExpandArguments(args, baseManifest(), opts, "/root")
	want := []string{"--username", "Steve"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("arg %d: want %q got %q", i, w, got[i])
		}
	}
}

func TestExpandArgumentsGameAssetsNotDroppedAfterFirstUse(t *testing.T) {
	opts := &model.GameOptions{}
	args := []model.Argument{{Shape: model.ShapePlain, Plain: "${game_assets}"}}
	got := ExpandArguments(args, baseManifest(), opts, "/root")
	if got[0] == "${game_assets}" {
		t.Fatal("expected ${game_assets} to be substituted")
	}
}

func TestExpandArgumentsRuleMultiFiltersAndSubstitutes(t *testing.T) {
	opts := &model.GameOptions{}
	args := []model.Argument{
		{
			Shape: model.ShapeRuleMulti,
			Rules: []model.Rule{{Action: model.ActionAllow, OS: &model.OSRule{Name: "bogus-os"}}},
			Multi: []string{"--should-be-skipped"},
		},
		{
			Shape: model.ShapeRuleMulti,
			Multi: []string{"--width", "${resolution_width}"},
		},
	}
	got := ExpandArguments(args, baseManifest(), opts, "/root")
	if len(got) != 2 || got[0] != "--width" || got[1] != "854" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestExpandArgumentsRuleSinglePushesLiteralUnexpanded(t *testing.T) {
	opts := &model.GameOptions{}
	args := []model.Argument{{Shape: model.ShapeRuleSingle, Single: "${auth_player_name}"}}
	got := ExpandArguments(args, baseManifest(), opts, "/root")
	if got[0] != "${auth_player_name}" {
		t.Fatalf("expected the rule-single value to stay unexpanded, got %q", got[0])
	}
}
