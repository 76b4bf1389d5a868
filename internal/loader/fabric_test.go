package loader

import (
	"testing"

	"github.com/quasar/mc-installer/internal/model"
)

func TestPickLatestLoaderVersionPicksFirstListed(t *testing.T) {
	loaders := []model.FabricLoaderVersion{
		{Version: "0.14.9"},
		{Version: "0.15.0"},
		{Version: "0.14.21"},
	}
	got, err := pickLatestLoaderVersion(loaders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0.14.9" {
		t.Fatalf("expected the first-listed entry 0.14.9 (no re-sort), got %s", got)
	}
}

func TestPickLatestLoaderVersionDoesNotRequireSemver(t *testing.T) {
	loaders := []model.FabricLoaderVersion{{Version: "not-semver"}}
	got, err := pickLatestLoaderVersion(loaders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "not-semver" {
		t.Fatalf("expected the first entry regardless of semver-parsability, got %s", got)
	}
}

func TestPickLatestLoaderVersionEmptyIsNotFound(t *testing.T) {
	_, err := pickLatestLoaderVersion(nil)
	if err == nil {
		t.Fatal("expected an error for an empty loader list")
	}
}
