package client

import (
	"strings"
	"testing"

	"github.com/quasar/mc-installer/internal/model"
)

func TestBuildFailsWithoutMinecraftVersion(t *testing.T) {
	_, err := New(t.TempDir()).Build()
	if err == nil {
		t.Fatal("expected an error when no version was set")
	}
}

func TestSetMinecraftVanillaPassesThrough(t *testing.T) {
	b := New(t.TempDir())
	if err := b.SetMinecraft("1.19", nil, ""); err != nil {
		t.Fatal(err)
	}
	if b.minecraft != "1.19" {
		t.Fatalf("expected the bare version id, got %q", b.minecraft)
	}
}

func TestSetMinecraftFabricComposesID(t *testing.T) {
	loader := model.LoaderFabric
	b := New(t.TempDir())
	if err := b.SetMinecraft("1.19", &loader, "0.14.9"); err != nil {
		t.Fatal(err)
	}
	if b.minecraft != "fabric-loader-0.14.9-1.19" {
		t.Fatalf("unexpected composed id: %q", b.minecraft)
	}
}

func TestSetMinecraftForgeComposesID(t *testing.T) {
	loader := model.LoaderForge
	b := New(t.TempDir())
	if err := b.SetMinecraft("1.19", &loader, "41.1.0"); err != nil {
		t.Fatal(err)
	}
	if b.minecraft != "1.19-forge-41.1.0" {
		t.Fatalf("unexpected composed id: %q", b.minecraft)
	}
}

func TestSetMinecraftOptifineComposesID(t *testing.T) {
	loader := model.LoaderOptiFine
	b := New(t.TempDir())
	if err := b.SetMinecraft("1.19", &loader, "HD_U_H9"); err != nil {
		t.Fatal(err)
	}
	if b.minecraft != "1.19-OptiFine_HD_U_H9" {
		t.Fatalf("unexpected composed id: %q", b.minecraft)
	}
}

func TestSetMinecraftMissingLoaderVersionErrors(t *testing.T) {
	loader := model.LoaderFabric
	b := New(t.TempDir())
	if err := b.SetMinecraft("1.19", &loader, ""); err == nil {
		t.Fatal("expected an error for a missing loader version")
	}
}

func TestAsDevUserAssignsPlaceholderIdentity(t *testing.T) {
	b := New(t.TempDir())
	b.AsDevUser()
	if b.options.Username != "Rusty" {
		t.Fatalf("unexpected placeholder username: %q", b.options.Username)
	}
	if b.options.UserType != model.UserTypeUnknown {
		t.Fatalf("unexpected user type: %q", b.options.UserType)
	}
	if !strings.Contains(b.options.UUID, "-") {
		t.Fatalf("expected a hyphenated UUID, got %q", b.options.UUID)
	}
}

func TestAsMSAUserCopiesAccountFields(t *testing.T) {
	var account model.Account
	account.Profile.ID = "uuid-1"
	account.Profile.Name = "Steve"
	account.AccessToken = "tok"
	account.XUID = "xid"

	b := New(t.TempDir())
	b.AsMSAUser(account)
	if b.options.UserType != model.UserTypeMicrosoft {
		t.Fatalf("expected the microsoft user type, got %q", b.options.UserType)
	}
	if b.options.Username != "Steve" || b.options.UUID != "uuid-1" || b.options.Token != "tok" || b.options.XUID != "xid" {
		t.Fatalf("account fields not copied correctly: %+v", b.options)
	}
}

func TestBuildSucceedsAfterSettingMinecraft(t *testing.T) {
	b := New(t.TempDir())
	b.SetMinecraft("1.19", nil, "")
	b.AsDevUser()
	c, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.versionID != "1.19" {
		t.Fatalf("unexpected version id: %q", c.versionID)
	}
}
