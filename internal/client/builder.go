package client

import (
	"crypto/rand"
	"fmt"

	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

// ClientBuilder fluently configures a GameOptions/version id pair before
// producing a Client, grounded in ClientBuilder's setter chain.
type ClientBuilder struct {
	options   model.GameOptions
	minecraft string
	root      string
}

// New starts a builder rooted at root (the resolved game directory).
func New(root string) *ClientBuilder {
	return &ClientBuilder{root: root}
}

// SetJVMArgs sets the raw, whitespace-split JVM argument string.
func (b *ClientBuilder) SetJVMArgs(args string) *ClientBuilder {
	b.options.JVMArguments = args
	return b
}

// SetJava overrides the java executable used at launch. An empty path
// leaves the builder's runtime-probe default in place.
func (b *ClientBuilder) SetJava(path string) *ClientBuilder {
	if path != "" {
		b.options.ExecutablePath = path
	}
	return b
}

// AsDevUser configures a throwaway offline identity: a random UUID and a
// placeholder username, grounded in as_dev_user.
func (b *ClientBuilder) AsDevUser() *ClientBuilder {
	b.options.UUID = randomUUID()
	b.options.Username = "Rusty"
	b.options.UserType = model.UserTypeUnknown
	return b
}

// AsUser configures a locally supplied Mojang identity, grounded in
// as_user.
func (b *ClientBuilder) AsUser(username, uuid, token string) *ClientBuilder {
	b.options.UUID = uuid
	b.options.Username = username
	b.options.Token = token
	b.options.UserType = model.UserTypeMojang
	return b
}

// AsMSAUser configures a Microsoft identity from an already-authenticated
// Account, grounded in as_msa_user.
func (b *ClientBuilder) AsMSAUser(account model.Account) *ClientBuilder {
	b.options.UserType = model.UserTypeMicrosoft
	b.options.XUID = account.XUID
	b.options.Token = account.AccessToken
	b.options.UUID = account.Profile.ID
	b.options.Username = account.Profile.Name
	return b
}

// SetClientID sets the ${clientid} launch token.
func (b *ClientBuilder) SetClientID(id string) *ClientBuilder {
	b.options.ClientID = id
	return b
}

// EnableLogging turns on the manifest's log4j config argument at launch.
func (b *ClientBuilder) EnableLogging() *ClientBuilder {
	b.options.EnableLogging = true
	return b
}

// SetMinecraft composes the on-disk version id for mc under loader (nil
// for vanilla), deriving the inherited-profile naming convention each
// loader orchestrator installs under. Grounded verbatim in
// ClientBuilder::set_minecraft.
func (b *ClientBuilder) SetMinecraft(mc string, loader *model.Loader, loaderVersion string) error {
	if loader == nil {
		b.minecraft = mc
		return nil
	}

	switch *loader {
	case model.LoaderFabric:
		if loaderVersion == "" {
			return launcherr.General("missing loader version")
		}
		b.minecraft = fmt.Sprintf("fabric-loader-%s-%s", loaderVersion, mc)
	case model.LoaderForge:
		if loaderVersion == "" {
			return launcherr.General("missing loader version")
		}
		b.minecraft = fmt.Sprintf("%s-forge-%s", mc, loaderVersion)
	case model.LoaderOptiFine:
		if loaderVersion == "" {
			return launcherr.General("missing loader version")
		}
		b.minecraft = fmt.Sprintf("%s-OptiFine_%s", mc, loaderVersion)
	default:
		b.minecraft = mc
	}
	return nil
}

// Build produces a Client, failing if no version id was ever set.
func (b *ClientBuilder) Build() (*Client, error) {
	if b.minecraft == "" {
		return nil, launcherr.General("minecraft version is unset")
	}
	opts := b.options
	return &Client{options: &opts, versionID: b.minecraft, root: b.root}, nil
}

func randomUUID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "00000000-0000-4000-8000-000000000000"
	}
	buf[6] = (buf[6] & 0x0f) | 0x40
	buf[8] = (buf[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", buf[0:4], buf[4:6], buf[6:8], buf[8:10], buf[10:16])
}
