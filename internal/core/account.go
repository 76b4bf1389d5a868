// Package core persists locally cached credentials and installed-instance
// bookkeeping, both observing the façade/ClientBuilder flow without ever
// substituting for it.
package core

import (
	"time"

	"github.com/quasar/mc-installer/internal/model"
)

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeMSA     AccountType = "msa"
	AccountTypeOffline AccountType = "offline"
)

// Account represents a Minecraft account
type Account struct {
	ID             string      `json:"id"`             // UUID
	Name           string      `json:"name"`           // Username
	Type           AccountType `json:"type"`           // msa or offline
	AccessToken    string      `json:"accessToken"`    // Valid Minecraft Access Token
	ExpiresAt      time.Time   `json:"expiresAt"`      // When MC token expires
	MSARefreshToken string     `json:"msaRefreshToken,omitempty"` // For refreshing MSA token
}

// IsExpired checks if the token is expired (with 5m buffer)
func (a *Account) IsExpired() bool {
	if a.Type == AccountTypeOffline {
		return false
	}
	return time.Now().Add(5 * time.Minute).After(a.ExpiresAt)
}

// ToModelAccount adapts a persisted Account into the shape
// ClientBuilder.AsMSAUser consumes. xuid is passed in separately since it
// is a short-lived value from the auth flow, not one this cache persists.
func (a *Account) ToModelAccount(xuid string) model.Account {
	var out model.Account
	out.Profile.ID = a.ID
	out.Profile.Name = a.Name
	out.AccessToken = a.AccessToken
	out.XUID = xuid
	return out
}
