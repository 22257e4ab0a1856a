// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account owns the identity of a Reelhub user: local signup and signin,
password updates, external (OpenID Connect) sign-in and the guard's account lookup.

# Architecture

  - Entity: Account, with the credential kept out of every projection.
  - Repository: PostgreSQL, MongoDB and in-memory implementations.
  - Service: credential checks, token issuance and signin throttling.
  - Handler: chi routes gated by the validation pipeline and RequireAccount.
*/
package account

import (
	"time"

	"github.com/taibuivan/reelhub/internal/platform/sec"
)

// # Domain Entities

// Account is a registered user.
type Account struct {
	ID          string
	Username    string
	Email       string // empty for local accounts that never provided one
	DisplayName string
	Credential  sec.Credential
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Profile is the public projection of an [Account]. It is the only account
// shape that is ever serialized.
type Profile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Session is the signup/signin response: the profile plus a bearer token.
type Session struct {
	Token string `json:"token"`
	Profile
}

// Profile returns the public projection.
func (account *Account) Profile() Profile {
	return Profile{
		ID:          account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Email:       account.Email,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

// Principal returns the identity attached to authenticated requests.
func (account *Account) Principal() *sec.Principal {
	return &sec.Principal{
		AccountID:   account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
	}
}

// # Field Identifiers

// JSON field names shared by the request payloads and the validation rules.
const (
	FieldUsername           = "username"
	FieldPassword           = "password"
	FieldConfirmPassword    = "confirmPassword"
	FieldDisplayName        = "displayName"
	FieldNewPassword        = "newPassword"
	FieldConfirmNewPassword = "confirmNewPassword"
	FieldIDToken            = "idToken"
	FieldEmail              = "email"
)

// MinFieldLength is the minimum length of usernames, passwords and display names.
const MinFieldLength = 8
