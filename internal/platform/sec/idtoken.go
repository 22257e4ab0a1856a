// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
)

// ErrIdentityInvalid is wrapped by every external ID token rejection.
var ErrIdentityInvalid = errors.New("sec: external identity invalid")

// ExternalIdentity is what the API trusts from an externally issued ID token.
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// OIDCVerifier checks ID tokens issued by an OpenID Connect provider for
// this API's client id (issuer, audience, expiry and signature).
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewOIDCVerifier discovers the provider's keys from its issuer URL.
func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("sec: oidc discovery for %s failed: %w", issuer, err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// NewStaticOIDCVerifier verifies against a fixed key set, without discovery.
func NewStaticOIDCVerifier(issuer, clientID string, keys oidc.KeySet, now func() time.Time) *OIDCVerifier {
	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuer, keys, &oidc.Config{ClientID: clientID, Now: now}),
	}
}

// VerifyIDToken validates rawIDToken and extracts the identity claims.
func (verifier *OIDCVerifier) VerifyIDToken(ctx context.Context, rawIDToken string) (*ExternalIdentity, error) {
	idToken, err := verifier.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityInvalid, err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityInvalid, err)
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrIdentityInvalid)
	}

	return &ExternalIdentity{
		Subject:       idToken.Subject,
		Email:         email,
		EmailVerified: claims.EmailVerified,
		Name:          strings.TrimSpace(claims.Name),
	}, nil
}
