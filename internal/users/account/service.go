// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/dberr"
	"github.com/taibuivan/reelhub/internal/platform/sec"
	"github.com/taibuivan/reelhub/internal/platform/validate"
	"github.com/taibuivan/reelhub/pkg/textnorm"
	"github.com/taibuivan/reelhub/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer signs session tokens for an account id.
type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

// IdentityVerifier validates an externally issued ID token.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, rawIDToken string) (*sec.ExternalIdentity, error)
}

var (
	errInvalidCredentials = apperr.InvalidCredentials("Invalid username or password")
	errWrongPassword      = apperr.InvalidCredentials("Wrong password")
	errUsernameTaken      = apperr.ValidationError("username already used",
		apperr.FieldError{Field: FieldUsername, Message: "username already used"})
	errUnauthorized = apperr.Unauthorized("Unauthorized")
)

// storedNameRules hold for every locally registered account, whoever calls Signup.
var storedNameRules = validate.NewPipeline(
	validate.MinLength(FieldUsername, MinFieldLength),
	validate.MinLength(FieldDisplayName, MinFieldLength),
)

// Service implements the account use cases.
//
// # Security
//
// Signin answers unknown usernames and wrong passwords identically, and every
// password set draws a fresh salt.
type Service struct {
	repository  Repository
	credentials *sec.CredentialStore
	tokens      TokenIssuer
	limiter     AttemptLimiter
	identities  IdentityVerifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new [Service]. identities may be nil, which disables
// external sign-in.
func NewService(
	repository Repository,
	credentials *sec.CredentialStore,
	tokens TokenIssuer,
	limiter AttemptLimiter,
	identities IdentityVerifier,
	logger *slog.Logger,
) *Service {
	if limiter == nil {
		limiter = NoopAttemptLimiter{}
	}
	return &Service{
		repository:  repository,
		credentials: credentials,
		tokens:      tokens,
		limiter:     limiter,
		identities:  identities,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ExternalSigninEnabled reports whether an identity verifier was configured.
func (service *Service) ExternalSigninEnabled() bool {
	return service.identities != nil
}

// # Lookups

// UsernameTaken reports whether an account already uses username. It backs
// the signup pipeline's uniqueness rule.
func (service *Service) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := service.repository.FindByUsername(ctx, textnorm.Identifier(username))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, dberr.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("account_service_username_lookup_failed: %w", err)
	}
}

// ResolvePrincipal loads the account behind a verified token for the guard.
func (service *Service) ResolvePrincipal(ctx context.Context, accountID string) (*sec.Principal, error) {
	account, err := service.repository.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return account.Principal(), nil
}

// # Registration Flow

// SignupInput holds the validated signup payload.
type SignupInput struct {
	Username    string
	Password    string
	DisplayName string
}

/*
Signup creates a local account and signs it in.

# Flow

 1. Normalize the names and re-check their length on the stored form.
 2. Build the account with a fresh UUIDv7 and derive the credential (fresh salt).
 3. Persist; a unique violation means the username was taken concurrently.
 4. Issue a session token.
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	username := textnorm.Identifier(input.Username)
	displayName := textnorm.Identifier(input.DisplayName)

	if err := storedNameRules.Evaluate(ctx, validate.Fields{
		FieldUsername:    username,
		FieldDisplayName: displayName,
	}); err != nil {
		return nil, err
	}

	now := service.now()
	account := &Account{
		ID:          uuid.New(),
		Username:    username,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.credentials.SetPassword(&account.Credential, input.Password); err != nil {
		return nil, fmt.Errorf("account_service_signup_hash_failed: %w", err)
	}

	if err := service.repository.Create(ctx, account); err != nil {
		if errors.Is(err, dberr.ErrDuplicate) {
			return nil, errUsernameTaken
		}
		return nil, fmt.Errorf("account_service_signup_failed: %w", err)
	}

	session, err := service.newSession(account)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_signed_up", slog.String("account_id", account.ID))
	return session, nil
}

// # Authentication Flow

// SigninInput holds the validated signin payload.
type SigninInput struct {
	Username string
	Password string
}

/*
Signin checks a username/password pair and issues a session token.

Failed attempts are counted per username; once the limit is reached the
caller gets 429 until the lockout expires. Throttle storage errors are logged
and the attempt proceeds.
*/
func (service *Service) Signin(ctx context.Context, input SigninInput) (*Session, error) {
	username := textnorm.Identifier(input.Username)

	allowed, retryAfter, err := service.limiter.Allow(ctx, username)
	if err != nil {
		service.logger.WarnContext(ctx, "signin_throttle_unavailable", slog.Any("error", err))
	} else if !allowed {
		return nil, apperr.RateLimited(int(math.Ceil(retryAfter.Seconds())))
	}

	account, err := service.repository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			service.recordFailure(ctx, username)
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("account_service_signin_lookup_failed: %w", err)
	}

	if !service.credentials.ValidPassword(account.Credential, input.Password) {
		service.recordFailure(ctx, username)
		return nil, errInvalidCredentials
	}

	if err := service.limiter.Reset(ctx, username); err != nil {
		service.logger.WarnContext(ctx, "signin_throttle_reset_failed", slog.Any("error", err))
	}

	session, err := service.newSession(account)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_signed_in", slog.String("account_id", account.ID))
	return session, nil
}

func (service *Service) recordFailure(ctx context.Context, username string) {
	if err := service.limiter.RecordFailure(ctx, username); err != nil {
		service.logger.WarnContext(ctx, "signin_throttle_record_failed", slog.Any("error", err))
	}
}

// # Password Management

// UpdatePasswordInput holds the validated update-password payload.
type UpdatePasswordInput struct {
	Password    string
	NewPassword string
}

/*
UpdatePassword replaces the password of the authenticated account.

Returns:
  - 401 when the account no longer exists
  - 400 "Wrong password" when the current password does not match
*/
func (service *Service) UpdatePassword(ctx context.Context, accountID string, input UpdatePasswordInput) error {
	account, err := service.repository.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return errUnauthorized
		}
		return fmt.Errorf("account_service_update_password_lookup_failed: %w", err)
	}

	if !service.credentials.ValidPassword(account.Credential, input.Password) {
		return errWrongPassword
	}

	if err := service.credentials.SetPassword(&account.Credential, input.NewPassword); err != nil {
		return fmt.Errorf("account_service_update_password_hash_failed: %w", err)
	}
	account.UpdatedAt = service.now()

	if err := service.repository.Update(ctx, account); err != nil {
		return fmt.Errorf("account_service_update_password_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "account_password_updated", slog.String("account_id", account.ID))
	return nil
}

// # Profile

// GetInfo returns the public profile of an account.
func (service *Service) GetInfo(ctx context.Context, accountID string) (*Profile, error) {
	account, err := service.repository.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("account_service_get_info_failed: %w", err)
	}

	profile := account.Profile()
	return &profile, nil
}

// # External Identity

/*
SigninExternal signs in with an ID token from the configured OpenID provider.

# Flow

 1. Verify the ID token; reject unverified emails.
 2. Find the local account by email.
 3. If none exists, provision one (username = email) with a random password
    nobody knows, so the account can only sign in externally.
 4. Issue a session token.
*/
func (service *Service) SigninExternal(ctx context.Context, rawIDToken string) (*Session, error) {
	if service.identities == nil {
		return nil, errUnauthorized
	}

	identity, err := service.identities.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		service.logger.WarnContext(ctx, "external_identity_rejected", slog.Any("error", err))
		return nil, errUnauthorized
	}
	if !identity.EmailVerified {
		service.logger.WarnContext(ctx, "external_identity_unverified_email", slog.String("subject", identity.Subject))
		return nil, errUnauthorized
	}

	email := textnorm.Email(identity.Email)
	if err := (&validate.Validator{}).Email(FieldEmail, email).Err(); err != nil {
		service.logger.WarnContext(ctx, "external_identity_invalid_email", slog.String("subject", identity.Subject))
		return nil, errUnauthorized
	}

	account, err := service.repository.FindByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, dberr.ErrNotFound):
		account, err = service.provisionExternal(ctx, email, identity.Name)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("account_service_external_lookup_failed: %w", err)
	}

	session, err := service.newSession(account)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "account_signed_in_external", slog.String("account_id", account.ID))
	return session, nil
}

func (service *Service) provisionExternal(ctx context.Context, email, name string) (*Account, error) {
	displayName := textnorm.Identifier(name)
	if displayName == "" {
		displayName = email
	}

	now := service.now()
	account := &Account{
		ID:          uuid.New(),
		Username:    email,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	password, err := sec.GenerateSecureToken(constants.ExternalPasswordBytes)
	if err != nil {
		return nil, fmt.Errorf("account_service_external_password_failed: %w", err)
	}
	if err := service.credentials.SetPassword(&account.Credential, password); err != nil {
		return nil, fmt.Errorf("account_service_external_hash_failed: %w", err)
	}

	err = service.repository.Create(ctx, account)
	if err == nil {
		service.logger.InfoContext(ctx, "account_provisioned_external", slog.String("account_id", account.ID))
		return account, nil
	}
	if !errors.Is(err, dberr.ErrDuplicate) {
		return nil, fmt.Errorf("account_service_external_provision_failed: %w", err)
	}

	// A concurrent sign-in may have provisioned the same email first.
	existing, findErr := service.repository.FindByEmail(ctx, email)
	if findErr == nil {
		return existing, nil
	}
	return nil, apperr.Conflict("username already used")
}

// # Helpers

func (service *Service) newSession(account *Account) (*Session, error) {
	token, err := service.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_token_issue_failed: %w", err)
	}
	return &Session{Token: token, Profile: account.Profile()}, nil
}
