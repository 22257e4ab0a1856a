// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/constants"
	"github.com/taibuivan/reelhub/internal/platform/ctxutil"
	"github.com/taibuivan/reelhub/internal/platform/respond"
	"github.com/taibuivan/reelhub/internal/platform/sec"
)

// TokenVerifier verifies a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*sec.Claims, error)
}

// PrincipalResolver loads the account a verified token points at.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, accountID string) (*sec.Principal, error)
}

// errUnauthorized is the single answer of the guard, whatever the cause.
var errUnauthorized = apperr.Unauthorized("Unauthorized")

// RequireAccount rejects requests without a valid session.
//
// # Flow
//  1. Extract the token from 'Authorization: Bearer <token>'.
//  2. Verify it via [TokenVerifier].
//  3. Resolve the account via [PrincipalResolver]; a missing account, an error
//     or a panic all fail closed.
//  4. Attach the [*sec.Principal] and an account-scoped logger, then continue.
//
// Every rejection is a 401 with the same message; the reason is logged only.
func RequireAccount(verifier TokenVerifier, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			// 1. Extract
			token, ok := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if !ok {
				respond.Error(writer, request, errUnauthorized)
				return
			}

			// 2. Verify
			claims, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(ctx, "auth_token_rejected", slog.String("reason", err.Error()))
				respond.Error(writer, request, errUnauthorized)
				return
			}

			// 3. Resolve
			principal, err := resolveSafely(ctx, resolver, claims.AccountID)
			if err != nil || principal == nil {
				logger.WarnContext(ctx, "auth_account_unresolved",
					slog.String("account_id", claims.AccountID),
					slog.Any("error", err),
				)
				respond.Error(writer, request, errUnauthorized)
				return
			}

			// 4. Attach
			ctx = ctxutil.WithPrincipal(ctx, principal)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.String("account_id", principal.AccountID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken parses the header value. The scheme is case-insensitive and the
// header must contain exactly the scheme and a non-empty token.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
		return "", false
	}
	return parts[1], true
}

func resolveSafely(ctx context.Context, resolver PrincipalResolver, accountID string) (principal *sec.Principal, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			principal, err = nil, fmt.Errorf("principal resolver panicked: %v", recovered)
		}
	}()
	return resolver.ResolvePrincipal(ctx, accountID)
}
