// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/platform/middleware"
	"github.com/taibuivan/reelhub/internal/platform/sec"
	"github.com/taibuivan/reelhub/internal/users/account"
)

// countingLimiter is an in-process AttemptLimiter.
type countingLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
}

func newCountingLimiter(max int) *countingLimiter {
	return &countingLimiter{max: max, failures: make(map[string]int)}
}

func (limiter *countingLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	if limiter.failures[key] >= limiter.max {
		return false, 90 * time.Second, nil
	}
	return true, 0, nil
}

func (limiter *countingLimiter) RecordFailure(_ context.Context, key string) error {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	limiter.failures[key]++
	return nil
}

func (limiter *countingLimiter) Reset(_ context.Context, key string) error {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
	return nil
}

// stubIdentities returns a fixed identity for one known token.
type stubIdentities struct {
	identity *sec.ExternalIdentity
}

func (stub stubIdentities) VerifyIDToken(_ context.Context, raw string) (*sec.ExternalIdentity, error) {
	if raw != "good-id-token" {
		return nil, sec.ErrIdentityInvalid
	}
	return stub.identity, nil
}

type testEnv struct {
	router     http.Handler
	service    *account.Service
	repository *account.MemoryRepository
	tokens     *sec.TokenService
	limiter    *countingLimiter
}

func newTestEnv(t *testing.T, identities account.IdentityVerifier) *testEnv {
	t.Helper()

	credentials, err := sec.NewCredentialStore(sec.DefaultKDFParams())
	require.NoError(t, err)
	tokens, err := sec.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), 24*time.Hour, "reelhub.test")
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repository := account.NewMemoryRepository()
	limiter := newCountingLimiter(3)
	service := account.NewService(repository, credentials, tokens, limiter, identities, logger)

	router := chi.NewRouter()
	router.Route("/user", func(r chi.Router) {
		account.NewHandler(service).RegisterRoutes(r, middleware.RequireAccount(tokens, service))
	})

	return &testEnv{router: router, service: service, repository: repository, tokens: tokens, limiter: limiter}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, request)

	var payload map[string]any
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder, payload
}

func signupBody(username, password string) map[string]any {
	return map[string]any{
		"username":        username,
		"password":        password,
		"confirmPassword": password,
		"displayName":     "Movie Buff Jr",
	}
}

// signupToken registers an account over HTTP and returns its token.
func (env *testEnv) signupToken(t *testing.T, username, password string) string {
	t.Helper()
	recorder, payload := env.do(t, http.MethodPost, "/user/signup", "", signupBody(username, password))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	return payload["data"].(map[string]any)["token"].(string)
}
