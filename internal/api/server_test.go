// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/api"
	"github.com/taibuivan/reelhub/internal/library/favorite"
	"github.com/taibuivan/reelhub/internal/library/review"
	"github.com/taibuivan/reelhub/internal/platform/config"
	"github.com/taibuivan/reelhub/internal/platform/middleware"
	"github.com/taibuivan/reelhub/internal/platform/sec"
	"github.com/taibuivan/reelhub/internal/users/account"
)

func newServer(t *testing.T, checks []api.Check) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		ServerPort:     "0",
		Environment:    "test",
		RequestTimeout: 5 * time.Second,
		StorageDriver:  config.DriverMemory,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	credentials, err := sec.NewCredentialStore(sec.DefaultKDFParams())
	require.NoError(t, err)
	tokens, err := sec.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour, "reelhub.test")
	require.NoError(t, err)

	accountService := account.NewService(account.NewMemoryRepository(), credentials, tokens, nil, nil, logger)
	liveness, readiness := api.NewHealthHandlers(checks, logger)

	server := api.NewServer(ctx, cfg, logger, middleware.RequireAccount(tokens, accountService), api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Account:   account.NewHandler(accountService),
		Favorite:  favorite.NewHandler(favorite.NewService(favorite.NewMemoryRepository(), logger)),
		Review:    review.NewHandler(review.NewService(review.NewMemoryRepository(), logger)),
	})
	return server.Handler()
}

func send(t *testing.T, handler http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	request.RemoteAddr = "203.0.113.7:4000"
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return recorder, payload
}

/*
TestServer_EndToEnd signs up, then uses the token across every mounted area.
*/
func TestServer_EndToEnd(t *testing.T) {
	handler := newServer(t, nil)

	recorder, payload := send(t, handler, http.MethodPost, "/api/v1/user/signup", "", map[string]any{
		"username":        "moviebuff",
		"password":        "supersecret",
		"confirmPassword": "supersecret",
		"displayName":     "Movie Buff Jr",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	token := payload["data"].(map[string]any)["token"].(string)

	recorder, payload = send(t, handler, http.MethodGet, "/api/v1/user/info", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "moviebuff", payload["data"].(map[string]any)["username"])

	recorder, _ = send(t, handler, http.MethodPost, "/api/v1/user/favorites", token, map[string]any{
		"mediaType": "movie", "mediaId": "603", "mediaTitle": "The Matrix", "mediaRate": 8.7,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, payload = send(t, handler, http.MethodGet, "/api/v1/user/favorites", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, payload["data"], 1)

	recorder, _ = send(t, handler, http.MethodPost, "/api/v1/reviews", token, map[string]any{
		"content": "Still holds up.", "mediaType": "movie", "mediaId": "603", "mediaTitle": "The Matrix",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, payload = send(t, handler, http.MethodGet, "/api/v1/reviews/media/movie/603", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	reviews := payload["data"].([]any)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Movie Buff Jr", reviews[0].(map[string]any)["author"].(map[string]any)["displayName"])

	recorder, _ = send(t, handler, http.MethodGet, "/api/v1/user/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestServer_UnknownRoute answers with the JSON error envelope.
*/
func TestServer_UnknownRoute(t *testing.T) {
	handler := newServer(t, nil)

	recorder, payload := send(t, handler, http.MethodGet, "/api/v1/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", payload["code"])
}

/*
TestServer_MethodNotAllowed separates a wrong method from an unknown path.
*/
func TestServer_MethodNotAllowed(t *testing.T) {
	handler := newServer(t, nil)

	recorder, payload := send(t, handler, http.MethodDelete, "/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", payload["code"])
	assert.Equal(t, "Method not allowed", payload["error"])
}

/*
TestHealth covers liveness and both readiness outcomes.
*/
func TestHealth(t *testing.T) {
	healthy := api.Check{Name: "storage", Ping: func(context.Context) error { return nil }}
	failing := api.Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("liveness", func(t *testing.T) {
		recorder, payload := send(t, newServer(t, nil), http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "ok", payload["data"].(map[string]any)["status"])
	})

	t.Run("ready", func(t *testing.T) {
		recorder, payload := send(t, newServer(t, []api.Check{healthy}), http.MethodGet, "/ready", "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "ready", payload["data"].(map[string]any)["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		recorder, payload := send(t, newServer(t, []api.Check{healthy, failing}), http.MethodGet, "/ready", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

		data := payload["data"].(map[string]any)
		assert.Equal(t, "degraded", data["status"])
		checks := data["checks"].([]any)
		require.Len(t, checks, 2)
		assert.Equal(t, false, checks[1].(map[string]any)["ok"])
		assert.Equal(t, "connection refused", checks[1].(map[string]any)["error"])
	})
}
