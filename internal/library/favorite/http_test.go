// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorite_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/library/favorite"
	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/ctxutil"
	"github.com/taibuivan/reelhub/internal/platform/respond"
	"github.com/taibuivan/reelhub/internal/platform/sec"
)

const (
	alice = "01890a5d-ac96-774b-bcce-b302099a8057"
	bob   = "01890a5d-ac96-774b-bcce-b302099a8058"
)

// headerGuard stands in for the token guard: the account id comes from a header.
func headerGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		accountID := request.Header.Get("X-Account")
		if accountID == "" {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized"))
			return
		}
		ctx := ctxutil.WithPrincipal(request.Context(), &sec.Principal{AccountID: accountID})
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func newRouter() http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	service := favorite.NewService(favorite.NewMemoryRepository(), logger)

	router := chi.NewRouter()
	router.Route("/favorites", func(r chi.Router) {
		favorite.NewHandler(service).RegisterRoutes(r, headerGuard)
	})
	return router
}

func call(t *testing.T, router http.Handler, method, path, accountID string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request := httptest.NewRequest(method, path, reader)
	if accountID != "" {
		request.Header.Set("X-Account", accountID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return recorder.Code, payload
}

func movie(id, title string) map[string]any {
	return map[string]any{
		"mediaType":   "movie",
		"mediaId":     id,
		"mediaTitle":  title,
		"mediaPoster": "/poster.jpg",
		"mediaRate":   8.4,
	}
}

/*
TestFavorites_Scenario walks through add, idempotent re-add, listing and
owner-only removal.
*/
func TestFavorites_Scenario(t *testing.T) {
	router := newRouter()

	status, payload := call(t, router, http.MethodPost, "/favorites/", alice, movie("550", "Fight Club"))
	require.Equal(t, http.StatusCreated, status)
	first := payload["data"].(map[string]any)
	assert.Equal(t, alice, first["accountId"])
	assert.Equal(t, "550", first["mediaId"])
	assert.Equal(t, 8.4, first["mediaRate"])

	status, payload = call(t, router, http.MethodPost, "/favorites/", alice, movie("550", "Fight Club"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first["id"], payload["data"].(map[string]any)["id"])

	status, _ = call(t, router, http.MethodPost, "/favorites/", alice, movie("680", "Pulp Fiction"))
	require.Equal(t, http.StatusCreated, status)

	status, payload = call(t, router, http.MethodGet, "/favorites/", alice, nil)
	require.Equal(t, http.StatusOK, status)
	list := payload["data"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "680", list[0].(map[string]any)["mediaId"])

	status, payload = call(t, router, http.MethodGet, "/favorites/", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, payload["data"])

	path := "/favorites/" + first["id"].(string)
	status, _ = call(t, router, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = call(t, router, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, router, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

/*
TestFavorites_Validation reports every failing field.
*/
func TestFavorites_Validation(t *testing.T) {
	router := newRouter()

	status, payload := call(t, router, http.MethodPost, "/favorites/", alice, map[string]any{
		"mediaType": "anime",
		"mediaRate": 11,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])

	fields := make([]string, 0)
	for _, detail := range payload["details"].([]any) {
		fields = append(fields, detail.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"mediaType", "mediaId", "mediaTitle", "mediaRate"}, fields)
}

/*
TestFavorites_RequireAccount rejects anonymous callers.
*/
func TestFavorites_RequireAccount(t *testing.T) {
	router := newRouter()

	status, _ := call(t, router, http.MethodGet, "/favorites/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, router, http.MethodDelete, "/favorites/not-a-uuid", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
