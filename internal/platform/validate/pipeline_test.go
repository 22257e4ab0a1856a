// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/respond"
	"github.com/taibuivan/reelhub/internal/platform/validate"
)

func signupPipeline(lookup validate.Lookup) *validate.Pipeline {
	return validate.NewPipeline(
		validate.Required("username"),
		validate.MinLength("username", 8),
		validate.Unique("username", lookup),
		validate.Required("password"),
		validate.MinLength("password", 8),
		validate.Required("confirmPassword"),
		validate.EqualsField("confirmPassword", "password").WithMessage("confirmPassword not match"),
	)
}

func neverTaken(context.Context, string) (bool, error) { return false, nil }

func serve(t *testing.T, pipeline *validate.Pipeline, body string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()

	var reached bool
	var seenBody string
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reached = true
		raw, err := io.ReadAll(request.Body)
		require.NoError(t, err)
		seenBody = string(raw)
		respond.OK(writer, nil)
	})

	request := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	pipeline.Middleware()(next).ServeHTTP(recorder, request)
	return recorder, reached, seenBody
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

/*
TestPipeline_MissingUsername verifies that the handler is not reached when the
first rule fails.
*/
func TestPipeline_MissingUsername(t *testing.T) {
	recorder, reached, _ := serve(t, signupPipeline(neverTaken), `{"password":"supersecret","confirmPassword":"supersecret"}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "username is required", decodeError(t, recorder).Error)
}

/*
TestPipeline_ConfirmMismatch checks the equality rule message.
*/
func TestPipeline_ConfirmMismatch(t *testing.T) {
	recorder, reached, _ := serve(t, signupPipeline(neverTaken),
		`{"username":"moviebuff","password":"abcdefgh","confirmPassword":"abcdefgX"}`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "confirmPassword not match", decodeError(t, recorder).Error)
}

/*
TestPipeline_PassRestoresBody ensures the handler reads the exact bytes that were validated.
*/
func TestPipeline_PassRestoresBody(t *testing.T) {
	body := `{"username":"moviebuff","password":"abcdefgh","confirmPassword":"abcdefgh"}`
	recorder, reached, seen := serve(t, signupPipeline(neverTaken), body)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, body, seen)
}

/*
TestPipeline_InvalidJSON rejects malformed bodies before any rule runs.
*/
func TestPipeline_InvalidJSON(t *testing.T) {
	recorder, reached, _ := serve(t, signupPipeline(neverTaken), `{"username":`)

	assert.False(t, reached)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid JSON payload", decodeError(t, recorder).Error)
}

/*
TestPipeline_ShortCircuit verifies that a failing rule prevents later lookups.
*/
func TestPipeline_ShortCircuit(t *testing.T) {
	var calls int
	lookup := func(context.Context, string) (bool, error) {
		calls++
		return false, nil
	}

	err := signupPipeline(lookup).Evaluate(context.Background(), validate.Fields{"username": "short"})

	require.Error(t, err)
	assert.Equal(t, "username minimum 8 characters", err.Error())
	assert.Zero(t, calls)
}

/*
TestPipeline_CollectAll keeps the first message while listing every violation.
*/
func TestPipeline_CollectAll(t *testing.T) {
	err := signupPipeline(neverTaken).CollectAll().Evaluate(context.Background(), validate.Fields{})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "username is required", ae.Message)
	assert.Len(t, ae.Details, 5)
	assert.Equal(t, "password", ae.Details[2].Field)
}

/*
TestPipeline_UniqueRule covers taken values and lookup failures.
*/
func TestPipeline_UniqueRule(t *testing.T) {
	fields := validate.Fields{"username": "moviebuff"}

	t.Run("taken", func(t *testing.T) {
		taken := func(context.Context, string) (bool, error) { return true, nil }
		err := validate.NewPipeline(validate.Unique("username", taken)).Evaluate(context.Background(), fields)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		assert.Equal(t, "username already used", ae.Message)
	})

	t.Run("lookup_error", func(t *testing.T) {
		broken := func(context.Context, string) (bool, error) { return false, errors.New("db down") }
		err := validate.NewPipeline(validate.Unique("username", broken)).Evaluate(context.Background(), fields)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusInternalServerError, ae.HTTPStatus)
	})
}

/*
TestFields_String renders non-string JSON values as text.
*/
func TestFields_String(t *testing.T) {
	fields := validate.Fields{"mediaId": float64(550), "empty": nil}

	assert.Equal(t, "550", fields.String("mediaId"))
	assert.Equal(t, "", fields.String("empty"))
	assert.Equal(t, "", fields.String("missing"))
	assert.False(t, fields.Has("empty"))
}

/*
TestPipeline_Normalize judges the normalized value while the handler still
receives the original bytes.
*/
func TestPipeline_Normalize(t *testing.T) {
	var looked []string
	lookup := func(_ context.Context, value string) (bool, error) {
		looked = append(looked, value)
		return false, nil
	}
	pipeline := signupPipeline(lookup).Normalize("username", strings.TrimSpace)

	t.Run("padding_does_not_count", func(t *testing.T) {
		recorder, reached, _ := serve(t, pipeline, `{"username":"   abc   ","password":"abcdefgh","confirmPassword":"abcdefgh"}`)

		assert.False(t, reached)
		assert.Equal(t, "username minimum 8 characters", decodeError(t, recorder).Error)
		assert.Empty(t, looked)
	})

	t.Run("lookup_sees_normalized_value", func(t *testing.T) {
		body := `{"username":"  moviebuff  ","password":"abcdefgh","confirmPassword":"abcdefgh"}`
		recorder, reached, seen := serve(t, pipeline, body)

		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, []string{"moviebuff"}, looked)
		assert.Equal(t, body, seen)
	})

	t.Run("non_text_values_untouched", func(t *testing.T) {
		err := pipeline.Evaluate(context.Background(), validate.Fields{"username": 12345678})
		require.Error(t, err)
		assert.Equal(t, "password is required", err.Error())
	})
}
