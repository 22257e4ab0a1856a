// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/platform/apperr"
	"github.com/taibuivan/reelhub/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Spirited Away", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("mediaTitle", tt.value)

			if !tt.hasError {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
				return
			}

			assert.True(t, v.HasErrors())
			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, "mediaTitle", ae.Details[0].Field)
		})
	}
}

/*
TestValidator_OneOf checks the media type whitelist used by favorites and reviews.
*/
func TestValidator_OneOf(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"movie", true},
		{"tv", true},
		{"anime", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.OneOf("mediaType", tt.value, "movie", "tv")
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "viewer@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "viewer@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("content", "").
		MaxLen("mediaTitle", "abcdef", 3).
		UUID("favoriteId", "not-a-uuid").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Chain_Success runs a passing chain end to end.
*/
func TestValidator_Chain_Success(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("mediaId", "550").
		MaxLen("content", "Great film", 5000).
		UUID("favoriteId", "01890a5d-ac96-774b-bcce-b302099a8057").
		Custom("mediaRate", false, "Must be between 0 and 10").
		Err()

	assert.NoError(t, err)
}
