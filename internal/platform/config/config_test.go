// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reelhub/internal/platform/config"
	"github.com/taibuivan/reelhub/internal/platform/sec"
)

const secret = "0123456789abcdef0123456789abcdef"

/*
TestLoad_Defaults verifies the documented defaults with the memory driver.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TOKEN_SECRET", secret)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("OIDC_CLIENT_ID", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, sec.DefaultKDFParams(), cfg.KDFParams())
	assert.Equal(t, 5, cfg.SigninMaxAttempts)
	assert.Equal(t, "reelhub", cfg.Mongo.Database)
	assert.False(t, cfg.ExternalSigninEnabled())
	assert.False(t, cfg.ThrottleEnabled())
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_Rejects covers the cross-field checks.
*/
func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing_secret", map[string]string{"STORAGE_DRIVER": "memory"}},
		{"short_secret", map[string]string{"STORAGE_DRIVER": "memory", "TOKEN_SECRET": "short"}},
		{"postgres_without_url", map[string]string{"TOKEN_SECRET": secret}},
		{"mongo_without_url", map[string]string{"STORAGE_DRIVER": "mongo", "TOKEN_SECRET": secret}},
		{"unknown_driver", map[string]string{"STORAGE_DRIVER": "sqlite", "TOKEN_SECRET": secret}},
		{"memory_in_production", map[string]string{"STORAGE_DRIVER": "memory", "ENVIRONMENT": "production", "TOKEN_SECRET": secret}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"TOKEN_SECRET", "STORAGE_DRIVER", "DATABASE_URL", "MONGODB_URL", "ENVIRONMENT"} {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestConfig_AllowedOrigins splits and trims EXTRA_ORIGINS.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://reelhub.app, ,https://www.reelhub.app "}
	assert.Equal(t, []string{"https://reelhub.app", "https://www.reelhub.app"}, cfg.AllowedOrigins())
}
