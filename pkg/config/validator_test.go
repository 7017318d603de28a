// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() ClientConfig {
	return ClientConfig{
		AppID:          "app",
		AppKey:         "key",
		Host:           "https://devcop.brightspace.com",
		Port:           443,
		UserID:         "user",
		UserKey:        "user-key",
		Mode:           ModeSigned,
		DefaultVersion: "1.0",
		Timeout:        30 * time.Second,
		Logging:        LoggingConf{Enabled: true, Level: "info", Format: "console"},
	}
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr string
	}{
		{name: "Valid Config", mutate: func(*ClientConfig) {}},
		{name: "Missing AppID", mutate: func(c *ClientConfig) { c.AppID = "" }, wantErr: "ClientConfig.AppID"},
		{name: "Invalid Mode", mutate: func(c *ClientConfig) { c.Mode = "oauth" }, wantErr: "oneof"},
		{name: "Invalid Log Level", mutate: func(c *ClientConfig) { c.Logging.Level = "trace" }, wantErr: "Logging.Level"},
		{name: "Datadog without address", mutate: func(c *ClientConfig) { c.Metrics.Datadog.Enabled = true }, wantErr: "required_if"},
		{name: "Invalid callback", mutate: func(c *ClientConfig) { c.CallbackURL = "not a url" }, wantErr: "CallbackURL"},
		{name: "User without key", mutate: func(c *ClientConfig) { c.UserKey = "" }, wantErr: "juntos"},
		{name: "Token mode without user", mutate: func(c *ClientConfig) {
			c.Mode = ModeToken
			c.UserID, c.UserKey = "", ""
		}, wantErr: "modo 'token'"},
		{name: "Token mode with user", mutate: func(c *ClientConfig) { c.Mode = ModeToken }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := validator.Validate(&cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, value string) (string, error) {
	if v, ok := m[value]; ok {
		return v, nil
	}
	return "", errors.New("unknown reference")
}

func env(values map[string]string) LoadOption {
	return WithLookup(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults e segredos", func(t *testing.T) {
		cfg, err := Load(ctx,
			env(map[string]string{
				"VALENCE_APP_ID":   "app",
				"VALENCE_APP_KEY":  "ssm:///valence/app-key",
				"VALENCE_HOST":     "devcop.brightspace.com",
				"VALENCE_USER_ID":  "user",
				"VALENCE_USER_KEY": "secretsmanager://valence#user_key",
				"VALENCE_TIMEOUT":  "5s",
			}),
			WithResolver(mapResolver{
				"ssm:///valence/app-key":            "resolved-app-key",
				"secretsmanager://valence#user_key": "resolved-user-key",
			}),
		)
		require.NoError(t, err)

		assert.Equal(t, "resolved-app-key", cfg.AppKey)
		assert.Equal(t, "resolved-user-key", cfg.UserKey)
		assert.Equal(t, 443, cfg.Port)
		assert.Equal(t, ModeSigned, cfg.Mode)
		assert.Equal(t, "1.0", cfg.DefaultVersion)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "valence:session", cfg.Session.RedisKey)
		assert.False(t, cfg.TokenMode())
	})

	t.Run("AppID ausente falha na validação", func(t *testing.T) {
		_, err := Load(ctx,
			env(map[string]string{"VALENCE_APP_KEY": "k", "VALENCE_HOST": "h"}),
			WithResolver(mapResolver{}),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AppID")
	})

	t.Run("Segredo não resolvido", func(t *testing.T) {
		_, err := Load(ctx,
			env(map[string]string{
				"VALENCE_APP_ID":  "app",
				"VALENCE_APP_KEY": "ssm:///missing",
				"VALENCE_HOST":    "h",
			}),
			WithResolver(mapResolver{}),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AppKey")
	})

	t.Run("Duração inválida", func(t *testing.T) {
		_, err := Load(ctx,
			env(map[string]string{"VALENCE_TIMEOUT": "soon"}),
			WithResolver(mapResolver{}),
		)
		assert.Error(t, err)
	})
}
