// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"codeberg.org/teamhub/qna/internal/config"
)

func runWithArgs(t *testing.T, args []string) *config.Config {
	t.Helper()
	var cfg *config.Config
	cmd := &cli.Command{
		Name:  "test",
		Flags: config.Flags(),
		Action: func(_ context.Context, c *cli.Command) error {
			cfg = config.NewFromCLI(c)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), args))
	require.NotNil(t, cfg)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := runWithArgs(t, []string{"test"})

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, "./data/qna.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "session_token", cfg.Session.CookieName)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.TLS)
}

func TestFlagOverrides(t *testing.T) {
	cfg := runWithArgs(t, []string{"test",
		"--host", "0.0.0.0",
		"--port", "9090",
		"--database-dsn", ":memory:",
		"--log-format", "json",
	})

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "http://0.0.0.0:9090", cfg.Server.BaseURL)
}

func TestCookieSecure(t *testing.T) {
	cfg := runWithArgs(t, []string{"test"})
	assert.False(t, cfg.CookieSecure())

	cfg = runWithArgs(t, []string{"test", "--base-url", "https://qna.company.com"})
	assert.True(t, cfg.CookieSecure())
}

func TestBaseURL_Port80(t *testing.T) {
	cfg := runWithArgs(t, []string{"test", "--port", "80"})
	assert.Equal(t, "http://localhost", cfg.Server.BaseURL)
}

func TestIsLocalhost(t *testing.T) {
	assert.True(t, config.IsLocalhost("localhost"))
	assert.True(t, config.IsLocalhost("127.0.0.1"))
	assert.True(t, config.IsLocalhost("::1"))
	assert.True(t, config.IsLocalhost("app.localhost"))
	assert.True(t, config.IsLocalhost(""))
	assert.False(t, config.IsLocalhost("qna.company.com"))
}
