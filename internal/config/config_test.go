package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL_TEST", "postgres://localhost/huddle_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "postgres://localhost/huddle_test", cfg.DatabaseURL)
	assert.Equal(t, "https://app.huddle.team", cfg.AppOrigin)
	assert.Equal(t, 30*24*time.Hour, cfg.InvitationLifespan)
	assert.Equal(t, 10*time.Second, cfg.InviteCreationGrace)
	assert.Equal(t, []string{"tempmail.cn", "qq.com"}, cfg.UntrustedDomains)
	assert.Equal(t, AnalyticsModeSync, cfg.AnalyticsMode)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("APP_ORIGIN", "https://huddle.example.com/")
	t.Setenv("INVITATION_LIFESPAN", "72h")
	t.Setenv("INVITE_UNTRUSTED_DOMAINS", " Spam.io , ,junk.net")
	t.Setenv("ANALYTICS_MODE", "QUEUE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://huddle.example.com", cfg.AppOrigin)
	assert.Equal(t, 72*time.Hour, cfg.InvitationLifespan)
	assert.Equal(t, []string{"spam.io", "junk.net"}, cfg.UntrustedDomains)
	assert.Equal(t, AnalyticsModeQueue, cfg.AnalyticsMode)
}
