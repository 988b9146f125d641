package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "some-long-random-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "anuncia", cfg.Issuer)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
}

func TestLoadConfig_SessionTTL(t *testing.T) {
	t.Setenv("SECRET_KEY", "some-long-random-secret")

	t.Run("duration string", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "45m")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 45*time.Minute, cfg.SessionTTL)
	})

	t.Run("bare integer means minutes", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "15")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 15*time.Minute, cfg.SessionTTL)
	})
}
