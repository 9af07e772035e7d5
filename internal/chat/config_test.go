package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(":12345", cfg.Addr)
	req.Equal(":9090", cfg.MetricsAddr)
	req.Equal(64, cfg.MaxClients)
	req.Equal(32, cfg.QueueSize)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("CHAT_ADDR", ":7000")
	t.Setenv("CHAT_MAX_CLIENTS", "8")

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal(":7000", cfg.Addr)
	req.Equal(8, cfg.MaxClients)
}

func TestLoadConfig_RejectsNonPositiveCapacity(t *testing.T) {
	t.Setenv("CHAT_MAX_CLIENTS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}
