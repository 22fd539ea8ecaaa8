package archive

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/sebbesen/ddr/internal/config"
)

func TestLoadConfigFromDefaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	config.SetDefaults(v)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxAttempts)
	require.Equal(t, 20*time.Second, cfg.RequestTimeout)
	require.Equal(t, 500*time.Millisecond, cfg.DelayMin)
	require.Equal(t, 1500*time.Millisecond, cfg.DelayMax)
	require.Equal(t, ".html", cfg.FileExtension)
	require.NotEmpty(t, cfg.UserAgents)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := testConfig(t.TempDir())
	require.NoError(t, base.Validate())

	for name, mutate := range map[string]func(*Config){
		"no input":       func(c *Config) { c.InputPath = "" },
		"no base dir":    func(c *Config) { c.BaseDir = "" },
		"no progress":    func(c *Config) { c.ProgressPath = "" },
		"no error logs":  func(c *Config) { c.NotFoundLogPath = "" },
		"zero attempts":  func(c *Config) { c.MaxAttempts = 0 },
		"zero timeout":   func(c *Config) { c.RequestTimeout = 0 },
		"inverted delay": func(c *Config) { c.DelayMin = time.Second; c.DelayMax = 0 },
		"no user agents": func(c *Config) { c.UserAgents = nil },
	} {
		cfg := base
		mutate(&cfg)
		require.Error(t, cfg.Validate(), name)
	}
}
