// Package config initializes the application's configuration. It uses
// Viper to merge a config file, environment variables, and flag bindings
// into one settings tree.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// SetDefaults installs the default value for every configuration key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.development", false)

	v.SetDefault("archive.input_path", "dr_urls.txt")
	v.SetDefault("archive.base_dir", "archive")
	v.SetDefault("archive.file_extension", ".html")
	v.SetDefault("archive.progress_path", "archive_progress.txt")
	v.SetDefault("archive.not_found_log", "404_urls.txt")
	v.SetDefault("archive.redirect_log", "redirect_urls.txt")
	v.SetDefault("archive.max_attempts", 3)
	v.SetDefault("archive.request_timeout", "20s")
	v.SetDefault("archive.delay_min", "500ms")
	v.SetDefault("archive.delay_max", "1500ms")
	v.SetDefault("archive.user_agents", []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	})

	v.SetDefault("discover.base_url", "https://www.dr.dk/mu-online/api/1.0/search/programcard/page/search/")
	v.SetDefault("discover.site_base", "https://www.dr.dk")
	v.SetDefault("discover.sort", "PublishTime")
	v.SetDefault("discover.page_size", 24)
	v.SetDefault("discover.page_delay", "500ms")
	v.SetDefault("discover.output_path", "dr_urls.txt")

	v.SetDefault("metrics.addr", "")
}

// Init configures v with defaults, config file search paths, and the DDR_*
// environment namespace, then attempts to read the config file. A missing
// file is not an error; defaults and environment carry the run.
func Init(v *viper.Viper, cfgFile string, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ddr")
	}

	v.SetEnvPrefix("DDR") // e.g. DDR_ARCHIVE_MAX_ATTEMPTS=5
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Debug("config file not found; using defaults and environment")
		} else {
			logger.Warn("error reading config file", zap.Error(err))
		}
	} else {
		logger.Info("using config file", zap.String("path", v.ConfigFileUsed()))
	}
}
