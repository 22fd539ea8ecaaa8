package archive

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config enumerates every knob that influences an archive run. All values
// originate from Viper so runs can be configured via file, env, or flags.
type Config struct {
	// InputPath is the newline-delimited URL list.
	InputPath string
	// BaseDir is the root of the output tree.
	BaseDir string
	// FileExtension is appended to every saved file.
	FileExtension string

	ProgressPath    string
	NotFoundLogPath string
	RedirectLogPath string

	// MaxAttempts bounds HTTP requests per URL.
	MaxAttempts int
	// RequestTimeout bounds each individual request.
	RequestTimeout time.Duration
	// DelayMin/DelayMax bound the randomized politeness pause between URLs.
	DelayMin time.Duration
	DelayMax time.Duration
	// UserAgents is the pool one agent is drawn from per attempt.
	UserAgents []string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		InputPath:       v.GetString("archive.input_path"),
		BaseDir:         v.GetString("archive.base_dir"),
		FileExtension:   v.GetString("archive.file_extension"),
		ProgressPath:    v.GetString("archive.progress_path"),
		NotFoundLogPath: v.GetString("archive.not_found_log"),
		RedirectLogPath: v.GetString("archive.redirect_log"),
		MaxAttempts:     v.GetInt("archive.max_attempts"),
		RequestTimeout:  v.GetDuration("archive.request_timeout"),
		DelayMin:        v.GetDuration("archive.delay_min"),
		DelayMax:        v.GetDuration("archive.delay_max"),
		UserAgents:      v.GetStringSlice("archive.user_agents"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("archive.input_path must be set")
	}
	if c.BaseDir == "" {
		return fmt.Errorf("archive.base_dir must be set")
	}
	if c.ProgressPath == "" {
		return fmt.Errorf("archive.progress_path must be set")
	}
	if c.NotFoundLogPath == "" || c.RedirectLogPath == "" {
		return fmt.Errorf("archive.not_found_log and archive.redirect_log must be set")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("archive.max_attempts must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("archive.request_timeout must be > 0")
	}
	if c.DelayMin < 0 || c.DelayMax < c.DelayMin {
		return fmt.Errorf("archive.delay_min/delay_max must satisfy 0 <= min <= max")
	}
	if len(c.UserAgents) == 0 {
		return fmt.Errorf("archive.user_agents must include at least one agent")
	}
	return nil
}
