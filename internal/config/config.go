package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/spf13/viper"
)

const (
	configDir  = ".slotctl"
	configName = "config"
	configType = "toml"
	envPrefix  = "SLOTCTL"

	ChatInactivityKey   = "timeouts.chat_inactivity"
	AutoInactivityKey   = "timeouts.auto_inactivity"
	AutomationGlobalKey = "timeouts.automation_global"
	HeartbeatKey        = "heartbeat.interval"
	StateDirKey         = "state.dir"
	LogLevelKey         = "log.level"
	LogFormatKey        = "log.format"
	RunnerCommandKey    = "runner.command"
	MetricsAddrKey      = "metrics.addr"

	defaultHeartbeat = time.Minute
)

type Config struct {
	Timeouts      domain.Timeouts
	Heartbeat     time.Duration
	StateDir      string
	LogLevel      string
	LogFormat     string
	RunnerCommand []string
	MetricsAddr   string
}

// Load reads ~/.slotctl/config.toml (or the file already set on v) and SLOTCTL_*
// environment overrides into v, then decodes the result. A missing config file is
// not an error.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	defaults := domain.DefaultTimeouts()
	v.SetDefault(ChatInactivityKey, defaults.ChatInactivity)
	v.SetDefault(AutoInactivityKey, defaults.AutoInactivity)
	v.SetDefault(AutomationGlobalKey, defaults.AutomationGlobal)
	v.SetDefault(HeartbeatKey, defaultHeartbeat)
	v.SetDefault(StateDirKey, filepath.Join(homeDir, configDir))
	v.SetDefault(LogLevelKey, "info")
	v.SetDefault(LogFormatKey, "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Timeouts: domain.Timeouts{
			ChatInactivity:   v.GetDuration(ChatInactivityKey),
			AutoInactivity:   v.GetDuration(AutoInactivityKey),
			AutomationGlobal: v.GetDuration(AutomationGlobalKey),
		},
		Heartbeat:     v.GetDuration(HeartbeatKey),
		StateDir:      v.GetString(StateDirKey),
		LogLevel:      v.GetString(LogLevelKey),
		LogFormat:     v.GetString(LogFormatKey),
		RunnerCommand: v.GetStringSlice(RunnerCommandKey),
		MetricsAddr:   strings.TrimSpace(v.GetString(MetricsAddrKey)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Timeouts.Validate(); err != nil {
		return fmt.Errorf("invalid timeouts: %w", err)
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("heartbeat interval must be positive")
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("state dir is empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}

	return nil
}
