package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hamed0406/domainwatch/internal/domain"
)

// Config is read once at startup; nothing is re-read live.
type Config struct {
	TelegramBotToken string   `mapstructure:"telegram_bot_token"`
	DomainsAPI       string   `mapstructure:"domains_api"`
	AdminPhones      []string `mapstructure:"admin_phone_numbers"`
	HealthAPIKey     string   `mapstructure:"wp_health_check_api_key"`

	TimeoutSeconds    int `mapstructure:"timeout"`
	CheckCycleSeconds int `mapstructure:"check_cycle"`
	MaxFailures       int `mapstructure:"max_failures"`
	Concurrency       int `mapstructure:"max_concurrent_checks"`

	VerifySSL bool   `mapstructure:"verify_ssl"`
	DataDir   string `mapstructure:"data_dir"`
	LogDir    string `mapstructure:"log_dir"`

	APIAddr string `mapstructure:"api_addr"`
	APIKeys string `mapstructure:"api_keys"` // comma-separated, empty disables auth
}

func Load() (*Config, error) {
	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit binds: AutomaticEnv alone does not surface env-only keys
	// through Unmarshal
	for _, key := range []string{
		"telegram_bot_token", "domains_api", "admin_phone_numbers",
		"wp_health_check_api_key", "timeout", "check_cycle", "max_failures",
		"max_concurrent_checks", "verify_ssl", "data_dir", "log_dir",
		"api_addr", "api_keys",
	} {
		_ = viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.DomainsAPI == "" {
		return nil, fmt.Errorf("DOMAINS_API is required")
	}
	if len(cfg.AdminPhones) == 0 {
		return nil, fmt.Errorf("ADMIN_PHONE_NUMBERS is required")
	}

	for i, p := range cfg.AdminPhones {
		cfg.AdminPhones[i] = domain.NormalizePhone(p)
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("timeout", 30)
	viper.SetDefault("check_cycle", 600)
	viper.SetDefault("max_failures", 3)
	viper.SetDefault("max_concurrent_checks", 10)
	viper.SetDefault("verify_ssl", true)
	viper.SetDefault("data_dir", "data")
	viper.SetDefault("log_dir", "logs")
	viper.SetDefault("api_addr", "127.0.0.1:8080")
	viper.SetDefault("admin_phone_numbers", []string{})
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c *Config) CheckCycle() time.Duration {
	return time.Duration(c.CheckCycleSeconds) * time.Second
}

// APIKeyList splits the comma-separated key setting. Empty input means no
// keys configured.
func (c *Config) APIKeyList() []string {
	if strings.TrimSpace(c.APIKeys) == "" {
		return nil
	}
	parts := strings.Split(c.APIKeys, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
