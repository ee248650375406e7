package model

import "github.com/pkg/errors"

// Config コネクタ用設定
type Config struct {
	BearerToken string    `toml:"bearer_token" yaml:"bearer_token" split_words:"true"`
	DeviceUUID  string    `toml:"device_uuid" yaml:"device_uuid" split_words:"true"`
	APIEndpoint string    `toml:"api_endpoint" yaml:"api_endpoint" split_words:"true"`
	LogLevel    string    `toml:"log_level" yaml:"log_level" split_words:"true"`
	AuditLog    AuditLog  `toml:"audit_log" yaml:"audit_log" split_words:"true"`
	DB          DB        `toml:"db" yaml:"db"`
	Slack       Slack     `toml:"slack" yaml:"slack"`
	Fetcher     Fetcher   `toml:"fetcher" yaml:"fetcher"`
	Indicator   Indicator `toml:"indicator" yaml:"indicator"`
}

// AuditLog 監査ログ設定
type AuditLog struct {
	Path       string `toml:"path" yaml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb" split_words:"true"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups" split_words:"true"`
	Disabled   bool   `toml:"disabled" yaml:"disabled"`
}

// DB DB用設定
type DB struct {
	Host     string `toml:"host" yaml:"host"`
	Port     int    `toml:"port" yaml:"port"`
	Name     string `toml:"name" yaml:"name"`
	UserName string `toml:"user_name" yaml:"user_name" split_words:"true"`
	Password string `toml:"password" yaml:"password"`
}

// Slack 通知用設定
type Slack struct {
	WebhookURL string `toml:"webhook_url" yaml:"webhook_url" split_words:"true"`
}

// Fetcher 定期取得用設定
type Fetcher struct {
	Pair            string `toml:"pair" yaml:"pair"`
	Tick            string `toml:"tick" yaml:"tick"`
	Mode            string `toml:"mode" yaml:"mode"`
	IntervalSeconds int    `toml:"interval_seconds" yaml:"interval_seconds" split_words:"true"`
}

// Indicator テクニカル指標用設定
type Indicator struct {
	SMAPeriod    int     `toml:"sma_period" yaml:"sma_period" split_words:"true"`
	EMAPeriod    int     `toml:"ema_period" yaml:"ema_period" split_words:"true"`
	RSIPeriod    int     `toml:"rsi_period" yaml:"rsi_period" split_words:"true"`
	BBandsPeriod int     `toml:"bbands_period" yaml:"bbands_period" split_words:"true"`
	BBandsNBDev  float64 `toml:"bbands_nb_dev" yaml:"bbands_nb_dev" split_words:"true"`
}

// NewDefaultConfig 既定値で生成
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		AuditLog: AuditLog{
			Path:       "requests.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
		DB: DB{
			Host: "localhost",
			Port: 3306,
		},
		Fetcher: Fetcher{
			Pair:            "btc/usdt",
			Tick:            "5m",
			Mode:            string(Bid),
			IntervalSeconds: 300,
		},
		Indicator: Indicator{
			SMAPeriod:    20,
			EMAPeriod:    20,
			RSIPeriod:    14,
			BBandsPeriod: 20,
			BBandsNBDev:  2,
		},
	}
}

// Validate 必須項目の確認
func (c *Config) Validate() error {
	if c.BearerToken == "" {
		return errors.Wrap(ErrMissingField, "bearer_token")
	}
	if c.DeviceUUID == "" {
		return errors.Wrap(ErrMissingField, "device_uuid")
	}
	if c.APIEndpoint == "" {
		return errors.Wrap(ErrMissingField, "api_endpoint")
	}
	if mode := PriceMode(c.Fetcher.Mode); !mode.IsValid() {
		return errors.Wrapf(ErrInvalidPriceMode, "fetcher.mode: %q", mode)
	}
	if c.Fetcher.IntervalSeconds <= 0 {
		return errors.Errorf("fetcher.interval_seconds must be positive, got %d", c.Fetcher.IntervalSeconds)
	}
	return nil
}
