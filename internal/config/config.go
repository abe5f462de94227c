package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`
	Quote  QuoteConfig  `mapstructure:"quote"`
	Budget BudgetConfig `mapstructure:"budget"`
	Ledger LedgerConfig `mapstructure:"ledger"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	// Driver selects the gorm dialect: "sqlite" (default, single-user
	// deployments) or "postgres".
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type CronConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	QuoteWarm string `mapstructure:"quote_warm"`
}

type QuoteConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Optional push feed keeping the cache warm between polls.
	StreamEnabled bool   `mapstructure:"stream_enabled"`
	StreamURL     string `mapstructure:"stream_url"`
}

type BudgetConfig struct {
	// DefaultMonthlyLimit is assumed by achievement evaluation while no
	// budget row exists yet.
	DefaultMonthlyLimit int64 `mapstructure:"default_monthly_limit"`
	LockDays            int   `mapstructure:"lock_days"`
}

type LedgerConfig struct {
	DeleteLockHours int `mapstructure:"delete_lock_hours"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "fintracker.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.quote_warm", "@every 10m")
	v.SetDefault("quote.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("quote.timeout", "10s")
	v.SetDefault("quote.cache_ttl", "5m")
	v.SetDefault("quote.stream_enabled", false)
	v.SetDefault("quote.stream_url", "")
	v.SetDefault("budget.default_monthly_limit", 30000)
	v.SetDefault("budget.lock_days", 90)
	v.SetDefault("ledger.delete_lock_hours", 12)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
