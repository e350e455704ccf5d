package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN       string        `env:"DATABASE_URI"`
	AuthSecret        string        `env:"AUTH_SECRET"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisChannel      string        `env:"REDIS_CHANNEL"`
	RecentLoginWindow time.Duration `env:"RECENT_LOGIN_WINDOW"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL    string `env:"-"`
	ClientDBPath string `env:"CLIENT_DB_PATH"`
	StateDir     string `env:"CLIENT_STATE_DIR"`
	Version      bool   `env:"-"` // show client version and exit (flag only)
}

const (
	defaultBaseURL           = "localhost:8081"
	defaultAuthSecret        = "dev-secret-key"
	defaultRedisChannel      = "moodkeeper-records"
	defaultRecentLoginWindow = 5 * time.Minute
	appDirName               = "MoodKeeper"
)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к файлу SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "адрес Redis для рассылки изменений между инстансами")
	flag.DurationVar(&cfg.RecentLoginWindow, "recent-login", cfg.RecentLoginWindow, "how long after login the account may be deleted")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the MoodKeeper server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "base directory for per-user offline caches")
	flag.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for token, login and intro flag (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.RedisChannel == "" {
		cfg.RedisChannel = defaultRedisChannel
	}
	if cfg.RecentLoginWindow <= 0 {
		cfg.RecentLoginWindow = defaultRecentLoginWindow
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir, _ = os.UserHomeDir()
	}
	if cfg.StateDir == "" {
		cfg.StateDir = filepath.Join(cfgDir, appDirName)
	}
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(cfg.StateDir, "users")
	}
}
