package config

import (
	"errors"
	"flag"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды хранилища токена на клиенте.
const (
	TokenStoreFS      = "fs"
	TokenStoreSQLite  = "sqlite"
	TokenStoreBolt    = "bolt"
	TokenStoreKeyring = "keyring"
	TokenStoreMemory  = "memory"
)

const (
	defaultBaseURL  = "localhost:8081"
	defaultTokenTTL = 24 * time.Hour
)

// DefaultAuthSecret подставляется, если секрет не задан. Годится только для тестов и локальной отладки.
const DefaultAuthSecret = "dev-secret-key"

// ErrDefaultAuthSecret — сервер запущен без собственного секрета подписи.
var ErrDefaultAuthSecret = errors.New("auth secret is not set: AUTH_SECRET or -auth-secret is required")

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	APIPrefix   string `env:"API_PREFIX"`
	LogLevel    string `env:"LOG_LEVEL"`

	// Client-side settings
	ServerURL  string `env:"-"`
	TokenStore string `env:"TOKEN_STORE"`
	TokenFile  string `env:"TOKEN_FILE"`
	Version    bool   `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite path, postgres:// или mysql://)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни сессионного токена")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the auth server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.StringVar(&cfg.APIPrefix, "api-prefix", cfg.APIPrefix, "path prefix of the auth API, e.g. /auth")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	// Client flags
	flag.StringVar(&cfg.TokenStore, "token-store", cfg.TokenStore, "token store backend: fs|sqlite|bolt|keyring|memory")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to the token store file (fs, sqlite, bolt)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет пустые значения и вычисляет ServerURL.
func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = DefaultAuthSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.TokenStore == "" {
		cfg.TokenStore = TokenStoreFS
	}
	cfg.TokenStore = strings.ToLower(cfg.TokenStore)

	// BaseURL должен быть в формате "address:port" (без схемы и пути), иначе дефолт
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	prefix := strings.Trim(cfg.APIPrefix, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	cfg.APIPrefix = prefix

	scheme := "http://"
	if cfg.EnableHTTPS {
		scheme = "https://"
	}
	cfg.ServerURL = scheme + cfg.BaseURL + prefix
}

// CheckServerSecret запрещает серверу подписывать токены публично известным секретом.
func (cfg *Config) CheckServerSecret() error {
	if cfg.AuthSecret == "" || cfg.AuthSecret == DefaultAuthSecret {
		return ErrDefaultAuthSecret
	}
	return nil
}
