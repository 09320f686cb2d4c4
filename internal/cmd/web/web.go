// Package web parses web command configuration and runs the web server.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	entrypoint "github.com/ourhour/ourhour-web/internal/platform/cmd"
	"github.com/ourhour/ourhour-web/internal/platform/logging"
	"github.com/ourhour/ourhour-web/internal/services/web"
	"github.com/ourhour/ourhour-web/internal/services/web/pendingstore/redisstore"
)

// envPrefix scopes every key below to OURHOUR_WEB_.
const envPrefix = "web"

// Config holds the web command configuration.
type Config struct {
	HTTPAddr       string `env:"HTTP_ADDR"   envDefault:"localhost:8080"`
	BackendBaseURL string `env:"BACKEND_URL" envDefault:"http://localhost:8000"`

	StoreDriver   string `env:"STORE_DRIVER"   envDefault:"memory"`
	SQLitePath    string `env:"SQLITE_PATH"    envDefault:"data/ourhour-web.db"`
	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	InvitationTTL       time.Duration `env:"INVITATION_TTL"         envDefault:"15m"`
	RedirectDelay       time.Duration `env:"REDIRECT_DELAY"         envDefault:"1500ms"`
	TrustForwarded      bool          `env:"TRUST_FORWARDED"`
	VerifyRatePerMinute int           `env:"VERIFY_RATE_PER_MINUTE" envDefault:"30"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// ParseConfig parses environment and flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, envPrefix); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendBaseURL, "backend-url", cfg.BackendBaseURL, "OURHOUR backend API base URL")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "pending store driver: memory, sqlite or redis")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database path for the sqlite store")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the redis store")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database for the redis store")
	fs.DurationVar(&cfg.InvitationTTL, "invitation-ttl", cfg.InvitationTTL, "how long a verified invitation waits for sign-in")
	fs.DurationVar(&cfg.RedirectDelay, "redirect-delay", cfg.RedirectDelay, "delay before leaving a verification success page")
	fs.BoolVar(&cfg.TrustForwarded, "trust-forwarded", cfg.TrustForwarded, "trust X-Forwarded-Proto and X-Forwarded-For")
	fs.IntVar(&cfg.VerifyRatePerMinute, "verify-rate", cfg.VerifyRatePerMinute, "verification requests per minute per client (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: json or console")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  logging.Format(cfg.LogFormat),
		Service: entrypoint.ServiceWeb,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, serverConfig(cfg, logger))
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config, logger *zap.Logger) web.Config {
	return web.Config{
		HTTPAddr:       cfg.HTTPAddr,
		BackendBaseURL: cfg.BackendBaseURL,
		Store: web.StoreConfig{
			Driver:     cfg.StoreDriver,
			SQLitePath: cfg.SQLitePath,
			Redis: redisstore.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			},
		},
		InvitationTTL:       cfg.InvitationTTL,
		RedirectDelay:       cfg.RedirectDelay,
		TrustForwarded:      cfg.TrustForwarded,
		VerifyRatePerMinute: cfg.VerifyRatePerMinute,
		Logger:              logger,
	}
}
