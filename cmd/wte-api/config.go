package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wasteworks/wte-api/internal/httpapi"
	"github.com/wasteworks/wte-api/internal/observability"
)

// Runtime modes accepted by WTE_ENV.
const (
	envDevelopment = "development"
	envProduction  = "production"
)

const (
	defaultListenAddr      = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds everything the binary reads from the environment.
type Config struct {
	Env             string
	SecretKey       string
	ListenAddr      string
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
	DataDir         string
	CORS            httpapi.CORSConfig
}

// parseConfig reads WTE_* environment variables, applying defaults and
// validating cross-field constraints. It returns an error for anything the
// server must not start with.
func parseConfig(logger zerolog.Logger) (Config, error) {
	cfg := Config{
		Env:             envDevelopment,
		ListenAddr:      defaultListenAddr,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        "info",
	}

	if env := strings.ToLower(strings.TrimSpace(os.Getenv("WTE_ENV"))); env != "" {
		if env != envDevelopment && env != envProduction {
			return Config{}, fmt.Errorf("WTE_ENV must be %q or %q, got %q", envDevelopment, envProduction, env)
		}
		cfg.Env = env
	}

	cfg.SecretKey = os.Getenv("WTE_SECRET_KEY")
	if cfg.SecretKey == "" {
		if cfg.Env == envProduction {
			return Config{}, errors.New("WTE_SECRET_KEY must be set when WTE_ENV is production")
		}
		logger.Warn().Msg("WTE_SECRET_KEY is empty; acceptable in development only")
	}

	if addr := os.Getenv("WTE_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	if raw := os.Getenv("WTE_SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WTE_SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("WTE_SHUTDOWN_TIMEOUT must be positive, got %q", raw)
		}
		cfg.ShutdownTimeout = d
	}

	if lvl := os.Getenv("WTE_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	// Production defaults to machine-readable logs, development to the
	// console writer. An explicit WTE_LOG_FORMAT wins either way.
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("WTE_LOG_FORMAT")))
	if cfg.LogFormat == "" {
		cfg.LogFormat = observability.FormatJSON
		if cfg.Env == envDevelopment {
			cfg.LogFormat = observability.FormatConsole
		}
	}

	cfg.DataDir = os.Getenv("WTE_DATA_DIR")

	cors, err := parseCORSConfig(logger)
	if err != nil {
		return Config{}, err
	}
	cfg.CORS = cors

	return cfg, nil
}

// parseCORSConfig parses the WTE_CORS_* environment variables. When
// WTE_CORS_ALLOWED_ORIGINS is unset the policy stays wildcard-open, matching
// the public read-only deployments this service backs; setting it to an empty
// string disables CORS handling entirely.
func parseCORSConfig(logger zerolog.Logger) (httpapi.CORSConfig, error) {
	config := httpapi.CORSConfig{
		MaxAge: httpapi.DefaultCORSMaxAge,
	}

	if origins, ok := os.LookupEnv("WTE_CORS_ALLOWED_ORIGINS"); !ok {
		config.Wildcard = true
	} else {
		rawOrigins := strings.Split(origins, ",")
		for _, o := range rawOrigins {
			trimmed := strings.TrimSpace(o)
			if trimmed == "*" {
				config.Wildcard = true
				continue
			}
			if trimmed != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, trimmed)
			}
		}

		if config.Wildcard {
			logger.Warn().Msg("CORS wildcard origin (*) is insecure; use specific origins in production")
		}
	}

	if strings.ToLower(os.Getenv("WTE_CORS_ALLOW_CREDENTIALS")) == "true" {
		config.AllowCredentials = true
	}

	if config.Wildcard && config.AllowCredentials {
		return httpapi.CORSConfig{}, fmt.Errorf("cannot enable credentials with wildcard origin (*); security risk")
	}

	if maxAgeStr := os.Getenv("WTE_CORS_MAX_AGE"); maxAgeStr != "" {
		if parsed, err := strconv.Atoi(maxAgeStr); err == nil && parsed >= 0 {
			config.MaxAge = parsed
		} else {
			logger.Warn().Str("value", maxAgeStr).Msg("invalid WTE_CORS_MAX_AGE, using default")
		}
	}

	logger.Debug().
		Strs("allowed_origins", config.AllowedOrigins).
		Bool("wildcard", config.Wildcard).
		Int("max_age", config.MaxAge).
		Msg("CORS configuration applied")

	return config, nil
}
