package main

import (
	"github.com/dmitrymomot/qrbench/pkg/config"
	"github.com/dmitrymomot/qrbench/pkg/file"
	"github.com/dmitrymomot/qrbench/pkg/httpserver"
	"github.com/dmitrymomot/qrbench/pkg/ratelimiter"
	"github.com/dmitrymomot/qrbench/pkg/redis"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
	"github.com/dmitrymomot/qrbench/svc/registry"
)

// Config is the process configuration.
type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"` // json or text; empty keeps the APP_ENV default

	HTTP      httpserver.Config
	Registry  registry.Config
	Redis     redis.Config
	Storage   file.Config
	RateLimit ratelimiter.Config
}

func loadConfig(envFiles []string) (Config, error) {
	if err := config.LoadEnv(envFiles...); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Profile is a YAML file with initial settings.
//
//	value: https://example.com
//	size: 512
//	iterations: 100
//	style_settings:
//	  dot_style: rounded
//	  foreground_color: "#1d4ed8"
type Profile = qrstate.State

func loadProfile(path string) (*Profile, error) {
	if path == "" {
		return nil, nil
	}
	var p Profile
	if err := config.LoadYAML(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
