package config_test

import (
	"testing"
	"time"

	"github.com/jsamuelsen11/todomvc/internal/platform/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{name: "port zero", mutate: func(cfg *config.Config) { cfg.Server.Port = 0 }, wantErr: true},
		{name: "unknown log level", mutate: func(cfg *config.Config) { cfg.Log.Level = "verbose" }, wantErr: true},
		{name: "unknown storage driver", mutate: func(cfg *config.Config) { cfg.Storage.Driver = "postgres" }, wantErr: true},
		{name: "sqlite without path", mutate: func(cfg *config.Config) { cfg.Storage.Path = "" }, wantErr: true},
		{name: "memory without path", mutate: func(cfg *config.Config) {
			cfg.Storage = config.StorageConfig{Driver: config.DriverMemory}
		}},
		{name: "max text length below minimum", mutate: func(cfg *config.Config) { cfg.Todo.MaxTextLength = 2 }, wantErr: true},
		{name: "base url without scheme", mutate: func(cfg *config.Config) { cfg.Client.BaseURL = "localhost:8080" }, wantErr: true},
		{name: "base url with ftp scheme", mutate: func(cfg *config.Config) { cfg.Client.BaseURL = "ftp://todo" }, wantErr: true},
		{name: "rate limit without burst", mutate: func(cfg *config.Config) {
			cfg.Client.RateLimit = config.RateLimitConfig{RequestsPerSecond: 5}
		}, wantErr: true},
		{name: "otlp without endpoint", mutate: func(cfg *config.Config) {
			cfg.Telemetry = config.TelemetryConfig{Enabled: true, Exporter: "otlp"}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Log:     config.LogConfig{Level: "info", Format: "json"},
		Storage: config.StorageConfig{Driver: config.DriverSQLite, Path: "todos.db"},
		Todo:    config.TodoConfig{MaxTextLength: 50},
		Client: config.ClientConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     10 * time.Second,
				Multiplier:      2.0,
			},
			CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 5, Timeout: 30 * time.Second, HalfOpenLimit: 1},
		},
		Telemetry: config.TelemetryConfig{Exporter: "stdout"},
	}
}
