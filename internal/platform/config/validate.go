package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// minTextLength mirrors the fixed lower bound of the todo validator.
const minTextLength = 3

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
	drivers    = []string{DriverMemory, DriverSQLite}
	exporters  = []string{"stdout", "otlp"}
)

// problems collects every failed check so one Validate call reports them all.
type problems []error

func (p *problems) require(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

func (p *problems) oneOf(key, got string, allowed []string) {
	p.require(slices.Contains(allowed, got), "%s must be one of %v, got %q", key, allowed, got)
}

// Validate checks every section and joins all failures into one error.
func (c *Config) Validate() error {
	var p problems
	c.Server.check(&p)
	c.Log.check(&p)
	c.Storage.check(&p)
	p.require(c.Todo.MaxTextLength >= minTextLength,
		"todo.max_text_length must be >= %d, got %d", minTextLength, c.Todo.MaxTextLength)
	c.Client.check(&p)
	c.Telemetry.check(&p)
	return errors.Join(p...)
}

func (s *ServerConfig) check(p *problems) {
	p.require(s.Port >= 1 && s.Port <= 65535, "server.port must be between 1 and 65535, got %d", s.Port)
	p.require(s.ReadTimeout > 0, "server.read_timeout must be positive, got %s", s.ReadTimeout)
	p.require(s.WriteTimeout > 0, "server.write_timeout must be positive, got %s", s.WriteTimeout)
}

func (l *LogConfig) check(p *problems) {
	p.oneOf("log.level", l.Level, logLevels)
	p.oneOf("log.format", l.Format, logFormats)
}

func (st *StorageConfig) check(p *problems) {
	p.oneOf("storage.driver", st.Driver, drivers)
	p.require(st.Driver != DriverSQLite || st.Path != "", "storage.path is required by the sqlite driver")
}

func (cl *ClientConfig) check(p *problems) {
	u, err := url.Parse(cl.BaseURL)
	p.require(err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "",
		"client.base_url must be an absolute http(s) URL, got %q", cl.BaseURL)
	p.require(cl.Timeout > 0, "client.timeout must be positive, got %s", cl.Timeout)

	r := cl.Retry
	p.require(r.MaxAttempts >= 1, "client.retry.max_attempts must be >= 1, got %d", r.MaxAttempts)
	p.require(r.Multiplier > 0, "client.retry.multiplier must be positive, got %g", r.Multiplier)

	p.require(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be >= 1, got %d", cl.CircuitBreaker.MaxFailures)

	rl := cl.RateLimit
	p.require(rl.RequestsPerSecond >= 0,
		"client.rate_limit.requests_per_second must not be negative, got %g", rl.RequestsPerSecond)
	p.require(rl.RequestsPerSecond == 0 || rl.BurstSize >= 1,
		"client.rate_limit.burst_size must be >= 1 when limiting, got %d", rl.BurstSize)
}

// check skips a disabled exporter entirely.
func (t *TelemetryConfig) check(p *problems) {
	if !t.Enabled {
		return
	}
	p.oneOf("telemetry.exporter", t.Exporter, exporters)
	p.require(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint is required by the otlp exporter")
}
