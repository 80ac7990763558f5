package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders lists, in lower case, the request headers that are masked
// wherever headers are logged. The HTTP middleware and the masq layer below
// both read it.
var SensitiveHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"x-api-key":           true,
	"sec-websocket-key":   true,
}

// Attribute keys masked wherever they appear, including inside groups.
var (
	redactFields   = []string{"password", "secret", "token", "dsn"}
	redactPrefixes = []string{"secret_", "api_key"}
)

// Raw values that slip through under an innocent key.
var redactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// JWTs; 10+ characters per segment keeps version strings out.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
}

// newRedactAttr builds the slog ReplaceAttr hook installed by New.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(SensitiveHeaders)+len(redactFields)+len(redactPrefixes)+len(redactPatterns))
	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, name := range redactFields {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range redactPrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range redactPatterns {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
