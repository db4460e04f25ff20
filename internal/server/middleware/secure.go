package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureOptions returns secure.Options for security headers.
// In production HSTS is sent and X-Forwarded-Proto is trusted for SSL detection.
func SecureOptions(isProduction bool) secure.Options {
	opts := secure.Options{
		IsDevelopment:         !isProduction,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	}
	if isProduction {
		opts.STSSeconds = 31536000
		opts.STSIncludeSubdomains = true
	}
	return opts
}

// NewSecure returns a middleware that adds security headers.
func NewSecure(opts secure.Options) func(next http.Handler) http.Handler {
	return secure.New(opts).Handler
}
