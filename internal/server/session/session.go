// Package session carries session tokens between server and client over two
// channels: an HTTP-only cookie and the Authorization bearer header.
package session

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the session cookie.
const CookieName = "auth_token"

// Source tells which channel a token was read from.
type Source string

const (
	SourceNone   Source = ""
	SourceHeader Source = "header"
	SourceCookie Source = "cookie"
)

// Transport computes cookie attributes per request and extracts tokens.
type Transport struct {
	// Production forces Secure cookies even when TLS terminates upstream
	// without forwarding the protocol.
	Production bool
	// MaxAge must match the token expiry window.
	MaxAge time.Duration
}

func NewTransport(production bool, maxAge time.Duration) *Transport {
	return &Transport{Production: production, MaxAge: maxAge}
}

// IsSecure reports whether r arrived over a secure transport, directly or
// through a TLS terminating proxy.
func (t *Transport) IsSecure(r *http.Request) bool {
	if r.TLS != nil || t.Production {
		return true
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if i := strings.IndexByte(proto, ','); i >= 0 {
		proto = proto[:i]
	}
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}

// Cookie builds the session cookie for r. A negative maxAge deletes it.
func (t *Transport) Cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	secure := t.IsSecure(r)
	sameSite := http.SameSiteLaxMode
	if secure {
		// cross-site delivery requires Secure
		sameSite = http.SameSiteNoneMode
	}

	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
	if maxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(maxAge) * time.Second).UTC()
	} else if maxAge < 0 {
		c.Expires = time.Unix(0, 0).UTC()
	}
	return c
}

// SetToken writes the session cookie carrying token.
func (t *Transport) SetToken(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, t.Cookie(r, token, int(t.MaxAge.Seconds())))
}

// Clear deletes the session cookie using the same attributes as SetToken.
func (t *Transport) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, t.Cookie(r, "", -1))
}

// ExtractToken returns the presented token. The bearer header wins over the
// cookie when both are present.
func ExtractToken(r *http.Request) (string, Source) {
	if token, ok := bearerToken(r); ok {
		return token, SourceHeader
	}
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, SourceCookie
	}
	return "", SourceNone
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
