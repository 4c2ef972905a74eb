package middleware

import (
	"github.com/labstack/echo/v4"
)

// SecurityHeadersConfig selects the transport-dependent headers.
type SecurityHeadersConfig struct {
	// HSTS adds Strict-Transport-Security. Set it only when serving TLS.
	HSTS bool
}

const hstsValue = "max-age=31536000; includeSubDomains"

// Responses are JSON or a plain-text summary attachment and carry patient
// identity, so nothing may be cached, embedded or sniffed.
var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"X-XSS-Protection", "0"},
	{"X-Download-Options", "noopen"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; sandbox"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Referrer-Policy", "no-referrer"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=()"},
	{"Cache-Control", "no-store, max-age=0"},
	{"Pragma", "no-cache"},
}

func SecurityHeaders(cfg SecurityHeadersConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			if cfg.HSTS {
				h.Set("Strict-Transport-Security", hstsValue)
			}
			return next(c)
		}
	}
}
