package middleware

import (
	"net/http"
)

// apiCSP forbids everything: responses are JSON or media, never documents that load resources.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders sets the hardening headers for every API response.
// HSTS is added only when the server is reached over HTTPS.
func SecurityHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return SecurityHeadersWithCSP(isHTTPS, apiCSP)
}

func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			headers.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")
			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
