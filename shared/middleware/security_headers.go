package middleware

import (
	"net/http"
)

// apiCSP forbids every resource type: responses are JSON only.
const apiCSP = "default-src 'none'; frame-ancestors 'none'"

// SecurityHeaders adds the headers a JSON API needs. isHTTPS enables HSTS.
func SecurityHeaders(isHTTPS bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()

			headers.Set("X-Frame-Options", "DENY")
			headers.Set("X-Content-Type-Options", "nosniff")
			headers.Set("Referrer-Policy", "no-referrer")
			headers.Set("Cache-Control", "no-store")
			headers.Set("Content-Security-Policy", apiCSP)

			if isHTTPS {
				headers.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
