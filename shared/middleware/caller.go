package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rivals-dev/rivals/shared/domain"
)

type key int

const callerKey key = 0

// Headers that carry an explicit user id, in priority order.
var userIdHeaders = []string{"X-User-Id", "X-Debug-User"}

// Caller stores the request's domain.Caller in the context. Identity headers
// are taken as given; authenticating them is up to a proxy in front.
func Caller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), callerKey, CallerFromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func CallerFromRequest(r *http.Request) domain.Caller {
	return domain.Caller{
		UserId:       firstNonBlankHeader(r, userIdHeaders...),
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
		RemoteAddr:   r.RemoteAddr,
	}
}

// GetCallerFromContext returns the caller stored by Caller, falling back to
// reading the request directly.
func GetCallerFromContext(r *http.Request) domain.Caller {
	if c, ok := r.Context().Value(callerKey).(domain.Caller); ok {
		return c
	}
	return CallerFromRequest(r)
}

func firstNonBlankHeader(r *http.Request, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(r.Header.Get(name)); v != "" {
			return v
		}
	}
	return ""
}
