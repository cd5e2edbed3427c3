package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rivals-dev/rivals/shared/errors"
	"github.com/rivals-dev/rivals/shared/utils"
)

// Limiter is a keyed short-term throttle.
type Limiter interface {
	Allow(key string) bool
	RetryAfter(key string) time.Duration
}

func RateLimit(rl Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest})
				return
			}
			if !rl.Allow(identity) {
				if wait := rl.RetryAfter(identity); wait > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				utils.WriteErrorAndStatusCode(w, &errors.ErrorWithStatusCode{Message: "Rate limit exceeded, try again later", StatusCode: http.StatusTooManyRequests})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr only. Forwarding headers are
// client-controlled and ignored here.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}
