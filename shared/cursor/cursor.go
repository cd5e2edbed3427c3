// Package cursor turns index ordering keys into opaque pagination tokens and
// back. Clients must pass tokens back unmodified.
package cursor

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivals-dev/rivals/shared/domain"
	"github.com/rivals-dev/rivals/shared/errors"
)

// Encode wraps key into a base64url token. The empty key means "no cursor"
// and encodes to the empty token.
func Encode(key string) string {
	if key == "" {
		return ""
	}
	return base64.URLEncoding.EncodeToString([]byte(key))
}

// Decode reverses Encode. The empty token decodes to the empty key. Anything
// that is not the encoding of a well-formed ordering key is rejected with
// errors.ErrInvalidCursor.
func Decode(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		// tolerate clients that strip the padding
		raw, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
		if err != nil {
			return "", fmt.Errorf("%w: not base64url", errors.ErrInvalidCursor)
		}
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not utf-8", errors.ErrInvalidCursor)
	}

	key := string(raw)
	if _, _, ok := domain.ParseOrderingKey(key); !ok {
		return "", fmt.Errorf("%w: malformed key", errors.ErrInvalidCursor)
	}
	return key, nil
}
