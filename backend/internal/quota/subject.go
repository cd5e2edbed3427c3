package quota

import (
	"net"
	"strings"

	"github.com/rivals-dev/rivals/shared/domain"
)

type Kind string

const (
	KindAnonymous Kind = "ANON"
	KindUser      Kind = "USER"
)

const unknownAddr = "0.0.0.0"

// Subject is the entity a daily allowance is counted against: a user id when
// the caller supplied one, otherwise the caller's network address.
type Subject struct {
	Kind Kind
	Id   string
}

func User(id string) Subject {
	return Subject{Kind: KindUser, Id: id}
}

func Anonymous(addr string) Subject {
	return Subject{Kind: KindAnonymous, Id: addr}
}

func (s Subject) IsUser() bool {
	return s.Kind == KindUser
}

// Key is the bucket key, "USER#<id>" or "ANON#<addr>".
func (s Subject) Key() domain.SubjectKey {
	return string(s.Kind) + "#" + s.Id
}

// Resolve picks the user subject when a user id is present and the anonymous
// subject for the client address otherwise.
func Resolve(c domain.Caller) Subject {
	if id := strings.TrimSpace(c.UserId); id != "" {
		return User(id)
	}
	return Anonymous(ClientAddr(c.ForwardedFor, c.RemoteAddr))
}

// ClientAddr prefers the first X-Forwarded-For entry, then the connection
// address without its port.
func ClientAddr(forwardedFor, remoteAddr string) string {
	if first, _, _ := strings.Cut(forwardedFor, ","); strings.TrimSpace(first) != "" {
		return strings.TrimSpace(first)
	}
	remoteAddr = strings.TrimSpace(remoteAddr)
	if remoteAddr == "" {
		return unknownAddr
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		if host == "" {
			return unknownAddr
		}
		return host
	}
	return remoteAddr
}
