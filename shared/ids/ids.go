// Package ids generates entity identifiers that sort lexicographically in
// creation order.
package ids

import (
	"github.com/google/uuid"
)

type Generator interface {
	NewId() string
}

// UUIDv7 produces version 7 UUIDs. The leading 48 bits are the unix
// millisecond timestamp and the next 12 bits a per-process monotonic sequence,
// so the canonical lowercase string form orders the same way the ids were
// issued.
type UUIDv7 struct{}

func (UUIDv7) NewId() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; uuid.New panics in that case too.
		panic(err)
	}
	return id.String()
}
