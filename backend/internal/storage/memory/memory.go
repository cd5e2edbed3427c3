// Package memory is the volatile forum store: threads, comments and the three
// indices derived from them, rebuilt empty on every boot.
package memory

import (
	"context"
	"sync"

	"github.com/google/btree"

	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/domain"
	"github.com/rivals-dev/rivals/shared/ids"
)

const btreeDegree = 32

// threadEntry is a thread-order slot: key derived from lastActivityAt.
type threadEntry struct {
	key string
	id  domain.ThreadId
}

// commentEntry is a comment-order slot holding the current snapshot.
type commentEntry struct {
	key     string
	comment domain.Comment
}

type commentLocator struct {
	threadId domain.ThreadId
	key      string
}

// Storage owns every entity and index. Multi-index writes run in one
// exclusive section of mu; readers share it. Striping mu per thread id is
// possible as long as a thread-order re-key stays a single critical section.
type Storage struct {
	mu         sync.RWMutex
	clock      clock.Clock
	ids        ids.Generator
	pagination config.Pagination

	threads          map[domain.ThreadId]domain.Thread
	threadOrder      *btree.BTreeG[threadEntry]
	commentsByThread map[domain.ThreadId]*btree.BTreeG[commentEntry]
	commentIndex     map[domain.CommentId]commentLocator
}

func New(clk clock.Clock, gen ids.Generator, pagination config.Pagination) *Storage {
	if pagination.ThreadsPerPage <= 0 {
		pagination.ThreadsPerPage = 25
	}
	if pagination.CommentsPerPage <= 0 {
		pagination.CommentsPerPage = 50
	}
	return &Storage{
		clock:            clk,
		ids:              gen,
		pagination:       pagination,
		threads:          make(map[domain.ThreadId]domain.Thread),
		threadOrder:      btree.NewG(btreeDegree, func(a, b threadEntry) bool { return a.key < b.key }),
		commentsByThread: make(map[domain.ThreadId]*btree.BTreeG[commentEntry]),
		commentIndex:     make(map[domain.CommentId]commentLocator),
	}
}

func newCommentOrder() *btree.BTreeG[commentEntry] {
	return btree.NewG(btreeDegree, func(a, b commentEntry) bool { return a.key < b.key })
}

type Stats struct {
	Threads  int
	Comments int
}

func (s *Storage) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Threads: len(s.threads), Comments: len(s.commentIndex)}
}

// Ping reports readiness. The store has no external dependency, so only a
// cancelled context fails it.
func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}
