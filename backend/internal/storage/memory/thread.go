package memory

import (
	"fmt"
	"strings"

	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/cursor"
	"github.com/rivals-dev/rivals/shared/domain"
	internal_errors "github.com/rivals-dev/rivals/shared/errors"
)

// CreateThread inserts a thread and, when creationData.Body is not blank, its
// first comment, all in one exclusive section. The returned snapshot already
// reflects that comment.
func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.Thread, error) {
	if strings.TrimSpace(creationData.Title) == "" {
		return domain.Thread{}, fmt.Errorf("%w: title is required", internal_errors.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := clock.NowMillis(s.clock)
	thread := domain.Thread{
		Id:             s.ids.NewId(),
		Title:          creationData.Title,
		AuthorId:       creationData.AuthorId,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	s.threads[thread.Id] = thread
	s.threadOrder.ReplaceOrInsert(threadEntry{key: thread.OrderKey(), id: thread.Id})
	s.commentsByThread[thread.Id] = newCommentOrder()

	if strings.TrimSpace(creationData.Body) != "" {
		_, updated, err := s.addCommentLocked(domain.CommentCreationData{
			ThreadId: thread.Id,
			AuthorId: creationData.AuthorId,
			Body:     creationData.Body,
		})
		if err != nil {
			return domain.Thread{}, fmt.Errorf("failed to create first comment: %w", err)
		}
		thread = updated
	}
	return thread, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread, ok := s.threads[id]
	if !ok {
		return domain.Thread{}, fmt.Errorf("%w: thread %s", internal_errors.ErrNotFound, id)
	}
	return thread, nil
}

// ListThreads pages threads by lastActivityAt descending, id descending on
// ties. A cursor resumes strictly after the key it encodes.
func (s *Storage) ListThreads(token string, limit int) (domain.ThreadPage, error) {
	if limit <= 0 {
		limit = s.pagination.ThreadsPerPage
	}
	after, err := cursor.Decode(token)
	if err != nil {
		return domain.ThreadPage{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Thread, 0, min(limit, s.threadOrder.Len()))
	var lastKey string
	more := false
	visit := func(e threadEntry) bool {
		if e.key == after {
			return true
		}
		if len(items) == limit {
			more = true
			return false
		}
		items = append(items, s.threads[e.id])
		lastKey = e.key
		return true
	}

	if after == "" {
		s.threadOrder.Descend(visit)
	} else {
		s.threadOrder.DescendLessOrEqual(threadEntry{key: after}, visit)
	}

	page := domain.ThreadPage{Items: items}
	if more {
		page.NextCursor = cursor.Encode(lastKey)
	}
	return page, nil
}
