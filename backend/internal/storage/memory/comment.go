package memory

import (
	"fmt"
	"strings"

	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/cursor"
	"github.com/rivals-dev/rivals/shared/domain"
	internal_errors "github.com/rivals-dev/rivals/shared/errors"
)

func (s *Storage) AddComment(creationData domain.CommentCreationData) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, _, err := s.addCommentLocked(creationData)
	return comment, err
}

// addCommentLocked must run with mu held for writing. Readers never observe
// the thread-order index without the thread or with both of its keys.
func (s *Storage) addCommentLocked(creationData domain.CommentCreationData) (domain.Comment, domain.Thread, error) {
	existing, ok := s.threads[creationData.ThreadId]
	if !ok {
		return domain.Comment{}, domain.Thread{}, fmt.Errorf("%w: thread %s", internal_errors.ErrNotFound, creationData.ThreadId)
	}
	if strings.TrimSpace(creationData.Body) == "" {
		return domain.Comment{}, domain.Thread{}, fmt.Errorf("%w: body is required", internal_errors.ErrInvalidArgument)
	}

	comment := domain.Comment{
		Id:        s.ids.NewId(),
		ThreadId:  existing.Id,
		AuthorId:  creationData.AuthorId,
		Body:      creationData.Body,
		CreatedAt: clock.NowMillis(s.clock),
	}
	key := comment.OrderKey()

	order, ok := s.commentsByThread[existing.Id]
	if !ok {
		order = newCommentOrder()
		s.commentsByThread[existing.Id] = order
	}
	order.ReplaceOrInsert(commentEntry{key: key, comment: comment})
	s.commentIndex[comment.Id] = commentLocator{threadId: existing.Id, key: key}

	s.threadOrder.Delete(threadEntry{key: existing.OrderKey()})
	updated := existing.WithComment(comment.CreatedAt)
	s.threads[updated.Id] = updated
	s.threadOrder.ReplaceOrInsert(threadEntry{key: updated.OrderKey(), id: updated.Id})

	return comment, updated, nil
}

// ListComments pages a thread's comments oldest first. An unknown thread
// yields an empty page. Since is an inclusive lower bound on createdAt; a
// cursor resumes strictly after its key, whichever bound is tighter wins.
func (s *Storage) ListComments(query domain.CommentQuery) (domain.CommentPage, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = s.pagination.CommentsPerPage
	}
	after, err := cursor.Decode(query.Cursor)
	if err != nil {
		return domain.CommentPage{}, err
	}

	var lower string
	if query.Since > 0 {
		lower = domain.SinceKey(query.Since)
	}
	pivot := lower
	if after != "" && after >= lower {
		pivot = after
	} else {
		after = ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.commentsByThread[query.ThreadId]
	if !ok {
		return domain.CommentPage{Items: []domain.Comment{}}, nil
	}

	items := make([]domain.Comment, 0, min(limit, order.Len()))
	var lastKey string
	more := false
	order.AscendGreaterOrEqual(commentEntry{key: pivot}, func(e commentEntry) bool {
		if after != "" && e.key == after {
			return true
		}
		if len(items) == limit {
			more = true
			return false
		}
		items = append(items, e.comment)
		lastKey = e.key
		return true
	})

	page := domain.CommentPage{Items: items}
	if more {
		page.NextCursor = cursor.Encode(lastKey)
	}
	return page, nil
}

// LikeComment replaces the comment's slot with a snapshot whose likes is one
// higher. The ordering key does not change.
func (s *Storage) LikeComment(id domain.CommentId) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc, ok := s.commentIndex[id]
	if !ok {
		return domain.Comment{}, fmt.Errorf("%w: comment %s", internal_errors.ErrNotFound, id)
	}
	order := s.commentsByThread[loc.threadId]
	if order == nil {
		return domain.Comment{}, fmt.Errorf("%w: comment %s", internal_errors.ErrNotFound, id)
	}
	entry, ok := order.Get(commentEntry{key: loc.key})
	if !ok {
		return domain.Comment{}, fmt.Errorf("%w: comment %s", internal_errors.ErrNotFound, id)
	}

	entry.comment = entry.comment.Liked()
	order.ReplaceOrInsert(entry)
	return entry.comment, nil
}
