package service

import (
	"context"

	"github.com/rivals-dev/rivals/shared/domain"
	"github.com/rivals-dev/rivals/shared/logger"
)

type CommentService interface {
	Add(ctx context.Context, creationData domain.CommentCreationData, caller domain.Caller) (domain.Comment, error)
	List(query domain.CommentQuery) (domain.CommentPage, error)
	Like(id domain.CommentId) (domain.Comment, error)
}

type Comment struct {
	storage   CommentStorage
	validator ContentValidator
	gate      *PostGate
}

type CommentStorage interface {
	GetThread(id domain.ThreadId) (domain.Thread, error)
	AddComment(creationData domain.CommentCreationData) (domain.Comment, error)
	ListComments(query domain.CommentQuery) (domain.CommentPage, error)
	LikeComment(id domain.CommentId) (domain.Comment, error)
}

func NewComment(storage CommentStorage, validator ContentValidator, gate *PostGate) *Comment {
	return &Comment{storage: storage, validator: validator, gate: gate}
}

// Add charges the allowance only for a valid comment on an existing thread.
// Threads are never deleted, so the existence check cannot go stale.
func (c *Comment) Add(ctx context.Context, creationData domain.CommentCreationData, caller domain.Caller) (domain.Comment, error) {
	creationData.AuthorId = authorOf(creationData.AuthorId, caller)

	if err := c.validator.Body(creationData.Body); err != nil {
		return domain.Comment{}, err
	}
	if err := c.validator.AuthorId(creationData.AuthorId); err != nil {
		return domain.Comment{}, err
	}
	if _, err := c.storage.GetThread(creationData.ThreadId); err != nil {
		return domain.Comment{}, err
	}

	if err := c.gate.Admit(ctx, caller); err != nil {
		return domain.Comment{}, err
	}

	comment, err := c.storage.AddComment(creationData)
	if err != nil {
		return domain.Comment{}, err
	}
	logger.Log.Debug("comment added", "thread_id", comment.ThreadId, "comment_id", comment.Id)
	return comment, nil
}

func (c *Comment) List(query domain.CommentQuery) (domain.CommentPage, error) {
	return c.storage.ListComments(query)
}

// Like is not charged against the daily allowance.
func (c *Comment) Like(id domain.CommentId) (domain.Comment, error) {
	return c.storage.LikeComment(id)
}
