package service

import (
	"context"
	"strings"

	"github.com/rivals-dev/rivals/shared/domain"
	"github.com/rivals-dev/rivals/shared/logger"
)

type ThreadService interface {
	Create(ctx context.Context, creationData domain.ThreadCreationData, caller domain.Caller) (domain.Thread, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	List(cursor string, limit int) (domain.ThreadPage, error)
}

type Thread struct {
	storage   ThreadStorage
	validator ContentValidator
	sanitizer TitleSanitizer
	gate      *PostGate
}

type ThreadStorage interface {
	CreateThread(creationData domain.ThreadCreationData) (domain.Thread, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	ListThreads(cursor string, limit int) (domain.ThreadPage, error)
}

type ContentValidator interface {
	Title(title string) error
	Body(body string) error
	OptionalBody(body string) error
	AuthorId(id string) error
}

type TitleSanitizer interface {
	PlainText(text string) string
}

func NewThread(storage ThreadStorage, validator ContentValidator, sanitizer TitleSanitizer, gate *PostGate) *Thread {
	return &Thread{storage: storage, validator: validator, sanitizer: sanitizer, gate: gate}
}

// Create validates before charging the allowance so a rejected request never
// costs the caller a post.
func (b *Thread) Create(ctx context.Context, creationData domain.ThreadCreationData, caller domain.Caller) (domain.Thread, error) {
	creationData.Title = b.sanitizer.PlainText(creationData.Title)
	creationData.AuthorId = authorOf(creationData.AuthorId, caller)

	if err := b.validator.Title(creationData.Title); err != nil {
		return domain.Thread{}, err
	}
	if err := b.validator.OptionalBody(creationData.Body); err != nil {
		return domain.Thread{}, err
	}
	if err := b.validator.AuthorId(creationData.AuthorId); err != nil {
		return domain.Thread{}, err
	}

	if err := b.gate.Admit(ctx, caller); err != nil {
		return domain.Thread{}, err
	}

	thread, err := b.storage.CreateThread(creationData)
	if err != nil {
		return domain.Thread{}, err
	}
	logger.Log.Info("thread created", "thread_id", thread.Id, "post_count", thread.PostCount)
	return thread, nil
}

func (b *Thread) Get(id domain.ThreadId) (domain.Thread, error) {
	return b.storage.GetThread(id)
}

func (b *Thread) List(cursor string, limit int) (domain.ThreadPage, error) {
	return b.storage.ListThreads(cursor, limit)
}

// authorOf keeps an explicit author and otherwise credits the identified user.
func authorOf(explicit domain.AuthorId, caller domain.Caller) domain.AuthorId {
	if a := strings.TrimSpace(explicit); a != "" {
		return a
	}
	return strings.TrimSpace(caller.UserId)
}
