package service

import (
	"context"
	"sync"

	"github.com/rivals-dev/rivals/backend/internal/quota"
	"github.com/rivals-dev/rivals/shared/domain"
)

// --- Mocks ---

type MockStorage struct {
	createThreadFunc func(creationData domain.ThreadCreationData) (domain.Thread, error)
	getThreadFunc    func(id domain.ThreadId) (domain.Thread, error)
	listThreadsFunc  func(cursor string, limit int) (domain.ThreadPage, error)
	addCommentFunc   func(creationData domain.CommentCreationData) (domain.Comment, error)
	listCommentsFunc func(query domain.CommentQuery) (domain.CommentPage, error)
	likeCommentFunc  func(id domain.CommentId) (domain.Comment, error)

	mu                sync.Mutex
	createThreadCalls int
	addCommentCalls   int
}

func (m *MockStorage) CreateThread(creationData domain.ThreadCreationData) (domain.Thread, error) {
	m.mu.Lock()
	m.createThreadCalls++
	m.mu.Unlock()
	if m.createThreadFunc != nil {
		return m.createThreadFunc(creationData)
	}
	return domain.Thread{Id: "t1", Title: creationData.Title, AuthorId: creationData.AuthorId}, nil
}

func (m *MockStorage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockStorage) ListThreads(cursor string, limit int) (domain.ThreadPage, error) {
	if m.listThreadsFunc != nil {
		return m.listThreadsFunc(cursor, limit)
	}
	return domain.ThreadPage{}, nil
}

func (m *MockStorage) AddComment(creationData domain.CommentCreationData) (domain.Comment, error) {
	m.mu.Lock()
	m.addCommentCalls++
	m.mu.Unlock()
	if m.addCommentFunc != nil {
		return m.addCommentFunc(creationData)
	}
	return domain.Comment{Id: "c1", ThreadId: creationData.ThreadId, AuthorId: creationData.AuthorId, Body: creationData.Body}, nil
}

func (m *MockStorage) ListComments(query domain.CommentQuery) (domain.CommentPage, error) {
	if m.listCommentsFunc != nil {
		return m.listCommentsFunc(query)
	}
	return domain.CommentPage{}, nil
}

func (m *MockStorage) LikeComment(id domain.CommentId) (domain.Comment, error) {
	if m.likeCommentFunc != nil {
		return m.likeCommentFunc(id)
	}
	return domain.Comment{Id: id, Likes: 1}, nil
}

type MockValidator struct {
	titleFunc    func(title string) error
	bodyFunc     func(body string) error
	optionalFunc func(body string) error
	authorFunc   func(id string) error
}

func (m *MockValidator) Title(title string) error {
	if m.titleFunc != nil {
		return m.titleFunc(title)
	}
	return nil
}

func (m *MockValidator) Body(body string) error {
	if m.bodyFunc != nil {
		return m.bodyFunc(body)
	}
	return nil
}

func (m *MockValidator) OptionalBody(body string) error {
	if m.optionalFunc != nil {
		return m.optionalFunc(body)
	}
	return nil
}

func (m *MockValidator) AuthorId(id string) error {
	if m.authorFunc != nil {
		return m.authorFunc(id)
	}
	return nil
}

type MockSanitizer struct{}

func (MockSanitizer) PlainText(text string) string { return text }

type MockQuota struct {
	tryConsumeFunc   func(subject quota.Subject, tokens int) bool
	getAllowanceFunc func(subject quota.Subject) quota.Allowance

	mu       sync.Mutex
	consumed []quota.Subject
}

func (m *MockQuota) TryConsume(subject quota.Subject, tokens int) bool {
	m.mu.Lock()
	m.consumed = append(m.consumed, subject)
	m.mu.Unlock()
	if m.tryConsumeFunc != nil {
		return m.tryConsumeFunc(subject, tokens)
	}
	return true
}

func (m *MockQuota) GetAllowance(subject quota.Subject) quota.Allowance {
	if m.getAllowanceFunc != nil {
		return m.getAllowanceFunc(subject)
	}
	return quota.Allowance{SubjectKind: subject.Kind}
}

type MockRecorder struct {
	recordFunc func(ctx context.Context, d quota.Decision) error

	mu        sync.Mutex
	decisions []quota.Decision
}

func (m *MockRecorder) Record(ctx context.Context, d quota.Decision) error {
	m.mu.Lock()
	m.decisions = append(m.decisions, d)
	m.mu.Unlock()
	if m.recordFunc != nil {
		return m.recordFunc(ctx, d)
	}
	return nil
}
