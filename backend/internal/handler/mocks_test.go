package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/rivals-dev/rivals/backend/internal/quota"
	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/domain"
)

type MockThreadService struct {
	CreateFunc func(ctx context.Context, creationData domain.ThreadCreationData, caller domain.Caller) (domain.Thread, error)
	GetFunc    func(id domain.ThreadId) (domain.Thread, error)
	ListFunc   func(cursor string, limit int) (domain.ThreadPage, error)
}

func (m *MockThreadService) Create(ctx context.Context, creationData domain.ThreadCreationData, caller domain.Caller) (domain.Thread, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, creationData, caller)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) Get(id domain.ThreadId) (domain.Thread, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.Thread{}, nil
}

func (m *MockThreadService) List(cursor string, limit int) (domain.ThreadPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(cursor, limit)
	}
	return domain.ThreadPage{}, nil
}

type MockCommentService struct {
	AddFunc  func(ctx context.Context, creationData domain.CommentCreationData, caller domain.Caller) (domain.Comment, error)
	ListFunc func(query domain.CommentQuery) (domain.CommentPage, error)
	LikeFunc func(id domain.CommentId) (domain.Comment, error)
}

func (m *MockCommentService) Add(ctx context.Context, creationData domain.CommentCreationData, caller domain.Caller) (domain.Comment, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, creationData, caller)
	}
	return domain.Comment{}, nil
}

func (m *MockCommentService) List(query domain.CommentQuery) (domain.CommentPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(query)
	}
	return domain.CommentPage{}, nil
}

func (m *MockCommentService) Like(id domain.CommentId) (domain.Comment, error) {
	if m.LikeFunc != nil {
		return m.LikeFunc(id)
	}
	return domain.Comment{}, nil
}

type MockRankingsService struct {
	GetFunc func(region string) domain.RegionRankings
}

func (m *MockRankingsService) Get(region string) domain.RegionRankings {
	if m.GetFunc != nil {
		return m.GetFunc(region)
	}
	return domain.RegionRankings{}
}

type MockAllowances struct {
	AllowanceFunc func(caller domain.Caller) quota.Allowance
}

func (m *MockAllowances) Allowance(caller domain.Caller) quota.Allowance {
	if m.AllowanceFunc != nil {
		return m.AllowanceFunc(caller)
	}
	return quota.Allowance{}
}

type MockRenderer struct {
	RenderFunc func(text string) (string, error)
}

func (m *MockRenderer) Render(text string) (string, error) {
	if m.RenderFunc != nil {
		return m.RenderFunc(text)
	}
	return text, nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

type testDeps struct {
	thread   *MockThreadService
	comment  *MockCommentService
	rankings *MockRankingsService
	limits   *MockAllowances
	renderer *MockRenderer
	health   *MockHealthChecker
	cfg      *config.Config
}

func newTestDeps() *testDeps {
	return &testDeps{
		thread:   &MockThreadService{},
		comment:  &MockCommentService{},
		rankings: &MockRankingsService{},
		limits:   &MockAllowances{},
		renderer: &MockRenderer{},
		health:   &MockHealthChecker{},
		cfg:      &config.Config{Public: config.Default()},
	}
}

// setupTestHandler mounts the handler on a chi router with the same paths the
// production router uses.
func setupTestHandler(d *testDeps) (*Handler, *chi.Mux) {
	h := New(d.thread, d.comment, d.rankings, d.limits, d.renderer, d.cfg, d.health)

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/threads", h.ListThreads)
	r.Post("/threads", h.CreateThread)
	r.Get("/threads/{threadId}", h.GetThread)
	r.Get("/threads/{threadId}/comments", h.ListComments)
	r.Post("/threads/{threadId}/comments", h.CreateComment)
	r.Post("/comments/{commentId}/like", h.LikeComment)
	r.Get("/me/limits", h.GetLimits)
	r.Get("/rankings", h.GetRankings)
	return h, r
}

func createRequest(t *testing.T, method, route string, body any) *http.Request {
	t.Helper()
	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}
	req := httptest.NewRequest(method, route, reqBody)
	req.RemoteAddr = "203.0.113.7:51234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}
