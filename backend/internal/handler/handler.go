package handler

import (
	"context"
	"net/http"

	"github.com/rivals-dev/rivals/backend/internal/quota"
	"github.com/rivals-dev/rivals/backend/internal/service"
	"github.com/rivals-dev/rivals/shared/config"
	"github.com/rivals-dev/rivals/shared/domain"
	"github.com/rivals-dev/rivals/shared/utils"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Allowances interface {
	Allowance(caller domain.Caller) quota.Allowance
}

type BodyRenderer interface {
	Render(text string) (string, error)
}

type Handler struct {
	thread   service.ThreadService
	comment  service.CommentService
	rankings service.RankingsService
	limits   Allowances
	renderer BodyRenderer
	cfg      *config.Config
	health   HealthChecker
}

func New(thread service.ThreadService, comment service.CommentService, rankings service.RankingsService, limits Allowances, renderer BodyRenderer, cfg *config.Config, health HealthChecker) *Handler {
	return &Handler{
		thread:   thread,
		comment:  comment,
		rankings: rankings,
		limits:   limits,
		renderer: renderer,
		cfg:      cfg,
		health:   health,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	utils.WriteJSON(w, http.StatusOK, v)
}
