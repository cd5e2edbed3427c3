package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rivals-dev/rivals/shared/api"
	"github.com/rivals-dev/rivals/shared/domain"
	mw "github.com/rivals-dev/rivals/shared/middleware"
	"github.com/rivals-dev/rivals/shared/utils"
)

// ListThreads handles GET /threads?cursor&limit
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.thread.List(r.URL.Query().Get("cursor"), limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	items := make([]api.ThreadResponse, len(page.Items))
	for i, thread := range page.Items {
		items[i] = api.ThreadResponse{Thread: thread}
	}
	writeJSON(w, api.ThreadListResponse{Items: items, NextCursor: page.NextCursor})
}

// CreateThread handles POST /threads. The optional body becomes the first
// comment; the whole request costs one post of the caller's allowance.
func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creationData := domain.ThreadCreationData{
		Title:    body.Title,
		AuthorId: body.AuthorId,
		Body:     body.Body,
	}
	thread, err := h.thread.Create(r.Context(), creationData, mw.GetCallerFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.ThreadResponse{Thread: thread})
}

// GetThread handles GET /threads/{threadId}
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.thread.Get(chi.URLParam(r, "threadId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, api.ThreadResponse{Thread: thread})
}
