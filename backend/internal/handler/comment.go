package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rivals-dev/rivals/shared/api"
	"github.com/rivals-dev/rivals/shared/domain"
	"github.com/rivals-dev/rivals/shared/logger"
	mw "github.com/rivals-dev/rivals/shared/middleware"
	"github.com/rivals-dev/rivals/shared/utils"
)

// ListComments handles GET /threads/{threadId}/comments?since&cursor&limit
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	since, err := parseSince(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.comment.List(domain.CommentQuery{
		ThreadId: chi.URLParam(r, "threadId"),
		Since:    since,
		Cursor:   r.URL.Query().Get("cursor"),
		Limit:    limit,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	items := make([]api.CommentResponse, len(page.Items))
	for i, comment := range page.Items {
		items[i] = h.commentResponse(comment)
	}
	writeJSON(w, api.CommentListResponse{Items: items, NextCursor: page.NextCursor})
}

// CreateComment handles POST /threads/{threadId}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creationData := domain.CommentCreationData{
		ThreadId: chi.URLParam(r, "threadId"),
		AuthorId: body.AuthorId,
		Body:     body.Body,
	}
	comment, err := h.comment.Add(r.Context(), creationData, mw.GetCallerFromContext(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, h.commentResponse(comment))
}

// LikeComment handles POST /comments/{commentId}/like
func (h *Handler) LikeComment(w http.ResponseWriter, r *http.Request) {
	if _, err := h.comment.Like(chi.URLParam(r, "commentId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) commentResponse(comment domain.Comment) api.CommentResponse {
	resp := api.CommentResponse{Comment: comment}
	if h.renderer == nil || h.cfg == nil || !h.cfg.Public.Content.RenderMarkdown {
		return resp
	}
	rendered, err := h.renderer.Render(comment.Body)
	if err != nil {
		logger.Log.Warn("failed to render comment body", "comment_id", comment.Id, "error", err)
		return resp
	}
	resp.BodyHtml = rendered
	return resp
}
