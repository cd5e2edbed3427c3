// Package api holds the JSON request and response bodies of the HTTP API.
package api

import (
	"github.com/rivals-dev/rivals/shared/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body,omitempty"`
	AuthorId string `json:"authorId,omitempty"`
}

type CreateCommentRequest struct {
	Body     string `json:"body" validate:"required"`
	AuthorId string `json:"authorId,omitempty"`
}

// Response DTOs

type ThreadResponse struct {
	domain.Thread
}

type ThreadListResponse struct {
	Items      []ThreadResponse `json:"items"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// CommentResponse carries the stored body verbatim plus its sanitized HTML
// rendering when rendering is enabled.
type CommentResponse struct {
	domain.Comment
	BodyHtml string `json:"bodyHtml,omitempty"`
}

type CommentListResponse struct {
	Items      []CommentResponse `json:"items"`
	NextCursor string            `json:"nextCursor,omitempty"`
}

type AllowanceResponse struct {
	SubjectKind string `json:"subjectKind"`
	Remaining   int    `json:"remaining"`
	Limit       int    `json:"limit"`
	ResetAt     int64  `json:"resetAt"`
}

type RankingsResponse struct {
	UpdatedAt        string              `json:"updatedAt"`
	Players          []domain.RankingRow `json:"players"`
	RequestedRegion  string              `json:"requestedRegion"`
	EffectiveRegion  string              `json:"effectiveRegion"`
	IsGlobalFallback bool                `json:"isGlobalFallback"`
	Note             string              `json:"note,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
