package handler

import (
	"net/http"

	"github.com/rivals-dev/rivals/shared/api"
	mw "github.com/rivals-dev/rivals/shared/middleware"
)

// GetLimits handles GET /me/limits. It never consumes from the allowance.
func (h *Handler) GetLimits(w http.ResponseWriter, r *http.Request) {
	a := h.limits.Allowance(mw.GetCallerFromContext(r))
	writeJSON(w, api.AllowanceResponse{
		SubjectKind: string(a.SubjectKind),
		Remaining:   a.Remaining,
		Limit:       a.Limit,
		ResetAt:     a.ResetAt,
	})
}
