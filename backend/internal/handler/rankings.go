package handler

import (
	"net/http"
	"time"

	"github.com/rivals-dev/rivals/shared/api"
)

// GetRankings handles GET /rankings?region=
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	res := h.rankings.Get(r.URL.Query().Get("region"))

	writeJSON(w, api.RankingsResponse{
		UpdatedAt:        res.UpdatedAt.UTC().Format(time.RFC3339),
		Players:          res.Players,
		RequestedRegion:  res.RequestedRegion,
		EffectiveRegion:  res.EffectiveRegion,
		IsGlobalFallback: res.GlobalFallback,
		Note:             res.Note,
	})
}
