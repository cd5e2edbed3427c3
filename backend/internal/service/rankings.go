package service

import (
	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/domain"
)

const GlobalFallbackNote = "Showing Global Top 10 (regional data unavailable)"

type RankingsService interface {
	Get(region string) domain.RegionRankings
}

type RankingsStorage interface {
	GetRankings(region string) domain.RegionRankings
}

type Rankings struct {
	storage RankingsStorage
	clock   clock.Clock
}

func NewRankings(storage RankingsStorage, clk clock.Clock) *Rankings {
	return &Rankings{storage: storage, clock: clk}
}

func (r *Rankings) Get(region string) domain.RegionRankings {
	res := r.storage.GetRankings(region)
	res.UpdatedAt = r.clock.Now().UTC()
	if res.GlobalFallback {
		res.Note = GlobalFallbackNote
	}
	return res
}
