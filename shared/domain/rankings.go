package domain

import "time"

const GlobalRegion = "GLOBAL"

type RankingRow struct {
	PlayerId    string  `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	Rank        int     `json:"rank"`
	Rating      int     `json:"rating"`
	CountryCode string  `json:"countryCode"`
	AvatarUrl   string  `json:"avatarUrl"`
	WinRate     float64 `json:"winRate"`
	KDA         float64 `json:"kda"`
	ADR         int     `json:"adr"`
	UpdatedAt   string  `json:"updatedAt"`
}

// RegionRankings is what the rankings storage returns for a requested region.
// UpdatedAt and Note are filled in by the service.
type RegionRankings struct {
	RequestedRegion string
	EffectiveRegion string
	GlobalFallback  bool
	Players         []RankingRow
	UpdatedAt       time.Time
	Note            string
}
