package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/domain"
)

// Rankings holds leaderboard rows per region. Only GLOBAL is seeded; any
// other region reads GLOBAL with the fallback flag set until PutRegion fills it.
type Rankings struct {
	mu       sync.RWMutex
	byRegion map[string][]domain.RankingRow
}

func NewRankings(clk clock.Clock) *Rankings {
	r := &Rankings{byRegion: make(map[string][]domain.RankingRow)}
	r.byRegion[domain.GlobalRegion] = seedGlobal(clk.Now().UTC().Format(time.RFC3339))
	return r
}

func seedGlobal(updatedAt string) []domain.RankingRow {
	row := func(id, name string, rank, rating int, cc string, winRate, kda float64, adr int) domain.RankingRow {
		return domain.RankingRow{
			PlayerId: id, PlayerName: name, Rank: rank, Rating: rating, CountryCode: cc,
			WinRate: winRate, KDA: kda, ADR: adr, UpdatedAt: updatedAt,
		}
	}
	return []domain.RankingRow{
		row("p1", "Crimson", 1, 2987, "US", 0.66, 3.10, 164),
		row("p2", "Zenith", 2, 2930, "SE", 0.63, 2.80, 157),
		row("p3", "Katana", 3, 2895, "JP", 0.61, 2.70, 152),
		row("p4", "Nova", 4, 2872, "KR", 0.60, 2.60, 149),
		row("p5", "Marauder", 5, 2830, "BR", 0.59, 2.50, 147),
		row("p6", "Valkyrie", 6, 2811, "DE", 0.58, 2.40, 144),
		row("p7", "Echo", 7, 2795, "GB", 0.57, 2.30, 142),
		row("p8", "Spectre", 8, 2782, "CA", 0.57, 2.30, 141),
		row("p9", "Quasar", 9, 2769, "FR", 0.56, 2.20, 139),
		row("p10", "Falcon", 10, 2755, "US", 0.55, 2.10, 137),
	}
}

func normalizeRegion(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return domain.GlobalRegion
	}
	return region
}

func (r *Rankings) GetRankings(region string) domain.RegionRankings {
	requested := normalizeRegion(region)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if rows := r.byRegion[requested]; len(rows) > 0 {
		return domain.RegionRankings{
			RequestedRegion: requested,
			EffectiveRegion: requested,
			Players:         slices.Clone(rows),
		}
	}
	return domain.RegionRankings{
		RequestedRegion: requested,
		EffectiveRegion: domain.GlobalRegion,
		GlobalFallback:  true,
		Players:         slices.Clone(r.byRegion[domain.GlobalRegion]),
	}
}

func (r *Rankings) PutRegion(region string, players []domain.RankingRow) {
	r.mu.Lock()
	r.byRegion[normalizeRegion(region)] = slices.Clone(players)
	r.mu.Unlock()
}

// Regions lists regions that have their own rows, sorted.
func (r *Rankings) Regions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regions := make([]string, 0, len(r.byRegion))
	for region, rows := range r.byRegion {
		if len(rows) > 0 {
			regions = append(regions, region)
		}
	}
	slices.Sort(regions)
	return regions
}
