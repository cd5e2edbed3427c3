package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rivals-dev/rivals/backend/internal/storage/memory"
	"github.com/rivals-dev/rivals/shared/clock"
	"github.com/rivals-dev/rivals/shared/domain"
)

func TestRankingsGet(t *testing.T) {
	clk := clock.NewManual(testNow)
	svc := NewRankings(memory.NewRankings(clk), clk)

	global := svc.Get("")
	assert.False(t, global.GlobalFallback)
	assert.Empty(t, global.Note)
	assert.Equal(t, testNow, global.UpdatedAt)
	assert.Len(t, global.Players, 10)

	eu := svc.Get("eu")
	assert.True(t, eu.GlobalFallback)
	assert.Equal(t, "EU", eu.RequestedRegion)
	assert.Equal(t, domain.GlobalRegion, eu.EffectiveRegion)
	assert.Equal(t, GlobalFallbackNote, eu.Note)
}
