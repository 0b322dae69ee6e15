package selfplay

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatsNoGames(t *testing.T) {
	var stats = ComputeStats(TournamentInfo{})
	assert.False(t, stats.HasWinningFraction)
	assert.False(t, stats.HasElo)
	assert.False(t, stats.HasLOS)
}

func TestComputeStatsAllWins(t *testing.T) {
	var info TournamentInfo
	info.Results[resultWin][0] = 3
	info.Results[resultWin][1] = 2
	var stats = ComputeStats(info)

	assert.Equal(t, 5, stats.Wins)
	assert.True(t, stats.HasWinningFraction)
	assert.Equal(t, 1.0, stats.WinningFraction)
	// A perfect score is outside the Elo formula's domain.
	assert.False(t, stats.HasElo)
	assert.True(t, stats.HasLOS)
	assert.InDelta(t, 0.5+0.5*math.Erf(5/math.Sqrt(10)), stats.LOS, 1e-9)
}

func TestComputeStatsEvenScore(t *testing.T) {
	var info TournamentInfo
	info.Results[resultWin][0] = 2
	info.Results[resultWin][1] = 1
	info.Results[resultLoss][0] = 1
	info.Results[resultLoss][1] = 2
	info.Results[resultDraw][0] = 2
	info.Results[resultDraw][1] = 2
	var stats = ComputeStats(info)

	assert.Equal(t, 3, stats.Wins)
	assert.Equal(t, 3, stats.Losses)
	assert.Equal(t, 4, stats.Draws)
	assert.Equal(t, 0.5, stats.WinningFraction)
	assert.True(t, stats.HasElo)
	assert.Equal(t, 0.0, stats.EloDifference)
	assert.False(t, math.Signbit(stats.EloDifference))
	assert.Equal(t, 0.5, stats.LOS)
}

func TestComputeStatsAllDraws(t *testing.T) {
	var info TournamentInfo
	info.Results[resultDraw][0] = 4
	var stats = ComputeStats(info)
	assert.Equal(t, 0.5, stats.WinningFraction)
	assert.True(t, stats.HasElo)
	assert.Equal(t, 0.0, stats.EloDifference)
	// No decisive games: likelihood of superiority is undefined.
	assert.False(t, stats.HasLOS)
}

func TestComputeStatsIndependence(t *testing.T) {
	// All losses: fraction and LOS defined, Elo not.
	var info TournamentInfo
	info.Results[resultLoss][0] = 2
	var stats = ComputeStats(info)
	assert.True(t, stats.HasWinningFraction)
	assert.Equal(t, 0.0, stats.WinningFraction)
	assert.False(t, stats.HasElo)
	assert.True(t, stats.HasLOS)
}
