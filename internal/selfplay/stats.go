package selfplay

import "math"

// TournamentInfo is the aggregate standing of a tournament. Results is
// indexed by outcome from player1's perspective (win, draw, loss) and by the
// color player1 held (0 = white, 1 = black).
type TournamentInfo struct {
	Results  [3][2]int
	Finished bool
}

const (
	resultWin = iota
	resultDraw
	resultLoss
)

// Stats are the derived figures of a tournament standing. Each figure is
// defined only when its own precondition holds; the Has flags record that
// independently, absence of one never suppresses another.
type Stats struct {
	Wins   int
	Losses int
	Draws  int

	// WinningFraction is defined when at least one game finished.
	WinningFraction    float64
	HasWinningFraction bool
	// EloDifference is defined for fractions strictly between 0 and 1.
	EloDifference float64
	HasElo        bool
	// LOS is defined when at least one decisive game was played.
	LOS    float64
	HasLOS bool
}

// ComputeStats derives winning fraction, Elo difference and likelihood of
// superiority from a tournament standing.
// https://www.chessprogramming.org/Match_Statistics
func ComputeStats(info TournamentInfo) Stats {
	var stats = Stats{
		Wins:   info.Results[resultWin][0] + info.Results[resultWin][1],
		Draws:  info.Results[resultDraw][0] + info.Results[resultDraw][1],
		Losses: info.Results[resultLoss][0] + info.Results[resultLoss][1],
	}
	var games = stats.Wins + stats.Losses + stats.Draws
	if games > 0 {
		stats.WinningFraction = (float64(stats.Draws)/2 + float64(stats.Wins)) / float64(games)
		stats.HasWinningFraction = true
		if stats.WinningFraction > 0 && stats.WinningFraction < 1 {
			stats.EloDifference = -math.Log(1/stats.WinningFraction-1) * 400 / math.Ln10
			if stats.EloDifference == 0 {
				// Normalize negative zero so an even score renders as 0.00.
				stats.EloDifference = 0
			}
			stats.HasElo = true
		}
	}
	if stats.Wins+stats.Losses > 0 {
		stats.LOS = 0.5 + 0.5*math.Erf(float64(stats.Wins-stats.Losses)/
			math.Sqrt(2*float64(stats.Wins+stats.Losses)))
		stats.HasLOS = true
	}
	return stats
}
