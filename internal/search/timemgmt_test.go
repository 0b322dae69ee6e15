package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farmersrice/lc0/internal/options"
)

func TestTimeManagementDefaultsByRunType(t *testing.T) {
	var uciParser = options.NewParser()
	PopulateTimeManagementOptions(RunTypeUci, uciParser)
	assert.Equal(t, 1.33, uciParser.Dict().GetFloat(SmartPruningFactorID))
	assert.Equal(t, 200, uciParser.Dict().GetInt(MoveOverheadID))

	var selfplayParser = options.NewParser()
	PopulateTimeManagementOptions(RunTypeSelfplay, selfplayParser)
	assert.Equal(t, 0.0, selfplayParser.Dict().GetFloat(SmartPruningFactorID))
	// Engine-play-only parameters are not registered for self-play.
	assert.Panics(t, func() { selfplayParser.Dict().GetInt(MoveOverheadID) })
}

func TestTimeCurveOptionsHidden(t *testing.T) {
	var p = options.NewParser()
	PopulateTimeManagementOptions(RunTypeUci, p)
	for _, line := range p.ListOptionsUci() {
		assert.NotContains(t, line, "TimeMidpointMove")
		assert.NotContains(t, line, "TimeSteepness")
	}
}

func TestEstimatedMovesToGo(t *testing.T) {
	const midpoint, steepness = 51.5, 7.0
	// At the start of the game the median estimate is the midpoint itself.
	assert.InDelta(t, midpoint, EstimatedMovesToGo(0, midpoint, steepness), 1e-9)
	// The estimate shrinks as the game progresses but never hits zero.
	var prev = EstimatedMovesToGo(0, midpoint, steepness)
	for ply := 20; ply <= 200; ply += 20 {
		var got = EstimatedMovesToGo(ply, midpoint, steepness)
		assert.Less(t, got, prev, "ply %d", ply)
		assert.Greater(t, got, 0.0, "ply %d", ply)
		prev = got
	}
}
