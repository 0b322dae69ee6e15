package search

import (
	"math"

	"github.com/farmersrice/lc0/internal/options"
)

// RunType selects the defaults for time-management parameters: engine-driven
// play wants smart pruning, self-play wants deterministic visit budgets.
type RunType int

const (
	RunTypeUci RunType = iota
	RunTypeSelfplay
)

var (
	KLDGainAverageIntervalID = options.ID{
		Flag: "kldgain-average-interval", Name: "KLDGainAverageInterval",
		Help: "Used to decide how frequently to evaluate the average KLD gain per node."}
	MinimumKLDGainPerNodeID = options.ID{
		Flag: "minimum-kldgain-per-node", Name: "MinimumKLDGainPerNode",
		Help: "Search aborts unless the last interval of nodes had at least this average KLD gain per node. Zero disables the check."}
	SmartPruningFactorID = options.ID{
		Flag: "smart-pruning-factor", Name: "SmartPruningFactor",
		Help: "Do not spend time on moves which cannot become the best move given the remaining time. Zero deactivates smart pruning."}
	MinimumSmartPruningBatchesID = options.ID{
		Flag: "smart-pruning-minimum-batches", Name: "SmartPruningMinimumBatches",
		Help: "Only allow smart pruning to stop the search after at least this many batches."}
	RamLimitMbID = options.ID{
		Flag: "ramlimit-mb", Name: "RamLimitMb",
		Help: "Rough maximum memory usage, in megabytes. Zero means no limit."}
	MoveOverheadID = options.ID{
		Flag: "move-overhead", Name: "MoveOverheadMs",
		Help: "Milliseconds subtracted from the available time to compensate for connection overhead."}
	SlowMoverID = options.ID{
		Flag: "slowmover", Name: "Slowmover",
		Help: "Budgeted time for a move is multiplied by this value."}
	TimeMidpointMoveID = options.ID{
		Flag: "time-midpoint-move", Name: "TimeMidpointMove",
		Help: "Move by which the time budgeting algorithm guesses half of all games to be completed."}
	TimeSteepnessID = options.ID{
		Flag: "time-steepness", Name: "TimeSteepness",
		Help: "Steepness of the game-length curve used by the time budgeting algorithm."}
	SpendSavedTimeID = options.ID{
		Flag: "immediate-time-use", Name: "ImmediateTimeUse",
		Help: "Fraction of the time saved by smart pruning that is added to the next move's budget rather than spread over the game."}
	NodesAsPlayoutsID = options.ID{
		Flag: "nodes-as-playouts", Name: "NodesAsPlayouts",
		Help: "Treat a node limit as a playout limit instead of a visit limit."}
)

// PopulateTimeManagementOptions declares the stopper parameters. The
// engine-play-only parameters are not registered for self-play runs.
func PopulateTimeManagementOptions(runType RunType, p *options.Parser) {
	p.AddInt(KLDGainAverageIntervalID, 1, 10000000, 100)
	p.AddFloat(MinimumKLDGainPerNodeID, 0, 1, 0)
	var smartPruning = 0.0
	if runType == RunTypeUci {
		smartPruning = 1.33
	}
	p.AddFloat(SmartPruningFactorID, 0, 10, smartPruning)
	p.AddInt(MinimumSmartPruningBatchesID, 0, 10000, 0)

	if runType == RunTypeUci {
		p.AddInt(RamLimitMbID, 0, 100000000, 0)
		p.AddInt(MoveOverheadID, 0, 100000000, 200)
		p.AddFloat(SlowMoverID, 0, 100, 1)
		p.AddFloat(TimeMidpointMoveID, 1, 100, 51.5)
		p.AddFloat(TimeSteepnessID, 1, 100, 7)
		p.AddFloat(SpendSavedTimeID, 0, 1, 1)
		p.AddBool(NodesAsPlayoutsID, false)

		// The time curve is a tuning surface, not a user knob.
		p.HideOption(TimeMidpointMoveID)
		p.HideOption(TimeSteepnessID)
	}
}

// EstimatedMovesToGo guesses how many more moves the game will last given the
// current ply. Game lengths follow a log-logistic distribution; this is its
// median residual time function, which tracks the mean residual closely and
// is much cheaper to compute.
func EstimatedMovesToGo(ply int, midpoint, steepness float64) float64 {
	var move = float64(ply) / 2
	return midpoint*math.Pow(1+2*math.Pow(move/midpoint, steepness),
		1/steepness) - move
}
