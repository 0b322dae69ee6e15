package search

import (
	"github.com/farmersrice/lc0/internal/options"
)

// Parameter identities. One registered entry per parameter; the at-root
// variants are distinct entries selected through the accessor's atRoot flag.
var (
	MiniBatchSizeID = options.ID{
		Flag: "minibatch-size", Name: "MinibatchSize",
		Help: "How many positions the engine tries to batch together for evaluation. Larger batches may reduce strength but improve throughput."}
	MaxPrefetchBatchID = options.ID{
		Flag: "max-prefetch", Name: "MaxPrefetch",
		Help: "Number of positions which are allowed to be prefetched into the cache speculatively while the batch is not full yet."}
	LogitQID = options.ID{
		Flag: "logit-q", Name: "LogitQ",
		Help: "Apply logit to Q when averaging node values."}
	CconID = options.ID{
		Flag: "ccon", Name: "CCon",
		Help: "Exploration constant. Higher values promote more exploration at the cost of confidence in the best line."}
	CconAtRootID = options.ID{
		Flag: "ccon-at-root", Name: "CConAtRoot",
		Help: "Exploration constant for the root node. Only used when root has its own exploration parameters."}
	CpenID = options.ID{
		Flag: "cpen", Name: "CPen",
		Help: "Penalty constant of the exploration growth formula."}
	CpenAtRootID = options.ID{
		Flag: "cpen-at-root", Name: "CPenAtRoot",
		Help: "Penalty constant for the root node. Only used when root has its own exploration parameters."}
	CattID = options.ID{
		Flag: "catt", Name: "CAtt",
		Help: "Attenuation constant of the exploration growth formula."}
	CattAtRootID = options.ID{
		Flag: "catt-at-root", Name: "CAttAtRoot",
		Help: "Attenuation constant for the root node. Only used when root has its own exploration parameters."}
	RootHasOwnCpuctParamsID = options.ID{
		Flag: "root-has-own-cpuct-params", Name: "RootHasOwnCpuctParams",
		Help: "If enabled, the root node uses the dedicated at-root exploration parameters instead of the regular ones."}
	TemperatureID = options.ID{
		Flag: "temperature", Name: "Temperature",
		Help: "Tames randomness of move selection. Zero means best move is always picked."}
	TempDecayMovesID = options.ID{
		Flag: "tempdecay-moves", Name: "TempDecayMoves",
		Help: "Over how many moves the temperature decays from initial to zero. Zero disables decay."}
	TempDecayDelayMovesID = options.ID{
		Flag: "tempdecay-delay-moves", Name: "TempDecayDelayMoves",
		Help: "Delay the temperature decay by this many moves."}
	TemperatureCutoffMoveID = options.ID{
		Flag: "temp-cutoff-move", Name: "TempCutoffMove",
		Help: "Use endgame temperature from this move on. Zero disables cutoff."}
	TemperatureEndgameID = options.ID{
		Flag: "temp-endgame", Name: "TempEndgame",
		Help: "Temperature used after the cutoff move."}
	TemperatureWinpctCutoffID = options.ID{
		Flag: "temp-value-cutoff", Name: "TempValueCutoff",
		Help: "Moves which are worse than the best move by this percentage of win rate are not picked by temperature."}
	TemperatureVisitOffsetID = options.ID{
		Flag: "temp-visit-offset", Name: "TempVisitOffset",
		Help: "Offset subtracted from per-move visit counts before temperature weighting."}
	NoiseEpsilonID = options.ID{
		Flag: "noise-epsilon", Name: "DirichletNoiseEpsilon",
		Help: "Fraction of Dirichlet noise mixed into the root prior. Zero disables noise."}
	NoiseAlphaID = options.ID{
		Flag: "noise-alpha", Name: "DirichletNoiseAlpha",
		Help: "Alpha of the Dirichlet noise distribution."}
	VerboseStatsID = options.ID{
		Flag: "verbose-move-stats", Name: "VerboseMoveStats",
		Help: "Display per-move statistics after every search."}
	LogLiveStatsID = options.ID{
		Flag: "log-live-stats", Name: "LogLiveStats",
		Help: "Log per-move statistics after every batch."}
	FpuStrategyID = options.ID{
		Flag: "fpu-strategy", Name: "FpuStrategy",
		Help: "How to evaluate not-yet-visited moves: reduction of the parent eval, or an absolute value."}
	FpuValueID = options.ID{
		Flag: "fpu-value", Name: "FpuValue",
		Help: "First-play urgency: reduction (or absolute value, depending on strategy) assigned to unvisited moves."}
	FpuStrategyAtRootID = options.ID{
		Flag: "fpu-strategy-at-root", Name: "FpuStrategyAtRoot",
		Help: "First-play-urgency strategy at the root node. \"same\" inherits the regular strategy and value."}
	FpuValueAtRootID = options.ID{
		Flag: "fpu-value-at-root", Name: "FpuValueAtRoot",
		Help: "First-play urgency at the root node. Ignored when the at-root strategy is \"same\"."}
	CacheHistoryLengthID = options.ID{
		Flag: "cache-history-length", Name: "CacheHistoryLength",
		Help: "How many last moves to use in the cache key, in addition to the position."}
	MaxCollisionEventsID = options.ID{
		Flag: "max-collision-events", Name: "MaxCollisionEvents",
		Help: "Allowed node collision events per batch."}
	MaxCollisionVisitsID = options.ID{
		Flag: "max-collision-visits", Name: "MaxCollisionVisits",
		Help: "Total allowed node collisions per batch."}
	OutOfOrderEvalID = options.ID{
		Flag: "out-of-order-eval", Name: "OutOfOrderEval",
		Help: "Process cached or terminal evaluations out of order."}
	MaxOutOfOrderEvalsID = options.ID{
		Flag: "max-out-of-order-evals", Name: "MaxOutOfOrderEvals",
		Help: "Maximum number of out of order evaluations per batch gathering."}
	StickyEndgamesID = options.ID{
		Flag: "sticky-endgames", Name: "StickyEndgames",
		Help: "Propagate certain terminal outcomes up the tree."}
	SyzygyFastPlayID = options.ID{
		Flag: "syzygy-fast-play", Name: "SyzygyFastPlay",
		Help: "Play DTZ-optimal moves in won tablebase positions without search."}
	MultiPvID = options.ID{
		Flag: "multipv", Name: "MultiPV",
		Help: "Number of principal variations to report."}
	PerPvCountersID = options.ID{
		Flag: "per-pv-counters", Name: "PerPVCounters",
		Help: "Report per-PV node counts instead of total nodes."}
	ScoreTypeID = options.ID{
		Flag: "score-type", Name: "ScoreType",
		Help: "What format to report the evaluation in."}
	HistoryFillID = options.ID{
		Flag: "history-fill", Name: "HistoryFill",
		Help: "Synthesize missing history planes: never, only for positions given by FEN, or always."}
	MovesLeftMaxEffectID = options.ID{
		Flag: "moves-left-max-effect", Name: "MovesLeftMaxEffect",
		Help: "Maximum bonus or penalty from the moves-left head."}
	MovesLeftThresholdID = options.ID{
		Flag: "moves-left-threshold", Name: "MovesLeftThreshold",
		Help: "Absolute value of Q above which the moves-left effect applies."}
	MovesLeftSlopeID = options.ID{
		Flag: "moves-left-slope", Name: "MovesLeftSlope",
		Help: "Scale of the moves-left difference before clamping."}
	MovesLeftConstantFactorID = options.ID{
		Flag: "moves-left-constant-factor", Name: "MovesLeftConstantFactor",
		Help: "Constant term of the moves-left utility."}
	MovesLeftScaledFactorID = options.ID{
		Flag: "moves-left-scaled-factor", Name: "MovesLeftScaledFactor",
		Help: "Linear term of the moves-left utility, scaled by Q."}
	MovesLeftQuadraticFactorID = options.ID{
		Flag: "moves-left-quadratic-factor", Name: "MovesLeftQuadraticFactor",
		Help: "Quadratic term of the moves-left utility, scaled by Q squared."}
	ShortSightednessID = options.ID{
		Flag: "short-sightedness", Name: "ShortSightedness",
		Help: "How much to discount distant rewards. Zero means no discounting."}
	DisplayCacheUsageID = options.ID{
		Flag: "display-cache-usage", Name: "DisplayCacheUsage",
		Help: "Report cache fullness in info lines."}
	MaxConcurrentSearchersID = options.ID{
		Flag: "max-concurrent-searchers", Name: "MaxConcurrentSearchers",
		Help: "How many threads may gather minibatches concurrently."}
	DrawScoreSidetomoveID = options.ID{
		Flag: "draw-score-sidetomove", Name: "DrawScoreSideToMove",
		Help: "Score, in centipawns, of a draw from the point of view of the side to move."}
	DrawScoreOpponentID = options.ID{
		Flag: "draw-score-opponent", Name: "DrawScoreOpponent",
		Help: "Score, in centipawns, of a draw from the point of view of the opponent."}
	DrawScoreWhiteID = options.ID{
		Flag: "draw-score-white", Name: "DrawScoreWhite",
		Help: "Adjustment, in centipawns, of white's draw score."}
	DrawScoreBlackID = options.ID{
		Flag: "draw-score-black", Name: "DrawScoreBlack",
		Help: "Adjustment, in centipawns, of black's draw score."}
)

const (
	FpuStrategyReduction = "reduction"
	FpuStrategyAbsolute  = "absolute"
	FpuStrategySame      = "same"
)

// HistoryFill says how missing history planes are synthesized.
type HistoryFill int

const (
	HistoryFillNo HistoryFill = iota
	HistoryFillFenOnly
	HistoryFillAlways
)

func historyFillFromString(s string) HistoryFill {
	switch s {
	case "always":
		return HistoryFillAlways
	case "fen_only":
		return HistoryFillFenOnly
	default:
		return HistoryFillNo
	}
}

// Populate declares every search parameter. Must run, once, before any
// Params is constructed from the dict.
func Populate(p *options.Parser) {
	p.AddInt(MiniBatchSizeID, 1, 1024, 256)
	p.AddInt(MaxPrefetchBatchID, 0, 1024, 32)
	p.AddBool(LogitQID, false)
	p.AddFloat(CconID, 0, 100, 2.147)
	p.AddFloat(CconAtRootID, 0, 100, 2.147)
	p.AddFloat(CpenID, 0, 1e9, 18368)
	p.AddFloat(CpenAtRootID, 0, 1e9, 18368)
	p.AddFloat(CattID, 0, 1000, 2.815)
	p.AddFloat(CattAtRootID, 0, 1000, 2.815)
	p.AddBool(RootHasOwnCpuctParamsID, false)
	p.AddFloat(TemperatureID, 0, 100, 0)
	p.AddInt(TempDecayMovesID, 0, 100, 0)
	p.AddInt(TempDecayDelayMovesID, 0, 100, 0)
	p.AddInt(TemperatureCutoffMoveID, 0, 1000, 0)
	p.AddFloat(TemperatureEndgameID, 0, 100, 0)
	p.AddFloat(TemperatureWinpctCutoffID, 0, 100, 100)
	p.AddFloat(TemperatureVisitOffsetID, -1000, 1000, 0)
	p.AddFloat(NoiseEpsilonID, 0, 1, 0)
	p.AddFloat(NoiseAlphaID, 0, 100, 0.3)
	p.AddBool(VerboseStatsID, false)
	p.AddBool(LogLiveStatsID, false)
	p.AddChoice(FpuStrategyID,
		[]string{FpuStrategyReduction, FpuStrategyAbsolute}, FpuStrategyReduction)
	p.AddFloat(FpuValueID, -100, 100, 1.32)
	p.AddChoice(FpuStrategyAtRootID,
		[]string{FpuStrategySame, FpuStrategyReduction, FpuStrategyAbsolute}, FpuStrategySame)
	p.AddFloat(FpuValueAtRootID, -100, 100, 1)
	p.AddInt(CacheHistoryLengthID, 0, 7, 0)
	p.AddInt(MaxCollisionEventsID, 1, 1024, 32)
	p.AddInt(MaxCollisionVisitsID, 1, 1000000, 9999)
	p.AddBool(OutOfOrderEvalID, true)
	p.AddInt(MaxOutOfOrderEvalsID, 1, 1000000, 100)
	p.AddBool(StickyEndgamesID, true)
	p.AddBool(SyzygyFastPlayID, true)
	p.AddInt(MultiPvID, 1, 500, 1)
	p.AddBool(PerPvCountersID, false)
	p.AddChoice(ScoreTypeID,
		[]string{"centipawn", "centipawn_with_drawscore", "win_percentage", "Q", "W-L"},
		"centipawn")
	p.AddChoice(HistoryFillID, []string{"no", "fen_only", "always"}, "fen_only")
	p.AddFloat(MovesLeftMaxEffectID, 0, 1, 0.0345)
	p.AddFloat(MovesLeftThresholdID, 0, 1, 0.8)
	p.AddFloat(MovesLeftSlopeID, 0, 1, 0.0027)
	p.AddFloat(MovesLeftConstantFactorID, -1, 1, 0)
	p.AddFloat(MovesLeftScaledFactorID, -1, 1, 1.65)
	p.AddFloat(MovesLeftQuadraticFactorID, -1, 1, -0.65)
	p.AddFloat(ShortSightednessID, 0, 1, 0)
	p.AddBool(DisplayCacheUsageID, false)
	p.AddInt(MaxConcurrentSearchersID, 0, 128, 1)
	p.AddInt(DrawScoreSidetomoveID, -100, 100, 0)
	p.AddInt(DrawScoreOpponentID, -100, 100, 0)
	p.AddInt(DrawScoreWhiteID, -100, 100, 0)
	p.AddInt(DrawScoreBlackID, -100, 100, 0)
}

// Params is the per-search view of the search parameters. Cached values are
// snapshotted at construction and are immutable for the lifetime of one
// search: either they are read on a hot path, or changing them mid-search
// would corrupt the tree. Live values read the dict on every access and may
// be reconfigured between searches.
type Params struct {
	dict *options.Dict

	// Cached.
	logitQ                   bool
	ccon                     float64
	cconAtRoot               float64
	cpen                     float64
	cpenAtRoot               float64
	catt                     float64
	cattAtRoot               float64
	noiseEpsilon             float64
	noiseAlpha               float64
	fpuAbsolute              bool
	fpuValue                 float64
	fpuAbsoluteAtRoot        bool
	fpuValueAtRoot           float64
	cacheHistoryLength       int
	maxCollisionEvents       int
	maxCollisionVisits       int
	outOfOrderEval           bool
	maxOutOfOrderEvals       int
	stickyEndgames           bool
	syzygyFastPlay           bool
	historyFill              HistoryFill
	miniBatchSize            int
	movesLeftMaxEffect       float64
	movesLeftThreshold       float64
	movesLeftSlope           float64
	movesLeftConstantFactor  float64
	movesLeftScaledFactor    float64
	movesLeftQuadraticFactor float64
	shortSightedness         float64
	displayCacheUsage        bool
	maxConcurrentSearchers   int
	drawScoreSidetomove      float64
	drawScoreOpponent        float64
	drawScoreWhite           float64
	drawScoreBlack           float64
}

// NewParams snapshots the cached parameters from a populated dict. A missing
// parameter panics: Populate is guaranteed to run first, so a miss means the
// startup phases ran out of order.
func NewParams(dict *options.Dict) *Params {
	var p = &Params{
		dict:                     dict,
		logitQ:                   dict.GetBool(LogitQID),
		ccon:                     dict.GetFloat(CconID),
		cpen:                     dict.GetFloat(CpenID),
		catt:                     dict.GetFloat(CattID),
		noiseEpsilon:             dict.GetFloat(NoiseEpsilonID),
		noiseAlpha:               dict.GetFloat(NoiseAlphaID),
		fpuAbsolute:              dict.GetString(FpuStrategyID) == FpuStrategyAbsolute,
		fpuValue:                 dict.GetFloat(FpuValueID),
		cacheHistoryLength:       dict.GetInt(CacheHistoryLengthID),
		maxCollisionEvents:       dict.GetInt(MaxCollisionEventsID),
		maxCollisionVisits:       dict.GetInt(MaxCollisionVisitsID),
		outOfOrderEval:           dict.GetBool(OutOfOrderEvalID),
		maxOutOfOrderEvals:       dict.GetInt(MaxOutOfOrderEvalsID),
		stickyEndgames:           dict.GetBool(StickyEndgamesID),
		syzygyFastPlay:           dict.GetBool(SyzygyFastPlayID),
		historyFill:              historyFillFromString(dict.GetString(HistoryFillID)),
		miniBatchSize:            dict.GetInt(MiniBatchSizeID),
		movesLeftMaxEffect:       dict.GetFloat(MovesLeftMaxEffectID),
		movesLeftThreshold:       dict.GetFloat(MovesLeftThresholdID),
		movesLeftSlope:           dict.GetFloat(MovesLeftSlopeID),
		movesLeftConstantFactor:  dict.GetFloat(MovesLeftConstantFactorID),
		movesLeftScaledFactor:    dict.GetFloat(MovesLeftScaledFactorID),
		movesLeftQuadraticFactor: dict.GetFloat(MovesLeftQuadraticFactorID),
		shortSightedness:         dict.GetFloat(ShortSightednessID),
		displayCacheUsage:        dict.GetBool(DisplayCacheUsageID),
		maxConcurrentSearchers:   dict.GetInt(MaxConcurrentSearchersID),
		drawScoreSidetomove:      float64(dict.GetInt(DrawScoreSidetomoveID)) / 100,
		drawScoreOpponent:        float64(dict.GetInt(DrawScoreOpponentID)) / 100,
		drawScoreWhite:           float64(dict.GetInt(DrawScoreWhiteID)) / 100,
		drawScoreBlack:           float64(dict.GetInt(DrawScoreBlackID)) / 100,
	}
	if dict.GetBool(RootHasOwnCpuctParamsID) {
		p.cconAtRoot = dict.GetFloat(CconAtRootID)
		p.cpenAtRoot = dict.GetFloat(CpenAtRootID)
		p.cattAtRoot = dict.GetFloat(CattAtRootID)
	} else {
		p.cconAtRoot = p.ccon
		p.cpenAtRoot = p.cpen
		p.cattAtRoot = p.catt
	}
	if strategy := dict.GetString(FpuStrategyAtRootID); strategy == FpuStrategySame {
		p.fpuAbsoluteAtRoot = p.fpuAbsolute
		p.fpuValueAtRoot = p.fpuValue
	} else {
		p.fpuAbsoluteAtRoot = strategy == FpuStrategyAbsolute
		p.fpuValueAtRoot = dict.GetFloat(FpuValueAtRootID)
	}
	return p
}

// Cached accessors.

func (p *Params) MiniBatchSize() int { return p.miniBatchSize }
func (p *Params) LogitQ() bool       { return p.logitQ }

func (p *Params) Ccon(atRoot bool) float64 {
	if atRoot {
		return p.cconAtRoot
	}
	return p.ccon
}

func (p *Params) Cpen(atRoot bool) float64 {
	if atRoot {
		return p.cpenAtRoot
	}
	return p.cpen
}

func (p *Params) Catt(atRoot bool) float64 {
	if atRoot {
		return p.cattAtRoot
	}
	return p.catt
}

func (p *Params) NoiseEpsilon() float64 { return p.noiseEpsilon }
func (p *Params) NoiseAlpha() float64   { return p.noiseAlpha }

func (p *Params) FpuAbsolute(atRoot bool) bool {
	if atRoot {
		return p.fpuAbsoluteAtRoot
	}
	return p.fpuAbsolute
}

func (p *Params) FpuValue(atRoot bool) float64 {
	if atRoot {
		return p.fpuValueAtRoot
	}
	return p.fpuValue
}

func (p *Params) CacheHistoryLength() int       { return p.cacheHistoryLength }
func (p *Params) MaxCollisionEvents() int       { return p.maxCollisionEvents }
func (p *Params) MaxCollisionVisits() int       { return p.maxCollisionVisits }
func (p *Params) OutOfOrderEval() bool          { return p.outOfOrderEval }
func (p *Params) MaxOutOfOrderEvals() int       { return p.maxOutOfOrderEvals }
func (p *Params) StickyEndgames() bool          { return p.stickyEndgames }
func (p *Params) SyzygyFastPlay() bool          { return p.syzygyFastPlay }
func (p *Params) GetHistoryFill() HistoryFill   { return p.historyFill }
func (p *Params) MovesLeftMaxEffect() float64   { return p.movesLeftMaxEffect }
func (p *Params) MovesLeftThreshold() float64   { return p.movesLeftThreshold }
func (p *Params) MovesLeftSlope() float64       { return p.movesLeftSlope }
func (p *Params) MovesLeftConstantFactor() float64 {
	return p.movesLeftConstantFactor
}
func (p *Params) MovesLeftScaledFactor() float64 { return p.movesLeftScaledFactor }
func (p *Params) MovesLeftQuadraticFactor() float64 {
	return p.movesLeftQuadraticFactor
}
func (p *Params) ShortSightedness() float64    { return p.shortSightedness }
func (p *Params) DisplayCacheUsage() bool      { return p.displayCacheUsage }
func (p *Params) MaxConcurrentSearchers() int  { return p.maxConcurrentSearchers }
func (p *Params) SidetomoveDrawScore() float64 { return p.drawScoreSidetomove }
func (p *Params) OpponentDrawScore() float64   { return p.drawScoreOpponent }
func (p *Params) WhiteDrawDelta() float64      { return p.drawScoreWhite }
func (p *Params) BlackDrawDelta() float64      { return p.drawScoreBlack }

// Live accessors.

func (p *Params) MaxPrefetchBatch() int { return p.dict.GetInt(MaxPrefetchBatchID) }
func (p *Params) Temperature() float64  { return p.dict.GetFloat(TemperatureID) }
func (p *Params) TemperatureVisitOffset() float64 {
	return p.dict.GetFloat(TemperatureVisitOffsetID)
}
func (p *Params) TempDecayMoves() int      { return p.dict.GetInt(TempDecayMovesID) }
func (p *Params) TempDecayDelayMoves() int { return p.dict.GetInt(TempDecayDelayMovesID) }
func (p *Params) TemperatureCutoffMove() int {
	return p.dict.GetInt(TemperatureCutoffMoveID)
}
func (p *Params) TemperatureEndgame() float64 {
	return p.dict.GetFloat(TemperatureEndgameID)
}
func (p *Params) TemperatureWinpctCutoff() float64 {
	return p.dict.GetFloat(TemperatureWinpctCutoffID)
}
func (p *Params) VerboseStats() bool { return p.dict.GetBool(VerboseStatsID) }
func (p *Params) LogLiveStats() bool { return p.dict.GetBool(LogLiveStatsID) }
func (p *Params) MultiPv() int       { return p.dict.GetInt(MultiPvID) }
func (p *Params) PerPvCounters() bool {
	return p.dict.GetBool(PerPvCountersID)
}
func (p *Params) ScoreType() string { return p.dict.GetString(ScoreTypeID) }
