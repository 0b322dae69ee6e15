package selfplay

import (
	"context"
	"time"

	"github.com/farmersrice/lc0/internal/options"
)

// GameResult is the terminal outcome of one game, from white's point of view.
type GameResult int

const (
	GameUndecided GameResult = iota
	GameDraw
	GameWhiteWon
	GameBlackWon
)

func (r GameResult) String() string {
	switch r {
	case GameDraw:
		return "draw"
	case GameWhiteWon:
		return "whitewon"
	case GameBlackWon:
		return "blackwon"
	}
	return ""
}

// GameInfo is the completion record of one game. Optional fields stay at
// their zero/nil values when the producing side had nothing to report.
type GameInfo struct {
	// GameID is -1 when unknown.
	GameID int
	// Player1IsBlack is nil when the game had no fixed player assignment.
	Player1IsBlack *bool
	Result         GameResult
	Moves          []string
	// TrainingFilename names the written training artifact, if any.
	TrainingFilename string
	// MinFalsePositiveThreshold is the lowest resign threshold that would
	// have kept this game's adjudication correct, if resignation was
	// evaluated at all.
	MinFalsePositiveThreshold *float64
}

// Limits is the per-move search budget handed to the game runner.
type Limits struct {
	Visits   int64
	Playouts int64
	MoveTime time.Duration
}

// GameSpec is everything a runner needs to play one game. The per-player
// dicts carry any context overrides applied through setoption.
type GameSpec struct {
	ID             int
	Player1IsBlack bool
	Training       bool
	ShareTree      bool
	Threads        int
	ResignPct      float64
	Limits         Limits
	Player1        *options.Dict
	Player2        *options.Dict

	// Streaming callbacks for the game in progress.
	BestMove func(string)
	Info     func(string)
}

// GameRunner plays games. The actual move selection, rules and network
// evaluation live outside this package; a runner is obtained through the
// backend registry and must honor ctx cancellation by returning early with
// Result GameUndecided or ctx.Err().
type GameRunner interface {
	PlayGame(ctx context.Context, spec GameSpec) (GameInfo, error)
}

// RunnerFunc adapts a function to the GameRunner interface.
type RunnerFunc func(ctx context.Context, spec GameSpec) (GameInfo, error)

func (f RunnerFunc) PlayGame(ctx context.Context, spec GameSpec) (GameInfo, error) {
	return f(ctx, spec)
}
