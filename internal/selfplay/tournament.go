package selfplay

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/farmersrice/lc0/internal/options"
	"github.com/farmersrice/lc0/internal/search"
)

var (
	TotalGamesID = options.ID{
		Flag: "games", Name: "Games",
		Help: "Number of games to play. -1 plays forever."}
	ParallelismID = options.ID{
		Flag: "parallelism", Name: "Parallelism",
		Help: "Number of games to play in parallel."}
	PlayerThreadsID = options.ID{
		Flag: "threads", Name: "Threads",
		Help: "Number of search worker threads per player."}
	ShareTreesID = options.ID{
		Flag: "share-trees", Name: "ShareTrees",
		Help: "Share one game tree between both players of a game."}
	TrainingID = options.ID{
		Flag: "training", Name: "Training",
		Help: "Write training data for every game."}
	ResignPercentageID = options.ID{
		Flag: "resign-percentage", Name: "ResignPercentage",
		Help: "Resign when the expected loss probability, in percent, exceeds this value. Zero disables resignation."}
	PlayoutsID = options.ID{
		Flag: "playouts", Name: "PlayoutsPerMove",
		Help: "Playouts to search per move. -1 means no limit."}
	VisitsID = options.ID{
		Flag: "visits", Name: "VisitsPerMove",
		Help: "Visits to search per move. -1 means no limit."}
	MoveTimeID = options.ID{
		Flag: "movetime", Name: "MoveTimeMs",
		Help: "Time to search per move, in milliseconds. -1 means no limit."}
)

const (
	player1Context = "player1"
	player2Context = "player2"
)

// PopulateTournamentOptions declares the tournament parameters together with
// the full search-parameter surface the tournament passes to its players.
func PopulateTournamentOptions(p *options.Parser) {
	p.AddInt(TotalGamesID, -1, 999999, -1)
	p.AddInt(ParallelismID, 1, 256, 8)
	p.AddInt(PlayerThreadsID, 1, 8, 1)
	p.AddBool(ShareTreesID, true)
	p.AddBool(TrainingID, false)
	p.AddFloat(ResignPercentageID, 0, 100, 0)
	p.AddInt(PlayoutsID, -1, 999999999, -1)
	p.AddInt(VisitsID, -1, 999999999, -1)
	p.AddInt(MoveTimeID, -1, 999999999, -1)
	search.Populate(p)
	search.PopulateTimeManagementOptions(search.RunTypeSelfplay, p)
}

type tournamentOptions struct {
	totalGames  int
	parallelism int
	threads     int
	shareTrees  bool
	training    bool
	resignPct   float64
	limits      Limits
}

// Tournament is one background run of self-play games: abortable, joinable,
// and the sole producer of the four event streams it was wired with.
type Tournament struct {
	opts    tournamentOptions
	runner  GameRunner
	player1 *options.Dict
	player2 *options.Dict
	log     *zap.Logger

	// Event callbacks, in wiring order.
	bestMove       func(string)
	info           func(string)
	gameInfo       func(GameInfo)
	tournamentInfo func(TournamentInfo)

	ctx   context.Context
	abort context.CancelFunc
	done  chan struct{}

	mu       sync.Mutex
	results  [3][2]int
	nextGame int
}

// NewTournament builds a tournament handle from the option store. The four
// callbacks are positional and always wired in the same order: best-move,
// info, per-game completion, tournament standing.
func NewTournament(
	dict *options.Dict,
	runner GameRunner,
	bestMove func(string),
	info func(string),
	gameInfo func(GameInfo),
	tournamentInfo func(TournamentInfo),
	logger *zap.Logger,
) *Tournament {
	var ctx, cancel = context.WithCancel(context.Background())
	return &Tournament{
		opts: tournamentOptions{
			totalGames:  dict.GetInt(TotalGamesID),
			parallelism: dict.GetInt(ParallelismID),
			threads:     dict.GetInt(PlayerThreadsID),
			shareTrees:  dict.GetBool(ShareTreesID),
			training:    dict.GetBool(TrainingID),
			resignPct:   dict.GetFloat(ResignPercentageID),
			limits: Limits{
				Visits:   int64(dict.GetInt(VisitsID)),
				Playouts: int64(dict.GetInt(PlayoutsID)),
				MoveTime: time.Duration(dict.GetInt(MoveTimeID)) * time.Millisecond,
			},
		},
		runner:         runner,
		player1:        dict.Sub(player1Context),
		player2:        dict.Sub(player2Context),
		log:            logger,
		bestMove:       bestMove,
		info:           info,
		gameInfo:       gameInfo,
		tournamentInfo: tournamentInfo,
		ctx:            ctx,
		abort:          cancel,
		done:           make(chan struct{}),
	}
}

// Start begins the tournament on a background goroutine.
func (t *Tournament) Start() {
	go t.RunBlocking()
}

// RunBlocking plays the tournament on the calling goroutine and returns once
// every worker has exited. The final standing always carries the finished
// marker.
func (t *Tournament) RunBlocking() error {
	defer close(t.done)
	t.log.Info("tournament started",
		zap.Int("games", t.opts.totalGames),
		zap.Int("parallelism", t.opts.parallelism))

	g, ctx := errgroup.WithContext(t.ctx)
	for i := 0; i < t.opts.parallelism; i++ {
		g.Go(func() error {
			return t.playGames(ctx)
		})
	}
	var err = g.Wait()
	if err != nil && err != context.Canceled {
		t.log.Warn("tournament stopped on error", zap.Error(err))
	}

	t.mu.Lock()
	var final = TournamentInfo{Results: t.results, Finished: true}
	t.mu.Unlock()
	t.tournamentInfo(final)
	t.log.Info("tournament finished")
	return err
}

// Abort asks the tournament to stop. Games observe the signal at their own
// checkpoints; use Wait to block until everything has exited.
func (t *Tournament) Abort() {
	t.abort()
}

// Wait blocks until the tournament run has fully exited.
func (t *Tournament) Wait() {
	<-t.done
}

func (t *Tournament) playGames(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var id, ok = t.claimGame()
		if !ok {
			return nil
		}
		var spec = t.gameSpec(id)
		gi, err := t.runner.PlayGame(ctx, spec)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		// Canonical fields come from the schedule, not the runner.
		gi.GameID = spec.ID
		var isBlack = spec.Player1IsBlack
		gi.Player1IsBlack = &isBlack
		t.finishGame(gi)
	}
}

func (t *Tournament) claimGame() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.opts.totalGames >= 0 && t.nextGame >= t.opts.totalGames {
		return 0, false
	}
	var id = t.nextGame
	t.nextGame++
	return id, true
}

func (t *Tournament) gameSpec(id int) GameSpec {
	return GameSpec{
		ID:             id,
		Player1IsBlack: id%2 == 1,
		Training:       t.opts.training,
		ShareTree:      t.opts.shareTrees,
		Threads:        t.opts.threads,
		ResignPct:      t.opts.resignPct,
		Limits:         t.opts.limits,
		Player1:        t.player1,
		Player2:        t.player2,
		BestMove:       t.bestMove,
		Info:           t.info,
	}
}

func (t *Tournament) finishGame(gi GameInfo) {
	var standing TournamentInfo
	t.mu.Lock()
	if gi.Result != GameUndecided {
		var col = 0
		if *gi.Player1IsBlack {
			col = 1
		}
		var row = resultRow(gi.Result, *gi.Player1IsBlack)
		t.results[row][col]++
	}
	standing.Results = t.results
	t.mu.Unlock()

	t.gameInfo(gi)
	t.tournamentInfo(standing)
}

func resultRow(result GameResult, player1IsBlack bool) int {
	if result == GameDraw {
		return resultDraw
	}
	var player1Won = (result == GameWhiteWon && !player1IsBlack) ||
		(result == GameBlackWon && player1IsBlack)
	if player1Won {
		return resultWin
	}
	return resultLoss
}
