package selfplay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/farmersrice/lc0/internal/options"
	"github.com/farmersrice/lc0/internal/uci"
)

var InteractiveID = options.ID{
	Flag: "interactive",
	Help: "Run in interactive mode with a UCI-like interface."}

// RunnerFactory resolves the game-playing collaborator from the option
// store at tournament start.
type RunnerFactory func(dict *options.Dict) (GameRunner, error)

// Loop is the self-play command loop. Commands are processed strictly
// sequentially on the calling goroutine; at most one tournament runs in the
// background at a time.
type Loop struct {
	parser    *options.Parser
	out       uci.Output
	newRunner RunnerFactory
	log       *zap.Logger

	tournament *Tournament
}

func NewLoop(parser *options.Parser, out uci.Output, newRunner RunnerFactory, logger *zap.Logger) *Loop {
	return &Loop{
		parser:    parser,
		out:       out,
		newRunner: newRunner,
		log:       logger,
	}
}

// PopulateOptions declares the loop's own parameters plus everything the
// tournament needs. Must complete before the loop reads any of them.
func PopulateOptions(p *options.Parser) {
	p.AddBool(InteractiveID, false)
	PopulateTournamentOptions(p)
}

// Run enters batch or interactive mode depending on the interactive flag.
func (l *Loop) Run(r io.Reader) error {
	if !l.parser.Dict().GetBool(InteractiveID) {
		return l.runBatch()
	}
	return l.runInteractive(r)
}

// Close aborts any running tournament and blocks until its background
// goroutines have fully exited. The join is unconditional: the loop never
// goes away while a tournament is live.
func (l *Loop) Close() {
	if l.tournament != nil {
		l.tournament.Abort()
		l.tournament.Wait()
	}
}

// runBatch plays the tournament synchronously. Identity goes out first so a
// wrapping client knows who we are before any game output arrives.
func (l *Loop) runBatch() error {
	l.out.SendID()
	runner, err := l.newRunner(l.parser.Dict())
	if err != nil {
		return err
	}
	l.tournament = l.wireTournament(runner)
	return l.tournament.RunBlocking()
}

func (l *Loop) runInteractive(r io.Reader) error {
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var commandLine = scanner.Text()
		if commandLine == "quit" {
			break
		}
		if err := l.handle(commandLine); err != nil {
			l.out.SendInfo("string " + err.Error())
		}
	}
	return scanner.Err()
}

// handle rejects only the offending command; the session continues.
func (l *Loop) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "uci":
		return l.uciCommand()
	case "isready":
		l.out.SendResponse("readyok")
		return nil
	case "setoption":
		return l.setOptionCommand(fields[1:])
	case "start":
		return l.startCommand()
	}
	return fmt.Errorf("unknown command %q", fields[0])
}

func (l *Loop) uciCommand() error {
	l.out.SendID()
	l.out.SendResponse(l.parser.ListOptionsUci()...)
	l.out.SendResponse("uciok")
	return nil
}

func (l *Loop) setOptionCommand(fields []string) error {
	name, value, context, err := parseSetOption(fields)
	if err != nil {
		return err
	}
	return l.parser.SetUciOption(name, value, context)
}

func parseSetOption(fields []string) (name, value, context string, err error) {
	var nameParts, valueParts, contextParts []string
	var current *[]string
	for _, token := range fields {
		switch token {
		case "name":
			current = &nameParts
		case "value":
			current = &valueParts
		case "context":
			current = &contextParts
		default:
			if current == nil {
				return "", "", "", errors.New("invalid setoption arguments")
			}
			*current = append(*current, token)
		}
	}
	name = strings.Join(nameParts, " ")
	if name == "" {
		return "", "", "", errors.New("invalid setoption arguments")
	}
	return name, strings.Join(valueParts, " "), strings.Join(contextParts, " "), nil
}

// startCommand begins a tournament in the background. A second start while
// one is live is a no-op.
func (l *Loop) startCommand() error {
	if l.tournament != nil {
		return nil
	}
	runner, err := l.newRunner(l.parser.Dict())
	if err != nil {
		return err
	}
	l.tournament = l.wireTournament(runner)
	l.tournament.Start()
	return nil
}

// wireTournament builds the handle with the four event streams in their
// fixed order; downstream formatting relies on that ordering.
func (l *Loop) wireTournament(runner GameRunner) *Tournament {
	return NewTournament(
		l.parser.Dict(),
		runner,
		l.out.SendBestMove,
		l.out.SendInfo,
		l.sendGameInfo,
		l.sendTournament,
		l.log,
	)
}

// sendGameInfo reports one finished game. The resign report goes on its own
// line before gameready: both the training file name and the move list may
// contain spaces, so a trailing optional token on the gameready line would
// be ambiguous to a line-oriented client.
func (l *Loop) sendGameInfo(gi GameInfo) {
	var responses []string
	if gi.MinFalsePositiveThreshold != nil {
		responses = append(responses,
			fmt.Sprintf("resign_report fp_threshold %v", *gi.MinFalsePositiveThreshold))
	}
	responses = append(responses, formatGameReady(gi))
	l.out.SendResponse(responses...)
}

func formatGameReady(gi GameInfo) string {
	var sb strings.Builder
	sb.WriteString("gameready")
	if gi.TrainingFilename != "" {
		fmt.Fprintf(&sb, " trainingfile %v", gi.TrainingFilename)
	}
	if gi.GameID != -1 {
		fmt.Fprintf(&sb, " gameid %v", gi.GameID)
	}
	if gi.Player1IsBlack != nil {
		if *gi.Player1IsBlack {
			sb.WriteString(" player1 black")
		} else {
			sb.WriteString(" player1 white")
		}
	}
	if gi.Result != GameUndecided {
		fmt.Fprintf(&sb, " result %v", gi.Result)
	}
	if len(gi.Moves) != 0 {
		sb.WriteString(" moves")
		for _, move := range gi.Moves {
			sb.WriteString(" " + move)
		}
	}
	return sb.String()
}

func (l *Loop) sendTournament(info TournamentInfo) {
	l.out.SendResponse(formatTournamentStatus(info))
}

// formatTournamentStatus renders one standing line. Every statistical field
// appears if and only if its own precondition holds.
func formatTournamentStatus(info TournamentInfo) string {
	var stats = ComputeStats(info)
	var sb strings.Builder
	sb.WriteString("tournamentstatus")
	if info.Finished {
		sb.WriteString(" final")
	}
	fmt.Fprintf(&sb, " P1: +%v -%v =%v", stats.Wins, stats.Losses, stats.Draws)
	if stats.HasWinningFraction {
		fmt.Fprintf(&sb, " Win: %.2f%%", stats.WinningFraction*100)
	}
	if stats.HasElo {
		fmt.Fprintf(&sb, " Elo: %.2f", stats.EloDifference)
	}
	if stats.HasLOS {
		fmt.Fprintf(&sb, " LOS: %.2f%%", stats.LOS*100)
	}
	fmt.Fprintf(&sb, " P1-W: +%v -%v =%v",
		info.Results[resultWin][0], info.Results[resultLoss][0], info.Results[resultDraw][0])
	fmt.Fprintf(&sb, " P1-B: +%v -%v =%v",
		info.Results[resultWin][1], info.Results[resultLoss][1], info.Results[resultDraw][1])
	return sb.String()
}
