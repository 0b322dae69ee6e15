// Package uci carries the host side of the line protocol: identity and the
// small set of output operations the rest of the program may use.
package uci

import (
	"fmt"
	"io"
	"sync"
)

const (
	EngineName    = "lc0go"
	EngineVersion = "0.1"
	EngineAuthor  = "the lc0go authors"
)

// Output is the capability handed to components that produce protocol
// messages. All operations must be safe to call from any goroutine.
type Output interface {
	// SendResponse writes raw protocol lines.
	SendResponse(lines ...string)
	// SendBestMove writes a bestmove line.
	SendBestMove(bestmove string)
	// SendInfo writes an info line.
	SendInfo(info string)
	// SendID writes the identity block.
	SendID()
}

// WriterOutput serializes protocol lines onto one writer. The tournament
// worker and the command goroutine share the sink, so every write holds the
// lock for the whole message to keep multi-line messages contiguous.
type WriterOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterOutput(w io.Writer) *WriterOutput {
	return &WriterOutput{w: w}
}

func (o *WriterOutput) SendResponse(lines ...string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(o.w, line)
	}
}

func (o *WriterOutput) SendBestMove(bestmove string) {
	o.SendResponse("bestmove " + bestmove)
}

func (o *WriterOutput) SendInfo(info string) {
	o.SendResponse("info " + info)
}

func (o *WriterOutput) SendID() {
	o.SendResponse(
		fmt.Sprintf("id name %v v%v", EngineName, EngineVersion),
		fmt.Sprintf("id author %v", EngineAuthor),
	)
}
