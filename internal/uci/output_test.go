package uci

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterOutput(t *testing.T) {
	t.Run("SendID", func(t *testing.T) {
		var buf bytes.Buffer
		NewWriterOutput(&buf).SendID()
		assert.Equal(t,
			fmt.Sprintf("id name %v v%v\nid author %v\n", EngineName, EngineVersion, EngineAuthor),
			buf.String())
	})

	t.Run("SendBestMove", func(t *testing.T) {
		var buf bytes.Buffer
		NewWriterOutput(&buf).SendBestMove("e2e4")
		assert.Equal(t, "bestmove e2e4\n", buf.String())
	})

	t.Run("SendInfo", func(t *testing.T) {
		var buf bytes.Buffer
		NewWriterOutput(&buf).SendInfo("string hello")
		assert.Equal(t, "info string hello\n", buf.String())
	})

	t.Run("MultiLineResponseStaysContiguous", func(t *testing.T) {
		var buf bytes.Buffer
		var out = NewWriterOutput(&buf)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				var tag = fmt.Sprintf("msg%v", i)
				for j := 0; j < 50; j++ {
					out.SendResponse(tag+" first", tag+" second")
				}
			}(i)
		}
		wg.Wait()
		var lines = strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		assert.Len(t, lines, 8*50*2)
		for i := 0; i < len(lines); i += 2 {
			var tag = strings.Fields(lines[i])[0]
			assert.Equal(t, tag+" first", lines[i])
			assert.Equal(t, tag+" second", lines[i+1])
		}
	})
}
