package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmersrice/lc0/internal/options"
	"github.com/farmersrice/lc0/internal/selfplay"
)

func stubFactory(result selfplay.GameResult) Factory {
	return func(*options.Dict) (selfplay.GameRunner, error) {
		return selfplay.RunnerFunc(func(ctx context.Context, spec selfplay.GameSpec) (selfplay.GameInfo, error) {
			return selfplay.GameInfo{Result: result}, nil
		}), nil
	}
}

func newBackendDict(t *testing.T, flags ...string) *options.Dict {
	t.Helper()
	var p = options.NewParser()
	PopulateOptions(p)
	require.NoError(t, p.ProcessFlags(flags))
	return p.Dict()
}

func TestRegistry(t *testing.T) {
	Register("stub-draw", stubFactory(selfplay.GameDraw))
	Register("stub-white", stubFactory(selfplay.GameWhiteWon))

	t.Run("DuplicatePanics", func(t *testing.T) {
		assert.Panics(t, func() { Register("stub-draw", stubFactory(selfplay.GameDraw)) })
	})

	t.Run("Names", func(t *testing.T) {
		assert.Contains(t, Names(), "stub-draw")
		assert.Contains(t, Names(), "stub-white")
	})

	t.Run("DefaultIsFirstRegistered", func(t *testing.T) {
		runner, err := Resolve(newBackendDict(t))
		require.NoError(t, err)
		gi, err := runner.PlayGame(context.Background(), selfplay.GameSpec{})
		require.NoError(t, err)
		assert.Equal(t, selfplay.GameDraw, gi.Result)
	})

	t.Run("ExplicitSelection", func(t *testing.T) {
		runner, err := Resolve(newBackendDict(t, "--backend", "stub-white"))
		require.NoError(t, err)
		gi, err := runner.PlayGame(context.Background(), selfplay.GameSpec{})
		require.NoError(t, err)
		assert.Equal(t, selfplay.GameWhiteWon, gi.Result)
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		_, err := Resolve(newBackendDict(t, "--backend", "cuda"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cuda")
	})
}
