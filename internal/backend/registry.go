// Package backend is the seam to the game-playing side of self-play. Move
// selection, rules and network evaluation live in backend implementations
// that builds link in and register here, database/sql driver style.
package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/farmersrice/lc0/internal/options"
	"github.com/farmersrice/lc0/internal/selfplay"
)

var BackendID = options.ID{
	Flag: "backend", Name: "Backend",
	Help: "Which game backend plays the games. Empty selects the first registered backend."}

// Factory builds a game runner from the populated option store.
type Factory func(dict *options.Dict) (selfplay.GameRunner, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	order     []string
)

// Register makes a backend available under the given name. Registering the
// same name twice panics: backends register from init and a clash is a
// build mistake.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("backend %q registered twice", name))
	}
	factories[name] = factory
	order = append(order, name)
}

// Names lists the registered backends, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	var names = make([]string, len(order))
	copy(names, order)
	sort.Strings(names)
	return names
}

// PopulateOptions declares the backend selection parameter.
func PopulateOptions(p *options.Parser) {
	p.AddString(BackendID, "")
}

// Resolve builds the runner selected by the option store.
func Resolve(dict *options.Dict) (selfplay.GameRunner, error) {
	mu.RLock()
	defer mu.RUnlock()
	var name = dict.GetString(BackendID)
	if name == "" {
		if len(order) == 0 {
			return nil, errors.New("no game backends linked into this build")
		}
		name = order[0]
	}
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (have %v)", name, Names())
	}
	return factory(dict)
}
