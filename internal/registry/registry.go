// Package registry keeps the puzzles the platform can start.
// Puzzles register factories in init(), so the CLI, the menu and the SSH
// server can list and create them by id without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
)

// Game is what the platform drives: pure logic with no Bubble Tea
// dependency. The platform maps input, runs the tick loop and renders.
type Game interface {
	// ID returns a unique identifier (e.g., "jigsaw", "jigsaw_mini").
	// Completions are stored under it.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts a fresh session: new scatter, zero moves and time.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick with the input collected
	// since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current status (placed pieces, moves, time, done).
	State() core.GameState
}

// Resizer is implemented by games that follow a window resize without
// losing progress. Games without it are restarted on resize.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory. Panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
