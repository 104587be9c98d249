package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/score"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// fakeGame finishes after a fixed number of steps.
type fakeGame struct {
	steps    int
	finishAt int
	resets   int
	pointers int
	resized  [2]int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.pointers += len(in.Pointers)
	return core.StepResult{State: g.State()}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState {
	done := g.steps >= g.finishAt
	return core.GameState{Moves: 7, Elapsed: 42, Score: 6, GameOver: done}
}
func (g *fakeGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m GameModel, n int) GameModel {
	t.Helper()
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(GameModel)
	}
	return m
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1, Nickname: "alice"}
}

func TestGameModelRecordsCompletionOnce(t *testing.T) {
	store := testStore(t)

	got := make(chan score.Submission, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s score.Submission
		//nolint:errcheck // Test server
		json.NewDecoder(r.Body).Decode(&s)
		got <- s
		w.Write([]byte(`{"txId":"tx-1"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	game := &fakeGame{finishAt: 2}
	backend := Backend{Store: store, Scorer: score.NewClient(srv.URL, time.Second, nil)}
	m := NewGameModel(game, backend, testRuntime())
	m.Init()

	m = tick(t, m, 5)
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}

	n, err := store.CountCompletions("fake")
	if err != nil || n != 1 {
		t.Fatalf("CountCompletions = %d, %v; want 1", n, err)
	}
	best, ok, _ := store.BestCompletion("fake")
	if !ok || best.Nickname != "alice" || best.Moves != 7 || best.Seconds != 42 {
		t.Errorf("stored completion = %+v", best)
	}

	select {
	case s := <-got:
		if s.Nickname != "alice" || s.Moves != 7 || s.Time != 42 {
			t.Errorf("submission = %+v", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("score was not submitted")
	}
	select {
	case s := <-got:
		t.Errorf("duplicate submission %+v", s)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestGameModelRestartAllowsNewRecord(t *testing.T) {
	store := testStore(t)
	game := &fakeGame{finishAt: 1}
	m := NewGameModel(game, Backend{Store: store}, testRuntime())
	m.Init()
	m = tick(t, m, 2)

	next, _ := m.Update(runeKey("r"))
	m = next.(GameModel)
	m = tick(t, m, 1)
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}

	m = tick(t, m, 2)
	if n, _ := store.CountCompletions("fake"); n != 2 {
		t.Errorf("completions after replay = %d, want 2", n)
	}
}

func TestGameModelWithoutBackend(t *testing.T) {
	m := NewGameModel(&fakeGame{finishAt: 1}, Backend{}, testRuntime())
	m.Init()
	m = tick(t, m, 3)
	if !m.State().GameOver {
		t.Error("game should finish without a store or scorer")
	}
}

func TestGameModelMouseAndResize(t *testing.T) {
	game := &fakeGame{finishAt: 100}
	m := NewGameModel(game, Backend{}, testRuntime())
	m.Init()

	next, _ := m.Update(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(GameModel)
	next, _ = m.Update(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = next.(GameModel)
	m = tick(t, m, 1)
	if game.pointers != 2 {
		t.Errorf("game saw %d pointer events, want 2", game.pointers)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	m = next.(GameModel)
	if game.resized != [2]int{90, 30} || game.resets != 1 {
		t.Errorf("resize = %v, resets = %d", game.resized, game.resets)
	}
	if !strings.Contains(m.View(), "fake") {
		t.Error("view should render the game")
	}
}

func TestGameModelBack(t *testing.T) {
	m := NewGameModel(&fakeGame{finishAt: 100}, Backend{}, testRuntime())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(GameModel).BackToMenu() {
		t.Error("esc should return to the menu")
	}

	m.standalone = true
	next, cmd := m.Update(runeKey("b"))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("back in a standalone game should quit")
	}
}

func TestNicknamePrompt(t *testing.T) {
	m := NewNicknameModel("ab", 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(NicknameModel)
	if m.Done() {
		t.Fatal("short nickname accepted")
	}
	if !strings.Contains(m.View(), "Too short") {
		t.Errorf("view missing reason:\n%s", m.View())
	}

	m = NewNicknameModel("  alice ", 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(NicknameModel)
	if !m.Done() || m.Nickname() != "alice" || cmd == nil {
		t.Errorf("nickname = %q, done = %v", m.Nickname(), m.Done())
	}
}

func TestSessionNicknameFromUser(t *testing.T) {
	s := NewSessionModel(Backend{}, testRuntime(), "bob")
	if s.phase != phaseMenu || s.Nickname() != "bob" {
		t.Errorf("phase = %v, nickname = %q", s.phase, s.Nickname())
	}

	s = NewSessionModel(Backend{}, testRuntime(), "x")
	if s.phase != phaseNickname {
		t.Errorf("invalid user should prompt, phase = %v", s.phase)
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("carol")})
	next, _ = next.(SessionModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.phase != phaseMenu || s.Nickname() != "carol" {
		t.Errorf("after prompt phase = %v, nickname = %q", s.phase, s.Nickname())
	}
}

func TestCompletionRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	rows := completionRows([]storage.Completion{
		{Nickname: "alice", Moves: 12, Seconds: 75, CreatedAt: at},
	})
	want := []string{"#1", "alice", "01:15", "12", "Mar 04 05:06"}
	if len(rows) != 1 || len(rows[0]) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
}
