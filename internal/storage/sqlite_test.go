package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.jigsaw/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".jigsaw", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, want %q", got, want)
	}
	if got, _ := ExpandPath("./local.db"); got != "./local.db" {
		t.Errorf("relative path changed: %q", got)
	}
}

func TestTopCompletionsOrder(t *testing.T) {
	store := openTestStore(t)

	runs := []struct {
		nick           string
		moves, seconds int
	}{
		{"slow", 20, 300},
		{"fast", 40, 90},
		{"tidy", 25, 90},
		{"mid", 30, 120},
	}
	for _, r := range runs {
		if _, err := store.SaveCompletion("jigsaw", r.nick, r.moves, r.seconds); err != nil {
			t.Fatalf("SaveCompletion() failed: %v", err)
		}
	}
	// Different puzzle
	store.SaveCompletion("jigsaw_mini", "quick", 3, 10) //nolint:errcheck

	top, err := store.TopCompletions("jigsaw", 10)
	if err != nil {
		t.Fatalf("TopCompletions() failed: %v", err)
	}
	if len(top) != 4 {
		t.Fatalf("Expected 4 completions, got %d", len(top))
	}

	// Fastest first, ties broken by fewer moves
	want := []string{"tidy", "fast", "mid", "slow"}
	for i, nick := range want {
		if top[i].Nickname != nick {
			t.Errorf("rank %d = %s, want %s", i+1, top[i].Nickname, nick)
		}
	}
	if top[0].Moves != 25 || top[0].Seconds != 90 {
		t.Errorf("best run = %+v", top[0])
	}

	limited, _ := store.TopCompletions("jigsaw", 2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 completions with limit, got %d", len(limited))
	}
}

func TestBestAndClearCompletions(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestCompletion("jigsaw"); err != nil || ok {
		t.Fatalf("BestCompletion() on empty = %v, %v", ok, err)
	}

	store.SaveCompletion("jigsaw", "ada", 10, 60)     //nolint:errcheck
	store.SaveCompletion("jigsaw", "bob", 12, 45)     //nolint:errcheck
	store.SaveCompletion("jigsaw_mini", "cyd", 3, 20) //nolint:errcheck

	best, ok, err := store.BestCompletion("jigsaw")
	if err != nil || !ok {
		t.Fatalf("BestCompletion() = %v, %v", ok, err)
	}
	if best.Nickname != "bob" {
		t.Errorf("best = %s, want bob", best.Nickname)
	}

	if err := store.ClearCompletions("jigsaw"); err != nil {
		t.Fatalf("ClearCompletions() failed: %v", err)
	}
	if n, _ := store.CountCompletions("jigsaw"); n != 0 {
		t.Errorf("Expected 0 jigsaw runs after clear, got %d", n)
	}
	if n, _ := store.CountCompletions("jigsaw_mini"); n != 1 {
		t.Errorf("jigsaw_mini runs should not be affected, got %d", n)
	}
}

func TestNicknameSetting(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.Nickname(); err != nil || ok {
		t.Fatalf("Nickname() on fresh db = %v, %v", ok, err)
	}
	if err := store.SetNickname("alice"); err != nil {
		t.Fatalf("SetNickname() failed: %v", err)
	}
	if err := store.SetNickname("alice2"); err != nil {
		t.Fatalf("SetNickname() overwrite failed: %v", err)
	}
	name, ok, err := store.Nickname()
	if err != nil || !ok || name != "alice2" {
		t.Errorf("Nickname() = %q, %v, %v", name, ok, err)
	}
}

func TestLedgerUploadAndQuery(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	body := []byte(`{"nickname":"alice","moves":31,"time":"02:05"}`)
	tags := []Tag{
		{Name: "app", Value: "irys-jigsaw"},
		{Name: "nickname", Value: "alice"},
		{Name: "moves", Value: "31"},
		{Name: "time", Value: "02:05"},
	}

	txID, err := store.Upload(ctx, body, tags)
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}
	if len(txID) != 36 || strings.Count(txID, "-") != 4 {
		t.Errorf("txID %q is not a UUID", txID)
	}

	rec, err := store.Record(ctx, txID)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if string(rec.Data) != string(body) {
		t.Errorf("Data = %s", rec.Data)
	}
	if len(rec.Tags) != 4 || rec.Tag("moves") != "31" || rec.Tag("app") != "irys-jigsaw" {
		t.Errorf("Tags = %+v", rec.Tags)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if _, err := store.Record(ctx, "missing"); !errors.Is(err, ErrNoRecord) {
		t.Errorf("Record(missing) error = %v, want ErrNoRecord", err)
	}
}

func TestLedgerRecordsByTag(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, nick := range []string{"alice", "bob", "alice"} {
		id, err := store.Upload(ctx, []byte(nick), []Tag{
			{Name: "app", Value: "irys-jigsaw"},
			{Name: "nickname", Value: nick},
		})
		if err != nil {
			t.Fatalf("Upload() failed: %v", err)
		}
		ids = append(ids, id)
	}
	store.Upload(ctx, []byte("other"), []Tag{{Name: "app", Value: "other"}}) //nolint:errcheck

	recs, err := store.RecordsByTag(ctx, "app", "irys-jigsaw", 10)
	if err != nil {
		t.Fatalf("RecordsByTag() failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(recs))
	}
	// Newest first
	if recs[0].TxID != ids[2] || recs[2].TxID != ids[0] {
		t.Errorf("records out of order: %s %s %s", recs[0].TxID, recs[1].TxID, recs[2].TxID)
	}
	if recs[1].Tag("nickname") != "bob" {
		t.Errorf("tags not loaded: %+v", recs[1].Tags)
	}

	alice, _ := store.RecordsByTag(ctx, "nickname", "alice", 1)
	if len(alice) != 1 || alice[0].TxID != ids[2] {
		t.Errorf("limit/filter wrong: %+v", alice)
	}
}
