package profile

import (
	"errors"
	"testing"
)

type memStore struct {
	name string
	set  bool
	err  error
}

func (m *memStore) Nickname() (string, bool, error) { return m.name, m.set, m.err }

func (m *memStore) SetNickname(name string) error {
	if m.err != nil {
		return m.err
	}
	m.name, m.set = name, true
	return nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{"plain", "alice", "alice", nil},
		{"trimmed", "  bob  ", "bob", nil},
		{"min length", "abc", "abc", nil},
		{"max length", "abcdefghijkl", "abcdefghijkl", nil},
		{"inner space", "a b", "a b", nil},
		{"too short", "ab", "", ErrTooShort},
		{"too short after trim", "  ab ", "", ErrTooShort},
		{"empty", "", "", ErrTooShort},
		{"too long", "abcdefghijklm", "", ErrTooLong},
		{"non ascii", "héllo", "", ErrNotASCII},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.input)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Validate(%q) error = %v, want %v", tc.input, err, tc.err)
			}
			if got != tc.want {
				t.Errorf("Validate(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCheckReprompts(t *testing.T) {
	if r := Check("x"); !r.Reprompt || !errors.Is(r.Reason, ErrTooShort) {
		t.Errorf("Check(x) = %+v, want reprompt", r)
	}
	if r := Check(" carol "); r.Reprompt || r.Nickname != "carol" {
		t.Errorf("Check(carol) = %+v", r)
	}
}

func TestResolve(t *testing.T) {
	t.Run("override wins and persists", func(t *testing.T) {
		store := &memStore{name: "old", set: true}
		name, err := Resolve(store, " newbie ")
		if err != nil || name != "newbie" {
			t.Fatalf("Resolve() = %q, %v", name, err)
		}
		if store.name != "newbie" {
			t.Errorf("override not persisted: %q", store.name)
		}
	})

	t.Run("invalid override", func(t *testing.T) {
		store := &memStore{name: "old", set: true}
		if _, err := Resolve(store, "no"); !errors.Is(err, ErrTooShort) {
			t.Errorf("Resolve() error = %v, want ErrTooShort", err)
		}
		if store.name != "old" {
			t.Error("invalid override must not be persisted")
		}
	})

	t.Run("stored nickname", func(t *testing.T) {
		name, err := Resolve(&memStore{name: "saved", set: true}, "")
		if err != nil || name != "saved" {
			t.Errorf("Resolve() = %q, %v", name, err)
		}
	})

	t.Run("nothing stored", func(t *testing.T) {
		if _, err := Resolve(&memStore{}, ""); !errors.Is(err, ErrNoNickname) {
			t.Errorf("Resolve() error = %v, want ErrNoNickname", err)
		}
		if _, err := Resolve(nil, ""); !errors.Is(err, ErrNoNickname) {
			t.Errorf("Resolve(nil) error = %v, want ErrNoNickname", err)
		}
	})

	t.Run("stale stored value", func(t *testing.T) {
		if _, err := Resolve(&memStore{name: "x", set: true}, ""); !errors.Is(err, ErrNoNickname) {
			t.Errorf("Resolve() error = %v, want ErrNoNickname", err)
		}
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("boom")
		if _, err := Resolve(&memStore{err: boom}, ""); !errors.Is(err, boom) {
			t.Errorf("Resolve() error = %v, want boom", err)
		}
	})
}

func TestSave(t *testing.T) {
	store := &memStore{}
	if _, err := Save(store, "a"); err == nil {
		t.Error("expected validation error")
	}
	name, err := Save(store, " dave ")
	if err != nil || name != "dave" || store.name != "dave" {
		t.Errorf("Save() = %q, %v; stored %q", name, err, store.name)
	}
}
