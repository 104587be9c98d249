// Package profile validates and persists the session nickname.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Nickname length bounds, inclusive.
const (
	MinLen = 3
	MaxLen = 12
)

var (
	ErrTooShort   = fmt.Errorf("profile: nickname must be at least %d characters", MinLen)
	ErrTooLong    = fmt.Errorf("profile: nickname must be at most %d characters", MaxLen)
	ErrNotASCII   = errors.New("profile: nickname must be ASCII")
	ErrNoNickname = errors.New("profile: no nickname set")
)

// Result is the outcome of checking one nickname entry.
// Reprompt is true when the input was rejected and the user must be asked again.
type Result struct {
	Nickname string
	Reprompt bool
	Reason   error
}

// Check validates raw prompt input.
func Check(input string) Result {
	name, err := Validate(input)
	if err != nil {
		return Result{Reprompt: true, Reason: err}
	}
	return Result{Nickname: name}
}

// Validate trims input and returns it if it is 3 to 12 ASCII characters.
func Validate(input string) (string, error) {
	name := strings.TrimSpace(input)
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			return "", ErrNotASCII
		}
	}
	switch {
	case len(name) < MinLen:
		return "", ErrTooShort
	case len(name) > MaxLen:
		return "", ErrTooLong
	}
	return name, nil
}

// Store persists the nickname between sessions.
type Store interface {
	Nickname() (string, bool, error)
	SetNickname(name string) error
}

// Resolve picks the session nickname. A non-empty override must be valid; it
// wins and is persisted. Otherwise the stored nickname is used if it is still
// valid. ErrNoNickname means the caller must prompt.
func Resolve(store Store, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		name, err := Validate(override)
		if err != nil {
			return "", err
		}
		if store != nil {
			if err := store.SetNickname(name); err != nil {
				return name, err
			}
		}
		return name, nil
	}

	if store == nil {
		return "", ErrNoNickname
	}
	saved, ok, err := store.Nickname()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoNickname
	}
	name, err := Validate(saved)
	if err != nil {
		return "", ErrNoNickname
	}
	return name, nil
}

// Save validates and persists name.
func Save(store Store, name string) (string, error) {
	valid, err := Validate(name)
	if err != nil {
		return "", err
	}
	if store == nil {
		return valid, nil
	}
	return valid, store.SetNickname(valid)
}
