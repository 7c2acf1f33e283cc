package main

import (
	"errors"

	"owlreasoner/internal/reasoner"
)

type exitClass int

const (
	exitOther exitClass = iota
	exitLoad
	exitInvalidInput
	exitTimeout
)

// loadError wraps a fixture load/parse failure so exitCodeFor can tell it
// apart from a reasoning-time error.
type loadError struct{ err error }

func (e *loadError) Error() string { return e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }

func classifyExitErr(err error) exitClass {
	var le *loadError
	if errors.As(err, &le) {
		return exitLoad
	}
	var rerr *reasoner.Error
	if errors.As(err, &rerr) {
		switch rerr.Kind {
		case reasoner.KindInvalidInput:
			return exitInvalidInput
		case reasoner.KindTimeout, reasoner.KindDepthExhausted, reasoner.KindCancelled:
			return exitTimeout
		default:
			return exitOther
		}
	}
	return exitOther
}
