package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the family of out-of-order calls. It is always
	// accompanied by one of ErrNotStarted, ErrNotAnswered or ErrFinished.
	ErrInvalidTransition = errors.New("invalid transition")

	ErrNotStarted  = errors.New("no active game")
	ErrNotAnswered = errors.New("current question not answered")
	ErrFinished    = errors.New("game already finished")

	// ErrAlreadyAnswered is returned by a second submit for the same
	// question. Callers should ignore it and not retry.
	ErrAlreadyAnswered = errors.New("question already answered")

	ErrInvalidChoice  = errors.New("invalid choice")
	ErrMissingPlayer  = errors.New("name and class period are required")
	ErrUnknownSession = errors.New("unknown session")
)

// TransitionError reports a call made in the wrong phase. The session is
// left unchanged.
type TransitionError struct {
	Op     string
	From   Phase
	Reason error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %s: %v", e.Op, e.From, e.Reason)
}

func (e *TransitionError) Unwrap() []error {
	return []error{ErrInvalidTransition, e.Reason}
}
