package core

import (
	"errors"
	"fmt"
)

// Kind classifies session errors into a closed set. Every error surfaced by
// the session carries exactly one kind.
type Kind int

const (
	// KindNotLoaded marks operations that require a document when none is
	// present.
	KindNotLoaded Kind = iota
	// KindParse marks input bytes that are not valid structured data.
	KindParse
	// KindAddress marks address expressions that fail to parse, match
	// nothing, or resolve to a non-updatable location.
	KindAddress
	// KindIO marks external read or write failures.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotLoaded:
		return "not loaded"
	case KindParse:
		return "parse failure"
	case KindAddress:
		return "address error"
	case KindIO:
		return "io failure"
	default:
		return "unknown"
	}
}

// errNoOrigin is wrapped into a KindIO error when a round-trip write is
// requested but the document was loaded without a recorded location.
var errNoOrigin = errors.New("no originating location recorded")

// ErrBusy signals that a mutation was attempted while another mutation was
// in progress. It is a session-level signal, not a document error, so it
// sits outside the Kind set.
var ErrBusy = errors.New("session busy: a mutation is already in progress")

// Error is the typed error returned by session operations. Address is set
// when the failure concerns a specific address expression; Err wraps the
// underlying cause when one exists.
type Error struct {
	Kind    Kind
	Address string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Address != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Address, e.Err)
	case e.Address != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Address)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so callers can match with errors.Is against a
// bare &Error{Kind: ...} target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Address == "" || t.Address == e.Address)
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func notLoadedErr() error {
	return &Error{Kind: KindNotLoaded}
}

func parseErr(err error) error {
	return &Error{Kind: KindParse, Err: err}
}

func addressErr(addr string, err error) error {
	return &Error{Kind: KindAddress, Address: addr, Err: err}
}

func ioErr(err error) error {
	return &Error{Kind: KindIO, Err: err}
}
