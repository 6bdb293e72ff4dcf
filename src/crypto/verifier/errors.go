package verifier

import "errors"

var (
	// ErrUnknownActionKind indicates an action kind outside the published enumeration.
	ErrUnknownActionKind = errors.New("unknown action kind")
)
