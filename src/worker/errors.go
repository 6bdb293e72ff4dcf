package worker

import "errors"

var (
	// ErrClosed indicates a batch submitted to a closed verifier.
	ErrClosed = errors.New("batch verifier closed")
)
