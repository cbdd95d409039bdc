package core

import "github.com/go-faster/errors"

// ErrBackend marks faults raised by the sampling backend while executing a
// scheduled circuit. Jobs hitting it fail without retry.
var ErrBackend = errors.New("backend error")
