package mocks

import "errors"

var errNotFound = errors.New("not found")

// ErrWriteFailed is a reusable write failure for partial-failure tests.
var ErrWriteFailed = errors.New("write failed")
