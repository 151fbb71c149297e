package testutil

import "errors"

// ErrSimulated is a sentinel error for testing error handling paths
var ErrSimulated = errors.New("simulated error for testing")

// ErrPackerExit stands in for a non-zero exit of the external packer.
var ErrPackerExit = errors.New("simulated packer exit status 1")
