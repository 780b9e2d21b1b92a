package storage

import "errors"

// ErrNotFound is returned when a wallet, token, or trust relationship does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write's precondition no longer holds, e.g. a token's
// owner changed between the ownership check and the custody commit, or a state
// transition was attempted from the wrong state.
var ErrConflict = errors.New("precondition failed")
