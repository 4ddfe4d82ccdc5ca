package defaultroledb

import "errors"

// ErrNotFound indicates no default-role mapping exists for the user.
// Callers treat this as a normal domain outcome, not an infrastructure
// failure.
var ErrNotFound = errors.New("default role mapping not found")
