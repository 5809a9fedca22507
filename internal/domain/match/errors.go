package match

import "errors"

// ErrNotFound is returned by Repository.Update when the match does not exist.
var ErrNotFound = errors.New("match not found")
