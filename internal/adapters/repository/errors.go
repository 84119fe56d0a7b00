package repository

import "errors"

// ErrNotLoaded is returned by callers that need a dataset before startup
// has completed.
var ErrNotLoaded = errors.New("dataset not loaded")
