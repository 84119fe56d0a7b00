package dedupe

import "errors"

// ErrUnknownPolicy is returned by ParsePolicy for unsupported values.
var ErrUnknownPolicy = errors.New("unknown duplicate year policy")
