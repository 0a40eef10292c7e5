package matching

import "errors"

// ErrNotLoaded indicates Match was called before a provider table was loaded.
var ErrNotLoaded = errors.New("plumber table not loaded: load a dataset before matching")
