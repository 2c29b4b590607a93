package datastructure

import "errors"

// ErrMissingKey is returned by Lookup when the key is absent and the map has
// no default factory.
var ErrMissingKey = errors.New("datastructure: missing key")
