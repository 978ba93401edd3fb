package hooks

import (
	"errors"
	"io/fs"
)

var (
	// ErrManifestNotFound is matched via errors.Is(err, fs.ErrNotExist).
	ErrManifestNotFound = fs.ErrNotExist
	ErrManifestMalformed = errors.New("manifest malformed")
	ErrManifestInvalid   = errors.New("manifest invalid")
	ErrDuplicateHookID   = errors.New("duplicate hook_id")
	ErrUnsupportedPoint  = errors.New("unsupported lifecycle point")
	ErrMissingHookID     = errors.New("missing hook_id")
	ErrMissingVersion    = errors.New("missing version")
	ErrMissingPoints     = errors.New("missing points")
	ErrEmptyPoints       = errors.New("empty points")
)
