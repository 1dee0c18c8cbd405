package packeddict

import "errors"

// Errors returned at load time. Per spec §7, a malformed dictionary is
// fatal at init -- these are never returned from Lookup itself, only
// from Parse.
var (
	ErrBadMagic      = errors.New("packeddict: bad collection magic")
	ErrLegacyFormat  = errors.New("packeddict: single-dictionary JSD2 format is legacy; migrate the source to a JSC2 collection")
	ErrTruncated     = errors.New("packeddict: blob truncated")
	ErrOffsetInvalid = errors.New("packeddict: offset out of bounds")
	ErrBadTextOffset = errors.New("packeddict: text offset does not point to a null-terminated string")
)
