// Package errs defines the sentinel errors returned by pcmap packages.
//
// Invariant violations while building a map are not reported through these
// errors: they indicate a code generation bug and panic instead. The errors
// below cover the recoverable paths, such as restoring a snapshot from
// untrusted bytes or registering maps in a registry.
package errs

import "errors"

// Snapshot errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid snapshot header size")
	ErrInvalidMagicNumber = errors.New("invalid snapshot magic number")
	ErrInvalidHeaderFlags = errors.New("invalid snapshot header flags")
	ErrInvalidCompression = errors.New("invalid snapshot compression type")
	ErrTruncatedPayload   = errors.New("snapshot payload truncated")
	ErrChecksumMismatch   = errors.New("snapshot checksum mismatch")
	ErrPayloadTooLarge    = errors.New("snapshot payload too large")
	ErrPayloadSize        = errors.New("decompressed payload size mismatch")
)

// Stream errors.
var (
	ErrTruncatedStream = errors.New("delta stream truncated")
	ErrCorruptStream   = errors.New("delta stream corrupt")
)

// Frame table errors.
var (
	ErrInvalidFrameName   = errors.New("invalid inline frame name")
	ErrFrameHashCollision = errors.New("inline frame name hash collision")
)

// Registry errors.
var (
	ErrNilMap               = errors.New("nil code map")
	ErrInvalidCodeBlock     = errors.New("invalid code block name")
	ErrDuplicateCodeBlock   = errors.New("code block already registered")
	ErrOverlappingCodeRange = errors.New("code block range overlaps a registered block")
)

// Listing errors.
var (
	ErrEmptyListing      = errors.New("listing has no entries")
	ErrUnorderedListing  = errors.New("listing labels are not in emission order")
	ErrListingOutOfRange = errors.New("listing label overflows the link base")
)
