package serialization

import "github.com/pkg/errors"

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrOutOfBounds        = errors.New("tensor extends beyond data section")
	ErrInvalidTensor      = errors.New("invalid tensor metadata")
)
