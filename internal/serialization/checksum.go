package serialization

import (
	"crypto/sha256"

	"github.com/pkg/errors"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ValidateChecksum compares computed checksum against stored checksum.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored [32]byte) error {
	if computed != stored {
		return errors.Wrapf(ErrChecksumMismatch, "stored %x, computed %x", stored[:4], computed[:4])
	}
	return nil
}
