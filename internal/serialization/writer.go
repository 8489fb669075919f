package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

const libraryVersion = "0.1.0"

// Write encodes ck to w in the .born v2 format.
func Write(w io.Writer, ck *Checkpoint) error {
	if ck == nil {
		return errors.New("checkpoint is nil")
	}
	if len(ck.Shape) > 0 {
		if err := ck.Shape.Validate(); err != nil {
			return err
		}
		if want := ck.Shape.NumParams(); want != len(ck.Params) {
			return errors.Wrapf(ErrInvalidTensor, "shape %v needs %d parameters, got %d", []int(ck.Shape), want, len(ck.Params))
		}
	}

	data := encodeParams(ck.Params)

	// Compute SHA-256 checksum of the data section
	checksum := ComputeChecksum(data)

	header := ck.header()
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	headerSize := uint64(len(headerJSON))
	if headerSize > MaxHeaderSize {
		return errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}

	fixedHeader := make([]byte, FixedHeaderSizeV2)

	// 0x00-0x03: Magic bytes "BORN"
	copy(fixedHeader[0:4], MagicBytes)

	// 0x04-0x07: Version (2)
	binary.LittleEndian.PutUint32(fixedHeader[4:8], uint32(FormatVersionV2))

	// 0x08-0x0B: Flags
	binary.LittleEndian.PutUint32(fixedHeader[8:12], flags(header))

	// 0x0C-0x0F: Reserved (0)

	// 0x10-0x17: Header size (8 bytes)
	binary.LittleEndian.PutUint64(fixedHeader[16:24], headerSize)

	// 0x18-0x1F: Data size (8 bytes)
	binary.LittleEndian.PutUint64(fixedHeader[24:32], uint64(len(data)))

	// 0x20-0x3F: SHA-256 checksum (32 bytes)
	copy(fixedHeader[ChecksumOffsetV2:ChecksumOffsetV2+ChecksumSize], checksum[:])

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(fixedHeader); err != nil {
		return errors.Wrap(err, "failed to write fixed header")
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header JSON")
	}
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if pad := padding(int64(headerSize)); pad > 0 {
		if _, err := bw.Write(make([]byte, pad)); err != nil {
			return errors.Wrap(err, "failed to write padding")
		}
	}
	if _, err := bw.Write(data); err != nil {
		return errors.Wrap(err, "failed to write parameter data")
	}
	return errors.Wrap(bw.Flush(), "failed to flush")
}

// WriteFile writes ck to path, replacing any existing file.
func WriteFile(path string, ck *Checkpoint) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	return Write(f, ck)
}

// encodeParams lays out params as little-endian float64 values.
func encodeParams(params []float64) []byte {
	data := make([]byte, len(params)*float64Size)
	for i, v := range params {
		binary.LittleEndian.PutUint64(data[i*float64Size:], math.Float64bits(v))
	}
	return data
}
