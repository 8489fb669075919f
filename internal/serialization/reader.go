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

// Read decodes a checkpoint from r and verifies its checksum.
func Read(r io.Reader) (*Checkpoint, error) {
	br := bufio.NewReader(r)

	// Read entire fixed header (64 bytes)
	fixedHeader := make([]byte, FixedHeaderSizeV2)
	if _, err := io.ReadFull(br, fixedHeader); err != nil {
		return nil, errors.Wrap(err, "failed to read fixed header")
	}
	if string(fixedHeader[0:4]) != MagicBytes {
		return nil, errors.Wrapf(ErrInvalidMagic, "got %q, expected %q", fixedHeader[0:4], MagicBytes)
	}
	if version := binary.LittleEndian.Uint32(fixedHeader[4:8]); version != FormatVersionV2 {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "got %d, expected %d", version, FormatVersionV2)
	}

	headerSize := binary.LittleEndian.Uint64(fixedHeader[16:24])
	dataSize := binary.LittleEndian.Uint64(fixedHeader[24:32])
	var checksum [ChecksumSize]byte
	copy(checksum[:], fixedHeader[ChecksumOffsetV2:ChecksumOffsetV2+ChecksumSize])

	if headerSize > MaxHeaderSize {
		return nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}
	if dataSize > MaxDataSize || dataSize%float64Size != 0 {
		return nil, errors.Wrapf(ErrOutOfBounds, "data size %d", dataSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(br, headerBytes); err != nil {
		return nil, errors.Wrap(err, "failed to read header JSON")
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, errors.Wrap(err, "failed to parse header JSON")
	}
	//nolint:gosec // G115: sizes are bounded above
	if err := ValidateHeader(&header, int64(dataSize)); err != nil {
		return nil, err
	}

	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	if _, err := io.CopyN(io.Discard, br, padding(int64(headerSize))); err != nil {
		return nil, errors.Wrap(err, "failed to read padding")
	}

	// Allocation follows the bytes actually present, not dataSize.
	//nolint:gosec // G115: dataSize is bounded by MaxDataSize
	data, err := io.ReadAll(io.LimitReader(br, int64(dataSize)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read parameter data")
	}
	if uint64(len(data)) != dataSize {
		return nil, errors.Wrapf(ErrOutOfBounds, "data section truncated: %d of %d bytes", len(data), dataSize)
	}

	if err := ValidateChecksum(ComputeChecksum(data), checksum); err != nil {
		return nil, err
	}

	t := header.Tensors[0]
	return fromHeader(header, decodeParams(data[t.Offset:t.Offset+t.Size])), nil
}

// ReadFile reads a checkpoint from path.
func ReadFile(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()

	ck, err := Read(f)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return ck, nil
}

// decodeParams is the inverse of encodeParams.
func decodeParams(data []byte) []float64 {
	params := make([]float64, len(data)/float64Size)
	for i := range params {
		params[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*float64Size:]))
	}
	return params
}
