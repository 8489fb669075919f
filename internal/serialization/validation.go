package serialization

import (
	"github.com/pkg/errors"

	"github.com/born-ml/descent/internal/nn"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize = 16 * 1024 * 1024 // 16MB - maximum header size
	MaxDataSize   = 1 << 34          // 16GB - maximum data section (2^31 float64 values)
)

// ValidateHeader checks that h describes exactly one float64 parameter
// vector filling a data section of dataSize bytes.
func ValidateHeader(h *Header, dataSize int64) error {
	if h.FormatVersion != FormatVersionV2 {
		return errors.Wrapf(ErrUnsupportedVersion, "header declares version %d", h.FormatVersion)
	}
	if len(h.Tensors) != 1 {
		return errors.Wrapf(ErrInvalidTensor, "expected one tensor, got %d", len(h.Tensors))
	}

	t := h.Tensors[0]
	if t.Name != ParamsTensor {
		return errors.Wrapf(ErrInvalidTensor, "unexpected tensor %q", t.Name)
	}
	if t.DType != DTypeFloat64 {
		return errors.Wrapf(ErrInvalidTensor, "tensor %q: dtype %q", t.Name, t.DType)
	}
	if len(t.Shape) != 1 || t.Shape[0] < 0 {
		return errors.Wrapf(ErrInvalidTensor, "tensor %q: shape %v is not a vector", t.Name, t.Shape)
	}
	if t.Offset < 0 || t.Size < 0 {
		return errors.Wrapf(ErrOutOfBounds, "tensor %q: offset=%d, size=%d", t.Name, t.Offset, t.Size)
	}
	// Bound the count before multiplying so the byte size cannot wrap.
	if int64(t.Shape[0]) > dataSize/float64Size {
		return errors.Wrapf(ErrOutOfBounds, "tensor %q: %d values > data size %d", t.Name, t.Shape[0], dataSize)
	}
	if t.Size != int64(t.Shape[0])*float64Size {
		return errors.Wrapf(ErrInvalidTensor, "tensor %q: %d bytes for %d values", t.Name, t.Size, t.Shape[0])
	}
	if t.Offset > dataSize || t.Size > dataSize-t.Offset {
		return errors.Wrapf(ErrOutOfBounds, "tensor %q: offset %d + size %d > data size %d", t.Name, t.Offset, t.Size, dataSize)
	}

	if len(h.ModelShape) > 0 {
		if got := nn.Shape(h.ModelShape).NumParams(); got != t.Shape[0] {
			return errors.Wrapf(ErrInvalidTensor, "model shape %v needs %d parameters, file holds %d", h.ModelShape, got, t.Shape[0])
		}
	}
	return nil
}
