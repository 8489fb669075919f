package serialization

import "time"

// Format constants.
const (
	MagicBytes        = "BORN"
	FormatVersionV2   = 2    // v2: With SHA-256 checksum
	HeaderAlignment   = 64   // Data section starts on a 64-byte boundary
	FixedHeaderSizeV2 = 64   // v2 fixed header size (0x40 bytes)
	ChecksumSize      = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffsetV2  = 0x20 // Checksum offset in v2 fixed header
)

// DTypeFloat64 is the only data type written by this package.
const DTypeFloat64 = "float64"

// float64Size is the encoded size of one parameter.
const float64Size = 8

// ParamsTensor is the name of the parameter vector in the tensor table.
const ParamsTensor = "params"

// Flags for the .born format.
const (
	FlagHasOptimizer uint32 = 1 << 1 // bit 1: optimizer state included
	FlagHasMetadata  uint32 = 1 << 2 // bit 2: custom metadata included
)

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion  int               `json:"format_version"`       // Version of the .born format
	Version        string            `json:"descent_version"`      // Version of the library that created this file
	ModelType      string            `json:"model_type"`           // "network" or "function"
	ModelShape     []int             `json:"shape,omitempty"`      // Layer widths for networks
	CreatedAt      time.Time         `json:"created_at"`           // When the file was created
	Tensors        []TensorMeta      `json:"tensors"`              // Tensor metadata
	Metadata       map[string]string `json:"metadata"`             // Custom metadata
	CheckpointMeta *CheckpointMeta   `json:"checkpoint,omitempty"` // Optimizer state (optional)
}

// CheckpointMeta records where an optimization run stopped.
type CheckpointMeta struct {
	Iterations      int            `json:"iterations"`       // Completed iterations
	Loss            *float64       `json:"loss,omitempty"`   // Last recorded loss; absent when not finite
	OptimizerType   string         `json:"optimizer_type"`   // Rule name ("adam", "rmsprop", ...)
	OptimizerConfig map[string]any `json:"optimizer_config"` // Rule hyperparameters
}

// TensorMeta describes a tensor in the .born file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name
	DType  string `json:"dtype"`  // Data type
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// padding returns the number of zero bytes between a header of headerSize
// bytes and the data section.
func padding(headerSize int64) int64 {
	currentPos := int64(FixedHeaderSizeV2) + headerSize
	return (HeaderAlignment - (currentPos % HeaderAlignment)) % HeaderAlignment
}
