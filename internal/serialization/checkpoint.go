package serialization

import (
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/descent/internal/nn"
	"github.com/born-ml/descent/internal/optim"
)

// Model types recorded in the header.
const (
	ModelTypeNetwork  = "network"
	ModelTypeFunction = "function"
)

// Checkpoint is a parameter vector together with the run that produced it.
type Checkpoint struct {
	Params          []float64         // Parameters in packing order
	Shape           nn.Shape          // Layer widths; nil for models that are not networks
	Optimizer       string            // Rule name, empty for plain parameter files
	Hyperparameters map[string]any    // Rule settings as recorded at save time
	Iterations      int               // Completed iterations
	Loss            float64           // Last recorded loss; NaN and Inf are read back as NaN
	Metadata        map[string]string // Free-form annotations
	CreatedAt       time.Time         // Set by Write when zero
}

// NewCheckpoint captures the outcome of a run made with rule.
func NewCheckpoint(res *optim.Result, rule optim.Rule) (*Checkpoint, error) {
	if res == nil {
		return nil, errors.New("result is nil")
	}

	ck := &Checkpoint{
		Params:     append([]float64(nil), res.Params...),
		Iterations: res.Iterations(),
		Loss:       res.Final(),
	}
	if rule != nil {
		hp, err := hyperparameters(rule)
		if err != nil {
			return nil, err
		}
		ck.Optimizer = rule.Name()
		ck.Hyperparameters = hp
	}
	return ck, nil
}

// hyperparameters flattens the exported fields of a rule value.
func hyperparameters(rule optim.Rule) (map[string]any, error) {
	raw, err := json.Marshal(rule)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s hyperparameters", rule.Name())
	}
	hp := make(map[string]any)
	if err := json.Unmarshal(raw, &hp); err != nil {
		return nil, errors.Wrapf(err, "encode %s hyperparameters", rule.Name())
	}
	return hp, nil
}

// header builds the JSON header describing c.
func (c *Checkpoint) header() Header {
	h := Header{
		FormatVersion: FormatVersionV2,
		Version:       libraryVersion,
		ModelType:     ModelTypeFunction,
		CreatedAt:     c.CreatedAt,
		Tensors: []TensorMeta{{
			Name:  ParamsTensor,
			DType: DTypeFloat64,
			Shape: []int{len(c.Params)},
			Size:  int64(len(c.Params)) * float64Size,
		}},
		Metadata: c.Metadata,
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	if len(c.Shape) > 0 {
		h.ModelType = ModelTypeNetwork
		h.ModelShape = []int(c.Shape.Clone())
	}
	if c.Optimizer != "" {
		h.CheckpointMeta = &CheckpointMeta{
			Iterations:      c.Iterations,
			OptimizerType:   c.Optimizer,
			OptimizerConfig: c.Hyperparameters,
		}
		if !math.IsNaN(c.Loss) && !math.IsInf(c.Loss, 0) {
			loss := c.Loss
			h.CheckpointMeta.Loss = &loss
		}
	}
	return h
}

// flags returns the fixed-header flags for h.
func flags(h Header) uint32 {
	var f uint32
	if len(h.Metadata) > 0 {
		f |= FlagHasMetadata
	}
	if h.CheckpointMeta != nil {
		f |= FlagHasOptimizer
	}
	return f
}

// fromHeader rebuilds a checkpoint from a validated header and its data.
func fromHeader(h Header, params []float64) *Checkpoint {
	ck := &Checkpoint{
		Params:    params,
		Metadata:  h.Metadata,
		CreatedAt: h.CreatedAt,
	}
	if len(h.ModelShape) > 0 {
		ck.Shape = nn.Shape(h.ModelShape)
	}
	if m := h.CheckpointMeta; m != nil {
		ck.Optimizer = m.OptimizerType
		ck.Hyperparameters = m.OptimizerConfig
		ck.Iterations = m.Iterations
		ck.Loss = math.NaN()
		if m.Loss != nil {
			ck.Loss = *m.Loss
		}
	}
	return ck
}
