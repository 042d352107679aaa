package model

import (
	"fmt"
	"math"
)

// DefaultDescriptorDimension is the dimensionality of descriptors produced by the extractor.
const DefaultDescriptorDimension = 128

// Descriptor is a fixed-length face vector produced by the extractor.
type Descriptor []float32

// Validate checks that d has exactly dim finite components.
func (d Descriptor) Validate(dim int) error {
	if len(d) != dim {
		return fmt.Errorf("%w: got %d components, want %d", ErrInvalidDescriptor, len(d), dim)
	}
	for i, v := range d {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: component %d is not finite", ErrInvalidDescriptor, i)
		}
	}
	return nil
}

// Clone returns a copy of d that does not share the backing array.
func (d Descriptor) Clone() Descriptor {
	if d == nil {
		return nil
	}
	out := make(Descriptor, len(d))
	copy(out, d)
	return out
}
