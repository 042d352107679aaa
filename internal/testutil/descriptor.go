package testutil

import (
	"math"

	"github.com/dtroode/kioskauth-server/internal/model"
)

// Descriptor returns a deterministic descriptor of length dim whose
// components are derived from seed.
func Descriptor(dim int, seed float32) model.Descriptor {
	d := make(model.Descriptor, dim)
	for i := range d {
		d[i] = seed + float32(i)*0.001
	}
	return d
}

// Shifted returns a copy of d moved by exactly distance along the first axis.
func Shifted(d model.Descriptor, distance float64) model.Descriptor {
	out := d.Clone()
	out[0] += float32(distance)
	return out
}

// Spread returns a copy of d moved by distance spread evenly across all
// components, so the Euclidean distance to d is distance.
func Spread(d model.Descriptor, distance float64) model.Descriptor {
	out := d.Clone()
	step := float32(distance / math.Sqrt(float64(len(d))))
	for i := range out {
		out[i] += step
	}
	return out
}
