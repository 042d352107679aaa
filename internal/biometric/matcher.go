// Package biometric holds the candidate index of enrolled face descriptors and
// the nearest-neighbour matcher run against it.
package biometric

import (
	"context"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dtroode/kioskauth-server/internal/model"
)

const (
	// DefaultThreshold is the maximum (exclusive) distance accepted as identity.
	DefaultThreshold = 0.6

	defaultMinShardSize = 2048
	cancelCheckEvery    = 256
)

// Match is the nearest candidate to a query descriptor.
type Match struct {
	AccountID uuid.UUID
	Distance  float64
}

// Distance returns the Euclidean distance between a and b.
// ok is false when the vectors differ in length.
func Distance(a, b model.Descriptor) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	return math.Sqrt(squaredDistance(a, b)), true
}

func squaredDistance(a, b model.Descriptor) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// nearest is the best candidate of a scanned range; index is its position in
// the full candidate slice, -1 when nothing comparable was found.
type nearest struct {
	index int
	sq    float64
}

func (n nearest) better(o nearest) bool {
	if o.index < 0 {
		return false
	}
	if n.index < 0 || o.sq < n.sq {
		return true
	}
	return o.sq == n.sq && o.index < n.index
}

func scan(ctx context.Context, query model.Descriptor, candidates []model.Candidate, offset int) (nearest, error) {
	best := nearest{index: -1}
	for i, c := range candidates {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nearest{index: -1}, err
			}
		}
		if len(c.Descriptor) != len(query) {
			continue
		}
		sq := squaredDistance(query, c.Descriptor)
		if best.index < 0 || sq < best.sq {
			best = nearest{index: offset + i, sq: sq}
		}
	}
	return best, nil
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithShards splits candidate sets of at least minShardSize entries across
// shards goroutines.
func WithShards(shards, minShardSize int) MatcherOption {
	return func(m *Matcher) {
		if shards > 0 {
			m.shards = shards
		}
		if minShardSize > 0 {
			m.minShardSize = minShardSize
		}
	}
}

// Matcher finds the enrolled account closest to a query descriptor.
type Matcher struct {
	threshold    float64
	shards       int
	minShardSize int
}

// NewMatcher creates a Matcher accepting distances strictly below threshold.
func NewMatcher(threshold float64, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		threshold:    threshold,
		shards:       1,
		minShardSize: defaultMinShardSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the nearest candidate and whether it lies strictly within the
// threshold. Ties resolve to the candidate that comes first in the slice.
// Candidates whose dimensionality differs from the query are ignored.
// An empty (or fully incomparable) candidate set yields ok == false and a zero Match.
func (m *Matcher) Match(ctx context.Context, query model.Descriptor, candidates []model.Candidate) (Match, bool, error) {
	if len(candidates) == 0 || len(query) == 0 {
		return Match{}, false, nil
	}

	var (
		best nearest
		err  error
	)
	if m.shards > 1 && len(candidates) >= m.minShardSize {
		best, err = m.scanSharded(ctx, query, candidates)
	} else {
		best, err = scan(ctx, query, candidates, 0)
	}
	if err != nil {
		return Match{}, false, err
	}
	if best.index < 0 {
		return Match{}, false, nil
	}

	match := Match{
		AccountID: candidates[best.index].AccountID,
		Distance:  math.Sqrt(best.sq),
	}
	return match, match.Distance < m.threshold, nil
}

func (m *Matcher) scanSharded(ctx context.Context, query model.Descriptor, candidates []model.Candidate) (nearest, error) {
	shardSize := (len(candidates) + m.shards - 1) / m.shards
	results := make([]nearest, m.shards)

	g, gctx := errgroup.WithContext(ctx)
	for s := 0; s < m.shards; s++ {
		start := s * shardSize
		if start >= len(candidates) {
			results[s] = nearest{index: -1}
			continue
		}
		end := min(start+shardSize, len(candidates))

		g.Go(func() error {
			res, err := scan(gctx, query, candidates[start:end], start)
			if err != nil {
				return err
			}
			results[s] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nearest{index: -1}, err
	}

	best := nearest{index: -1}
	for _, r := range results {
		if best.better(r) {
			best = r
		}
	}
	return best, nil
}
