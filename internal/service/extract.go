package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

// CandidateIndex is the view of the biometric index used by services.
type CandidateIndex interface {
	Snapshot(role model.Role) []model.Candidate
	Invalidate()
	Remove(accountID uuid.UUID)
}

// describe runs the extractor under timeout and checks the descriptor shape.
// Every extractor failure other than a detection result is reported as
// ErrExtractorUnavailable.
func describe(ctx context.Context, extractor model.Extractor, timeout time.Duration, dim int, image []byte) (model.Descriptor, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	descriptor, err := extractor.Describe(ctx, image)
	if err != nil {
		if errors.Is(err, model.ErrNoFaceDetected) || errors.Is(err, model.ErrExtractorUnavailable) {
			return nil, err
		}
		return nil, model.NewExtractorUnavailableError(err)
	}

	if err := descriptor.Validate(dim); err != nil {
		return nil, err
	}
	return descriptor, nil
}
