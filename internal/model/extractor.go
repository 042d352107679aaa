package model

import "context"

// Extractor turns a captured image into a face descriptor.
//
// Implementations return ErrNoFaceDetected when the image holds zero or more
// than one face and ErrExtractorUnavailable on timeouts or transport failures.
type Extractor interface {
	Describe(ctx context.Context, image []byte) (Descriptor, error)
}
