package service

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// CaptureArchive keeps the enrollment captures of each account in object storage.
// A nil *CaptureArchive archives nothing.
type CaptureArchive struct {
	storage model.Storage
	logger  *logger.Logger
}

// NewCaptureArchive returns nil when storage is nil.
func NewCaptureArchive(storage model.Storage, logger *logger.Logger) *CaptureArchive {
	if storage == nil {
		return nil
	}
	return &CaptureArchive{storage: storage, logger: logger}
}

// Store uploads image as the capture taken at at and returns its key.
func (c *CaptureArchive) Store(ctx context.Context, accountID uuid.UUID, at time.Time, image []byte) (string, error) {
	if c == nil {
		return "", nil
	}

	key := EnrollmentImageKey(accountID, at)
	if err := c.storage.Upload(ctx, key, bytes.NewReader(image), int64(len(image)), "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to upload capture: %w", err)
	}
	return key, nil
}

// Purge deletes every capture of the account except the keys in keep and
// returns how many were deleted.
func (c *CaptureArchive) Purge(ctx context.Context, accountID uuid.UUID, keep ...string) (int, error) {
	if c == nil {
		return 0, nil
	}

	keys, err := c.storage.List(ctx, enrollmentImagePrefix(accountID))
	if err != nil {
		return 0, fmt.Errorf("failed to list captures: %w", err)
	}

	deleted := 0
	for _, key := range keys {
		if slices.Contains(keep, key) {
			continue
		}
		if err := c.storage.Delete(ctx, key); err != nil {
			return deleted, fmt.Errorf("failed to delete capture %s: %w", key, err)
		}
		deleted++
	}

	if deleted > 0 {
		c.logger.Debug("Capture archive: captures deleted",
			"account_id", accountID,
			"deleted", deleted)
	}
	return deleted, nil
}

// EnrollmentImageKey is the object key of an archived enrollment capture.
func EnrollmentImageKey(accountID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s%d.jpg", enrollmentImagePrefix(accountID), at.UnixNano())
}

func enrollmentImagePrefix(accountID uuid.UUID) string {
	return fmt.Sprintf("enrollments/%s/", accountID)
}
