package handler

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/service"
)

// KioskService authenticates a face capture presented at a terminal.
type KioskService interface {
	Login(ctx context.Context, req service.LoginRequest) (model.Session, error)
}

// Kiosk handles the kiosk.v1.Kiosk endpoints.
type Kiosk struct {
	kioskService KioskService
	logger       *logger.Logger
}

// NewKiosk creates a new Kiosk handler.
func NewKiosk(kioskService KioskService, logger *logger.Logger) *Kiosk {
	return &Kiosk{
		kioskService: kioskService,
		logger:       logger,
	}
}

// Login authenticates a face capture and returns a session for the matched account.
func (h *Kiosk) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	hardwareID := stringField(req, "hardware_id")

	h.logger.Debug("Kiosk handler: processing login request",
		"hardware_id", hardwareID)

	image, err := imageField(req, "image")
	if err != nil {
		return nil, err
	}

	session, err := h.kioskService.Login(ctx, service.LoginRequest{
		HardwareID: hardwareID,
		Image:      image,
	})
	if err != nil {
		h.logger.Info("Kiosk handler: login rejected",
			"hardware_id", hardwareID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Kiosk handler: login completed",
		"hardware_id", hardwareID,
		"account_id", session.Profile.ID)

	return newStruct(map[string]any{
		"session_token": session.Token,
		"expires_at":    session.ExpiresAt.UTC().Format(time.RFC3339),
		"profile":       profileValue(session.Profile),
	})
}
