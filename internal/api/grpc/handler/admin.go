package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/service"
)

// EnrollmentService binds and removes face descriptors.
type EnrollmentService interface {
	Enroll(ctx context.Context, req service.EnrollRequest) error
	Unenroll(ctx context.Context, accountID uuid.UUID) error
}

// AccountService administers accounts and terminals.
type AccountService interface {
	Create(ctx context.Context, req service.CreateAccountRequest) (model.Account, error)
	Profile(ctx context.Context, accountID uuid.UUID) (model.Profile, error)
	RegisterTerminal(ctx context.Context, req service.RegisterTerminalRequest) (model.Terminal, error)
	BindTerminal(ctx context.Context, accountID, terminalID uuid.UUID) error
	UnbindTerminal(ctx context.Context, accountID, terminalID uuid.UUID) error
	SetStatus(ctx context.Context, accountID uuid.UUID, status model.AccountStatus) error
	Delete(ctx context.Context, accountID uuid.UUID) error
}

// Admin handles the operator endpoints of kiosk.v1.Admin.
type Admin struct {
	enrollmentService EnrollmentService
	accountService    AccountService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(enrollmentService EnrollmentService, accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{
		enrollmentService: enrollmentService,
		accountService:    accountService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

func (h *Admin) operator(ctx context.Context) (model.Principal, error) {
	principal, ok := h.contextManager.GetPrincipalFromContext(ctx)
	if !ok {
		return model.Principal{}, status.Error(codes.Unauthenticated, "operator session required")
	}
	return principal, nil
}

func (h *Admin) CreateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}

	account, err := h.accountService.Create(ctx, service.CreateAccountRequest{
		DisplayName: stringField(req, "display_name"),
		Role:        model.Role(stringField(req, "role")),
	})
	if err != nil {
		h.logger.Error("Admin handler: failed to create account",
			"operator_id", op.AccountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: account created",
		"operator_id", op.AccountID,
		"account_id", account.ID)

	return newStruct(map[string]any{"profile": profileValue(account.Profile())})
}

func (h *Admin) GetProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if _, err := h.operator(ctx); err != nil {
		return nil, err
	}
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, err
	}

	profile, err := h.accountService.Profile(ctx, accountID)
	if err != nil {
		return nil, handleError(err)
	}

	return newStruct(map[string]any{"profile": profileValue(profile)})
}

// Enroll extracts a descriptor from the uploaded image and stores it on the account.
func (h *Admin) Enroll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, err
	}
	image, err := imageField(req, "image")
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Admin handler: processing enrollment",
		"operator_id", op.AccountID,
		"account_id", accountID,
		"image_bytes", len(image))

	err = h.enrollmentService.Enroll(ctx, service.EnrollRequest{
		AccountID: accountID,
		Role:      model.Role(stringField(req, "role")),
		Image:     image,
	})
	if err != nil {
		h.logger.Info("Admin handler: enrollment rejected",
			"operator_id", op.AccountID,
			"account_id", accountID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: account enrolled",
		"operator_id", op.AccountID,
		"account_id", accountID)

	return empty(), nil
}

func (h *Admin) Unenroll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, err
	}

	if err := h.enrollmentService.Unenroll(ctx, accountID); err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: account unenrolled",
		"operator_id", op.AccountID,
		"account_id", accountID)

	return empty(), nil
}

func (h *Admin) RegisterTerminal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}

	terminal, err := h.accountService.RegisterTerminal(ctx, service.RegisterTerminalRequest{
		HardwareID: stringField(req, "hardware_id"),
		HomeID:     stringField(req, "home_id"),
	})
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: terminal registered",
		"operator_id", op.AccountID,
		"terminal_id", terminal.ID,
		"hardware_id", terminal.HardwareID)

	return newStruct(map[string]any{"terminal": terminalValue(terminal)})
}

func (h *Admin) BindTerminal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.binding(ctx, req, "bound", h.accountService.BindTerminal)
}

func (h *Admin) UnbindTerminal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.binding(ctx, req, "unbound", h.accountService.UnbindTerminal)
}

func (h *Admin) binding(ctx context.Context, req *structpb.Struct, verb string, apply func(context.Context, uuid.UUID, uuid.UUID) error) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, err
	}
	terminalID, err := uuidField(req, "terminal_id")
	if err != nil {
		return nil, err
	}

	if err := apply(ctx, accountID, terminalID); err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: terminal "+verb,
		"operator_id", op.AccountID,
		"account_id", accountID,
		"terminal_id", terminalID)

	return empty(), nil
}

func (h *Admin) SetAccountStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, err
	}
	accountStatus := model.AccountStatus(stringField(req, "status"))

	if err := h.accountService.SetStatus(ctx, accountID, accountStatus); err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: account status changed",
		"operator_id", op.AccountID,
		"account_id", accountID,
		"status", accountStatus)

	return empty(), nil
}

func (h *Admin) DeleteAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	op, err := h.operator(ctx)
	if err != nil {
		return nil, err
	}
	accountID, err := uuidField(req, "account_id")
	if err != nil {
		return nil, err
	}

	if err := h.accountService.Delete(ctx, accountID); err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Admin handler: account deleted",
		"operator_id", op.AccountID,
		"account_id", accountID)

	return empty(), nil
}
