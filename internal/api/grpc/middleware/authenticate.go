package middleware

import (
	"context"
	"slices"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// SessionVerifier resolves the principal of a bearer session token.
type SessionVerifier interface {
	Verify(token string) (model.Principal, error)
}

// Authenticate admits operator calls carrying a valid bearer session token
// and injects the principal into the context.
type Authenticate struct {
	verifier       SessionVerifier
	contextManager model.ContextManager
	operatorRoles  []model.Role
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier SessionVerifier, contextManager model.ContextManager, operatorRoles []model.Role, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		verifier:       verifier,
		contextManager: contextManager,
		operatorRoles:  operatorRoles,
		logger:         logger,
	}
}

// AuthFunc validates the authorization header and checks the caller's role.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, err
	}

	principal, err := m.verifier.Verify(token)
	if err != nil {
		m.logger.Debug("Authenticate: invalid session token",
			"error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	if !slices.Contains(m.operatorRoles, principal.Role) {
		m.logger.Warn("Authenticate: role is not allowed to operate kiosks",
			"account_id", principal.AccountID,
			"role", principal.Role)
		return nil, status.Error(codes.PermissionDenied, "operator role required")
	}

	return m.contextManager.SetPrincipalToContext(ctx, principal), nil
}
