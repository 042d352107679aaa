package context

import (
	"context"

	"github.com/dtroode/kioskauth-server/internal/model"
)

type principalKey struct{}

// Manager stores the authenticated principal of a gRPC call.
// The principal lives in a context value rather than in incoming metadata,
// so a caller cannot supply it as a header.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalToContext returns a context carrying principal.
func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipalFromContext returns the principal set by the auth interceptor.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(model.Principal)
	return principal, ok
}
