package model

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of an operator endpoint.
type Principal struct {
	AccountID uuid.UUID
	Role      Role
}

type ContextManager interface {
	SetPrincipalToContext(ctx context.Context, principal Principal) context.Context
	GetPrincipalFromContext(ctx context.Context) (Principal, bool)
}
