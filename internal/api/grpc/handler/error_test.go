package handler

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/kioskauth-server/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         error
		wantCode   codes.Code
		wantReason string
	}{
		{name: "no face", in: model.ErrNoFaceDetected, wantCode: codes.InvalidArgument, wantReason: "no_face_detected"},
		{name: "invalid request", in: model.NewInvalidRequestError(errors.New("image")), wantCode: codes.InvalidArgument, wantReason: "invalid_request"},
		{name: "extractor down", in: model.NewExtractorUnavailableError(errors.New("dial")), wantCode: codes.Unavailable, wantReason: "extractor_unavailable"},
		{name: "unmatched", in: model.ErrUnmatched, wantCode: codes.Unauthenticated, wantReason: "unmatched"},
		{name: "inactive", in: model.ErrAccountInactive, wantCode: codes.PermissionDenied, wantReason: "account_inactive"},
		{name: "device", in: fmt.Errorf("login: %w", model.ErrDeviceNotAuthorized), wantCode: codes.PermissionDenied, wantReason: "device_not_authorized"},
		{name: "no terminals", in: model.ErrNoTerminalsBound, wantCode: codes.FailedPrecondition, wantReason: "no_terminals_bound"},
		{name: "role", in: model.ErrRoleNotEnrollable, wantCode: codes.FailedPrecondition, wantReason: "role_not_enrollable"},
		{name: "descriptor", in: model.ErrInvalidDescriptor, wantCode: codes.FailedPrecondition, wantReason: "invalid_descriptor"},
		{name: "throttled", in: model.ErrTerminalThrottled, wantCode: codes.ResourceExhausted, wantReason: "terminal_throttled"},
		{name: "not found", in: fmt.Errorf("failed to get account: %w", model.ErrNotFound), wantCode: codes.NotFound},
		{name: "duplicate", in: model.ErrAlreadyExists, wantCode: codes.AlreadyExists},
		{name: "other", in: errors.New("boom"), wantCode: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st, ok := status.FromError(handleError(tt.in))
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())

			if tt.wantReason == "" {
				assert.Empty(t, st.Details())
				return
			}
			require.Len(t, st.Details(), 1)
			info, ok := st.Details()[0].(*errdetails.ErrorInfo)
			require.True(t, ok)
			assert.Equal(t, tt.wantReason, info.Reason)
			assert.Equal(t, errorDomain, info.Domain)
		})
	}
}

func TestHandleError_LockUntil(t *testing.T) {
	t.Parallel()

	until := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	st, _ := status.FromError(handleError(model.NewAccountLockedError(until)))

	assert.Equal(t, codes.PermissionDenied, st.Code())
	assert.Contains(t, st.Message(), "2026-03-02T08:30:00Z")
	require.Len(t, st.Details(), 1)
	info := st.Details()[0].(*errdetails.ErrorInfo)
	assert.Equal(t, "account_locked", info.Reason)
	assert.Equal(t, "2026-03-02T08:30:00Z", info.Metadata["lock_until"])
}

func TestHandleError_InternalHidesCause(t *testing.T) {
	t.Parallel()

	st, _ := status.FromError(handleError(errors.New("password=hunter2")))
	assert.Equal(t, "internal server error", st.Message())
}
