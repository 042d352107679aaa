package handler

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/kioskauth-server/internal/api/grpc/handler/mocks"
	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/service"
	"github.com/dtroode/kioskauth-server/internal/testutil"
)

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestKiosk_Login(t *testing.T) {
	t.Parallel()

	image := []byte("jpeg-bytes")
	accountID := uuid.New()
	expires := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewKioskService(t)
		svc.On("Login", mock.Anything, service.LoginRequest{HardwareID: "AA-BB-CC-DD-EE-FF", Image: image}).
			Return(model.Session{
				Token:     "tok",
				ExpiresAt: expires,
				Profile: model.Profile{
					ID:          accountID,
					DisplayName: "Ada",
					Role:        model.RoleStudent,
					Status:      model.AccountStatusActive,
				},
			}, nil)

		h := NewKiosk(svc, testutil.MakeNoopLogger())
		resp, err := h.Login(context.Background(), mustStruct(t, map[string]any{
			"hardware_id": "AA-BB-CC-DD-EE-FF",
			"image":       base64.StdEncoding.EncodeToString(image),
		}))
		require.NoError(t, err)

		out := resp.AsMap()
		assert.Equal(t, "tok", out["session_token"])
		assert.Equal(t, "2026-03-03T08:00:00Z", out["expires_at"])
		profile := out["profile"].(map[string]any)
		assert.Equal(t, accountID.String(), profile["id"])
		assert.Equal(t, "Ada", profile["display_name"])
		assert.Equal(t, "student", profile["role"])
		assert.Equal(t, "active", profile["status"])
	})

	t.Run("url-safe base64 is accepted", func(t *testing.T) {
		t.Parallel()

		raw := []byte{0xfb, 0xff, 0xfe}
		svc := mocks.NewKioskService(t)
		svc.On("Login", mock.Anything, service.LoginRequest{HardwareID: "k1", Image: raw}).
			Return(model.Session{}, model.ErrUnmatched)

		h := NewKiosk(svc, testutil.MakeNoopLogger())
		_, err := h.Login(context.Background(), mustStruct(t, map[string]any{
			"hardware_id": "k1",
			"image":       base64.RawURLEncoding.EncodeToString(raw),
		}))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("bad base64", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewKioskService(t)
		h := NewKiosk(svc, testutil.MakeNoopLogger())
		_, err := h.Login(context.Background(), mustStruct(t, map[string]any{
			"hardware_id": "k1",
			"image":       "***",
		}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("missing image", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewKioskService(t)
		h := NewKiosk(svc, testutil.MakeNoopLogger())
		_, err := h.Login(context.Background(), mustStruct(t, map[string]any{"hardware_id": "k1"}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("locked account", func(t *testing.T) {
		t.Parallel()

		svc := mocks.NewKioskService(t)
		svc.On("Login", mock.Anything, mock.Anything).
			Return(model.Session{}, model.NewAccountLockedError(expires))

		h := NewKiosk(svc, testutil.MakeNoopLogger())
		_, err := h.Login(context.Background(), mustStruct(t, map[string]any{
			"hardware_id": "k1",
			"image":       base64.StdEncoding.EncodeToString(image),
		}))
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})
}
