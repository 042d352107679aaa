package handler

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/kioskauth-server/internal/model"
)

func stringField(in *structpb.Struct, name string) string {
	if in == nil {
		return ""
	}
	v, ok := in.GetFields()[name]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

func uuidField(in *structpb.Struct, name string) (uuid.UUID, error) {
	raw := stringField(in, name)
	if raw == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is not a valid UUID", name)
	}
	return id, nil
}

// imageField decodes a base64 image. Standard and URL-safe alphabets are accepted.
func imageField(in *structpb.Struct, name string) ([]byte, error) {
	raw := stringField(in, name)
	if raw == "" {
		return nil, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	image, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		image, err = base64.RawURLEncoding.DecodeString(raw)
	}
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s is not valid base64", name)
	}
	return image, nil
}

func profileValue(p model.Profile) map[string]any {
	return map[string]any{
		"id":           p.ID.String(),
		"display_name": p.DisplayName,
		"role":         string(p.Role),
		"status":       string(p.Status),
	}
}

func terminalValue(t model.Terminal) map[string]any {
	return map[string]any{
		"id":          t.ID.String(),
		"hardware_id": t.HardwareID,
		"home_id":     t.HomeID,
		"created_at":  t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal server error")
	}
	return out, nil
}

func empty() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}
}
