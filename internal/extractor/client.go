// Package extractor is the client of the remote face descriptor extractor.
//
// The extractor speaks gRPC with google.protobuf.Struct messages:
//
//	faceextractor.v1.Extractor/Describe {image: base64} -> {faces: [[float, ...], ...]}
//
// One inner list is returned per detected face.
package extractor

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

const (
	ServiceName    = "faceextractor.v1.Extractor"
	describeMethod = "/" + ServiceName + "/Describe"
)

var _ model.Extractor = (*Client)(nil)

// Client calls the extractor over a gRPC connection.
type Client struct {
	conn   grpc.ClientConnInterface
	closer func() error
	logger *logger.Logger
}

// Dial creates a Client for the extractor at address. Without options the
// connection is plaintext.
func Dial(address string, logger *logger.Logger, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor client: %w", err)
	}

	return &Client{conn: conn, closer: conn.Close, logger: logger}, nil
}

// NewClient wraps an existing connection.
func NewClient(conn grpc.ClientConnInterface, logger *logger.Logger) *Client {
	return &Client{conn: conn, logger: logger}
}

// Describe returns the descriptor of the single face in image.
func (c *Client) Describe(ctx context.Context, image []byte) (model.Descriptor, error) {
	req, err := structpb.NewStruct(map[string]any{
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build extractor request: %w", err)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, describeMethod, req, resp); err != nil {
		return nil, c.classify(err)
	}

	faces := resp.GetFields()["faces"].GetListValue().GetValues()
	if len(faces) != 1 {
		c.logger.Debug("Extractor client: face count is not one",
			"faces", len(faces))
		return nil, model.ErrNoFaceDetected
	}

	return decodeDescriptor(faces[0])
}

// Close releases the connection if the client owns it.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

func (c *Client) classify(err error) error {
	code := status.Code(err)
	switch code {
	case codes.InvalidArgument, codes.NotFound:
		// the extractor rejects images it cannot decode or find a face in
		return model.ErrNoFaceDetected
	case codes.DeadlineExceeded, codes.Canceled:
		return model.NewExtractorUnavailableError(err)
	default:
		c.logger.Warn("Extractor client: call failed",
			"code", code.String(),
			"error", err.Error())
		return model.NewExtractorUnavailableError(err)
	}
}

func decodeDescriptor(face *structpb.Value) (model.Descriptor, error) {
	values := face.GetListValue().GetValues()
	if len(values) == 0 {
		return nil, model.ErrInvalidDescriptor
	}

	descriptor := make(model.Descriptor, len(values))
	for i, v := range values {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("%w: component %d is not a number", model.ErrInvalidDescriptor, i)
		}
		descriptor[i] = float32(n.NumberValue)
	}
	return descriptor, nil
}
