// Package kioskv1 declares the kiosk.v1 gRPC services. Messages are
// google.protobuf.Struct values; the field layout of every method is listed
// next to its full method name.
package kioskv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	KioskServiceName = "kiosk.v1.Kiosk"
	AdminServiceName = "kiosk.v1.Admin"
)

const (
	// {hardware_id, image(base64)} -> {session_token, expires_at, profile}
	Kiosk_Login_FullMethodName = "/kiosk.v1.Kiosk/Login"

	// {display_name, role} -> {profile}
	Admin_CreateAccount_FullMethodName = "/kiosk.v1.Admin/CreateAccount"
	// {account_id} -> {profile}
	Admin_GetProfile_FullMethodName = "/kiosk.v1.Admin/GetProfile"
	// {account_id, role, image(base64)} -> {}
	Admin_Enroll_FullMethodName = "/kiosk.v1.Admin/Enroll"
	// {account_id} -> {}
	Admin_Unenroll_FullMethodName = "/kiosk.v1.Admin/Unenroll"
	// {hardware_id, home_id} -> {terminal}
	Admin_RegisterTerminal_FullMethodName = "/kiosk.v1.Admin/RegisterTerminal"
	// {account_id, terminal_id} -> {}
	Admin_BindTerminal_FullMethodName = "/kiosk.v1.Admin/BindTerminal"
	// {account_id, terminal_id} -> {}
	Admin_UnbindTerminal_FullMethodName = "/kiosk.v1.Admin/UnbindTerminal"
	// {account_id, status} -> {}
	Admin_SetAccountStatus_FullMethodName = "/kiosk.v1.Admin/SetAccountStatus"
	// {account_id} -> {}
	Admin_DeleteAccount_FullMethodName = "/kiosk.v1.Admin/DeleteAccount"
)

// KioskServer is the server API for the kiosk.v1.Kiosk service.
type KioskServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AdminServer is the server API for the kiosk.v1.Admin service.
type AdminServer interface {
	CreateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Enroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Unenroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RegisterTerminal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	BindTerminal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UnbindTerminal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAccountStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structMethod func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unary(fullMethod string, name string, call structMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Kiosk_ServiceDesc is the grpc.ServiceDesc for the kiosk.v1.Kiosk service.
var Kiosk_ServiceDesc = grpc.ServiceDesc{
	ServiceName: KioskServiceName,
	HandlerType: (*KioskServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(Kiosk_Login_FullMethodName, "Login", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(KioskServer).Login(ctx, in)
		}),
	},
	Metadata: "kiosk/v1/kiosk.proto",
}

// Admin_ServiceDesc is the grpc.ServiceDesc for the kiosk.v1.Admin service.
var Admin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(Admin_CreateAccount_FullMethodName, "CreateAccount", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).CreateAccount(ctx, in)
		}),
		unary(Admin_GetProfile_FullMethodName, "GetProfile", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).GetProfile(ctx, in)
		}),
		unary(Admin_Enroll_FullMethodName, "Enroll", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).Enroll(ctx, in)
		}),
		unary(Admin_Unenroll_FullMethodName, "Unenroll", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).Unenroll(ctx, in)
		}),
		unary(Admin_RegisterTerminal_FullMethodName, "RegisterTerminal", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).RegisterTerminal(ctx, in)
		}),
		unary(Admin_BindTerminal_FullMethodName, "BindTerminal", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).BindTerminal(ctx, in)
		}),
		unary(Admin_UnbindTerminal_FullMethodName, "UnbindTerminal", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).UnbindTerminal(ctx, in)
		}),
		unary(Admin_SetAccountStatus_FullMethodName, "SetAccountStatus", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).SetAccountStatus(ctx, in)
		}),
		unary(Admin_DeleteAccount_FullMethodName, "DeleteAccount", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(AdminServer).DeleteAccount(ctx, in)
		}),
	},
	Metadata: "kiosk/v1/kiosk.proto",
}

func RegisterKioskServer(s grpc.ServiceRegistrar, srv KioskServer) {
	s.RegisterService(&Kiosk_ServiceDesc, srv)
}

func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&Admin_ServiceDesc, srv)
}

// Client invokes kiosk.v1 methods over a connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes fullMethod with in and returns the response struct.
func (c *Client) Call(ctx context.Context, fullMethod string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
