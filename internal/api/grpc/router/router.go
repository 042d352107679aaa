package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dtroode/kioskauth-server/internal/api/grpc/handler"
	"github.com/dtroode/kioskauth-server/internal/api/grpc/kioskv1"
	"github.com/dtroode/kioskauth-server/internal/api/grpc/middleware"
	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// Services groups the application services exposed over gRPC.
type Services struct {
	Kiosk      handler.KioskService
	Enrollment handler.EnrollmentService
	Accounts   handler.AccountService
	Sessions   middleware.SessionVerifier
}

// Router builds the gRPC server for the kiosk.v1 services.
type Router struct {
	services       Services
	operatorRoles  []model.Role
	maxRecvBytes   int
	contextManager model.ContextManager
	health         *health.Server
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
// Only callers holding a session for one of operatorRoles reach the Admin service.
// maxRecvBytes bounds the request size; zero keeps the gRPC default.
func New(
	services Services,
	operatorRoles []model.Role,
	maxRecvBytes int,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		operatorRoles:  operatorRoles,
		maxRecvBytes:   maxRecvBytes,
		contextManager: contextManager,
		health:         health.NewServer(),
		logger:         logger,
	}
}

// Health returns the health server registered by Register.
func (r *Router) Health() *health.Server {
	return r.health
}

func operatorOnly(_ context.Context, c interceptors.CallMeta) bool {
	return strings.HasPrefix(c.FullMethod(), "/"+kioskv1.AdminServiceName+"/")
}

func (r *Router) recover(p any) error {
	r.logger.Error("Router: recovered from panic",
		"panic", p)
	return status.Error(codes.Internal, "internal server error")
}

// Register creates the gRPC server with logging, panic recovery and
// operator authentication, and registers all services on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Sessions, r.contextManager, r.operatorRoles, r.logger)

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(r.recover)),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(operatorOnly),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(r.recover)),
		),
	}
	if r.maxRecvBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(r.maxRecvBytes))
	}

	s := grpc.NewServer(opts...)
	r.registerKioskRoutes(s)
	r.registerAdminRoutes(s)
	healthpb.RegisterHealthServer(s, r.health)
	r.health.SetServingStatus(kioskv1.KioskServiceName, healthpb.HealthCheckResponse_SERVING)
	r.health.SetServingStatus(kioskv1.AdminServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

func (r *Router) registerKioskRoutes(server *grpc.Server) {
	kioskHandler := handler.NewKiosk(r.services.Kiosk, r.logger)
	kioskv1.RegisterKioskServer(server, kioskHandler)
}

func (r *Router) registerAdminRoutes(server *grpc.Server) {
	adminHandler := handler.NewAdmin(r.services.Enrollment, r.services.Accounts, r.contextManager, r.logger)
	kioskv1.RegisterAdminServer(server, adminHandler)
}
