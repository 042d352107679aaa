package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	grpcctx "github.com/dtroode/kioskauth-server/internal/api/grpc/context"
	"github.com/dtroode/kioskauth-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/kioskauth-server/internal/api/grpc/server"
	"github.com/dtroode/kioskauth-server/internal/biometric"
	"github.com/dtroode/kioskauth-server/internal/config"
	"github.com/dtroode/kioskauth-server/internal/extractor"
	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/repository/memory"
	"github.com/dtroode/kioskauth-server/internal/repository/postgres"
	"github.com/dtroode/kioskauth-server/internal/server"
	"github.com/dtroode/kioskauth-server/internal/service"
	minioStorage "github.com/dtroode/kioskauth-server/internal/storage/minio"
	s3Storage "github.com/dtroode/kioskauth-server/internal/storage/s3"
	"github.com/dtroode/kioskauth-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type stores struct {
	accounts  model.AccountStore
	terminals model.TerminalStore
	attempts  model.AttemptStore
	close     func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	st, err := openStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	archive, err := openArchive(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize capture archive", "error", err)
	}

	extractorClient, err := extractor.Dial(cfg.Extractor.Address, logger)
	if err != nil {
		logger.Fatal("failed to create extractor client", "error", err)
	}
	defer extractorClient.Close()

	biometricCfg := service.BiometricConfig{
		EnrollableRole: model.Role(cfg.Biometric.EnrollableRole),
		Dimension:      cfg.Extractor.Dimension,
		ExtractTimeout: cfg.Extractor.Timeout,
	}

	index := biometric.NewIndex(st.accounts, biometricCfg.EnrollableRole, logger)
	if err := index.Refresh(ctx); err != nil {
		logger.Fatal("failed to load candidate index", "error", err)
	}
	go index.Run(ctx)

	matcher := biometric.NewMatcher(cfg.Biometric.Threshold,
		biometric.WithShards(cfg.Biometric.Shards, cfg.Biometric.MinShardSize))
	lockout := service.NewLockout(st.accounts, cfg.Lockout.Policy(), logger)
	throttle := service.NewThrottle(cfg.Throttle.Burst, cfg.Throttle.RefillEvery, cfg.Throttle.IdleTTL)
	sessions := service.NewSessionIssuer(token.NewJWT(cfg.JWT.Secret), cfg.JWT.SessionTTL)

	kioskService := service.NewKiosk(st.accounts, st.attempts, extractorClient, index, matcher,
		lockout, service.NewDeviceGate(st.terminals), sessions, throttle, biometricCfg, logger)
	captures := service.NewCaptureArchive(archive, logger)
	enrollmentService := service.NewEnrollment(st.accounts, extractorClient, index, captures, biometricCfg, logger)
	accountService := service.NewAccounts(st.accounts, st.terminals, index, captures, logger)

	scheduler := cron.New()
	maintenance := service.NewMaintenance(index, throttle, st.attempts, cfg.Audit.Retention, logger)
	err = maintenance.Register(ctx, scheduler, service.MaintenanceSchedule{
		IndexRefresh:  cfg.Biometric.IndexRefresh,
		ThrottlePrune: cfg.Throttle.Prune,
		AttemptsPrune: cfg.Audit.Cleanup,
	})
	if err != nil {
		logger.Fatal("failed to schedule maintenance", "error", err)
	}
	scheduler.Start()

	r := router.New(router.Services{
		Kiosk:      kioskService,
		Enrollment: enrollmentService,
		Accounts:   accountService,
		Sessions:   sessions,
	}, cfg.Auth.Roles(), cfg.GRPC.MaxRecvBytes, grpcctx.NewManager(), logger)
	srv := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		var opts []server.TLSOption
		if cfg.GRPC.ClientCAFileName != "" {
			opts = append(opts, server.WithClientCA(cfg.GRPC.ClientCAFileName))
		}
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName, opts...)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()
	logger.Info("kiosk authentication ready",
		"database", cfg.Database.Driver,
		"capture_backend", cfg.Capture.Backend,
		"enrollable_role", biometricCfg.EnrollableRole,
		"candidates", index.Len())

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	r.Health().Shutdown()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		logger.Warn("maintenance jobs did not finish before shutdown deadline")
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg config.Database) (stores, error) {
	if cfg.Driver == "memory" {
		db := memory.NewDB()
		return stores{
			accounts:  memory.NewAccountRepository(db),
			terminals: memory.NewTerminalRepository(db),
			attempts:  memory.NewAttemptRepository(db),
			close:     func() error { return nil },
		}, nil
	}

	db, err := postgres.NewConnection(ctx, cfg.DSN)
	if err != nil {
		return stores{}, err
	}
	return stores{
		accounts:  postgres.NewAccountRepository(db),
		terminals: postgres.NewTerminalRepository(db),
		attempts:  postgres.NewAttemptRepository(db),
		close:     db.Close,
	}, nil
}

// openArchive returns nil when captures are not archived.
func openArchive(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	switch cfg.Capture.Backend {
	case "minio":
		client, err := minioStorage.New(ctx, minioStorage.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case "s3":
		client, err := s3Storage.New(ctx, s3Storage.Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
