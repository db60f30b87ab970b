package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/email/noop"
	"pettag/internal/email/ses"
	"pettag/internal/logger"
	"pettag/internal/port"
	"pettag/internal/repository/postgres"
	"pettag/internal/service"
	s3storage "pettag/internal/storage/s3"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		usage(os.Stdout)
		return 0
	}
	if _, ok := commands[args[0]]; !ok {
		return report(fmt.Errorf("%w: unknown command %q", errUsage, args[0]))
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("failed to build logger: %v", err)
		return 1
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := wire(ctx, cfg, zl)
	if err != nil {
		zl.Error("startup failed", zap.Error(err))
		return 1
	}
	defer cleanup()

	if err := a.dispatch(ctx, args); err != nil {
		return report(err)
	}
	return 0
}

func wire(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*app, func(), error) {
	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { db.Close() }

	timeout := cfg.DB.QueryTimeout
	userRepo := postgres.NewUserRepo(db, timeout)
	petRepo := postgres.NewPetRepo(db, timeout)
	subRepo := postgres.NewSubscriptionRepo(db, timeout)
	scanRepo := postgres.NewScanRepo(db, timeout)
	ticketRepo := postgres.NewTicketRepo(db, timeout)

	storage, err := s3storage.NewS3Client(ctx, cfg.S3)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("initializing S3 client: %w", err)
	}

	sender, err := newEmailSender(ctx, cfg.Email, zl)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	subSvc := service.NewSubscriptionService(subRepo, zl)
	analyticsSvc := service.NewAnalyticsService(userRepo, petRepo, subRepo, scanRepo, zl)

	return &app{
		users:     service.NewUserService(userRepo, petRepo, subRepo, cfg.Admin, zl),
		pets:      service.NewPetService(petRepo, cfg.Admin, zl),
		subs:      subSvc,
		tickets:   service.NewTicketService(ticketRepo, cfg.Admin, zl),
		analytics: analyticsSvc,
		reminders: service.NewReminderService(subSvc, sender, zl),
		exports:   service.NewExportService(analyticsSvc, subSvc, storage, cfg.S3.Bucket, cfg.S3.PresignExpiry, zl),
		limits:    cfg.Admin,
		out:       os.Stdout,
	}, cleanup, nil
}

func newEmailSender(ctx context.Context, cfg config.EmailConfig, zl *zap.Logger) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing SES sender: %w", err)
		}
		return sender, nil
	case "noop", "":
		return noop.NewNoopSender(zl), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// report prints err to stderr and returns the process exit code.
func report(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	switch {
	case errors.Is(err, errUsage):
		usage(os.Stderr)
		return 2
	case errors.Is(err, domain.ErrValidation):
		return 2
	case errors.Is(err, domain.ErrNotFound):
		return 3
	default:
		return 1
	}
}
