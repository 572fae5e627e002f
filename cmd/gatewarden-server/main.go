package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/BrandonDHaskell/gatewarden/internal/clock"
	"github.com/BrandonDHaskell/gatewarden/internal/config"
	"github.com/BrandonDHaskell/gatewarden/internal/db"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/service"
	"github.com/BrandonDHaskell/gatewarden/internal/gatewarden/types"
	"github.com/BrandonDHaskell/gatewarden/internal/grpcapi"
	"github.com/BrandonDHaskell/gatewarden/internal/httpapi"
	"github.com/BrandonDHaskell/gatewarden/internal/logging"
	"github.com/BrandonDHaskell/gatewarden/internal/monitoring"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gatewarden-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var envFile string

	flagSet := pflag.NewFlagSet("gatewarden-server", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", "", "path to a .env file loaded before reading GATE_* variables")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Env, cfg.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.RosterPath != "" {
		sum, err := db.ImportRosterFile(ctx, st.records, cfg.RosterPath)
		if err != nil {
			return fmt.Errorf("import roster: %w", err)
		}
		logger.Info("roster imported", "path", cfg.RosterPath, "vehicles", sum.Vehicles, "identities", sum.Identities)
	}

	metrics := monitoring.NewService()
	settings := service.NewSettingsService(st.settings, types.GateSettings{
		QRTimeoutSeconds:      cfg.QRTimeoutSeconds,
		AutoCloseDelaySeconds: cfg.AutoCloseDelaySeconds,
	}, logger)
	audit := service.NewAuditLog(st.events, logger, metrics)

	deps := service.Deps{
		Registry: service.NewPendingRegistry(),
		Barrier:  service.NewBarrier(logger),
		Audit:    audit,
		Records:  st.records,
		Settings: settings,
		Clock:    clock.Real(),
		Logger:   logger,
		Metrics:  metrics,
	}
	engine := service.NewCorrelationEngine(deps)
	guard := service.NewGuardService(deps)

	httpSrv := httpapi.NewServer(httpapi.Dependencies{
		Logger:      logger,
		Addr:        cfg.HTTPAddr,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics,
		Engine:      engine,
		Guard:       guard,
		Admin:       service.NewAdminService(st.records, settings, logger),
		Projector:   service.NewStatusProjector(audit, st.records),
	})
	grpcSrv := grpcapi.NewServer(grpcapi.Dependencies{
		Logger: logger,
		Engine: engine,
		Guard:  guard,
	})

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http listening", "addr", cfg.HTTPAddr, "env", cfg.Env, "store", cfg.Store)
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return grpcSrv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcSrv.Shutdown(shutdownCtx)
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
