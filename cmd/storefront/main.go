package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	stylistapp "github.com/mimartz/storefront/internal/stylist/app"
	"github.com/mimartz/storefront/internal/stylist/infra/gemini"
	"github.com/mimartz/storefront/pkg/config"
	"github.com/mimartz/storefront/pkg/logger"
	"github.com/mimartz/storefront/pkg/shutdown"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx := context.Background()

	products, err := loadCatalog(cfg)
	if err != nil {
		log.Error("catalog load failed", slog.Any("err", err), slog.String("path", cfg.CatalogPath))
		os.Exit(1)
	}
	log.Info("catalog loaded", slog.Int("products", len(products)))

	var model stylistapp.Model
	if cfg.GeminiAPIKey != "" {
		m, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("stylist disabled", slog.Any("err", err))
		} else {
			model = m
		}
	} else {
		log.Warn("stylist disabled", slog.String("reason", "GEMINI_API_KEY not set"))
	}

	sf, err := newStorefront(cfg, log, products, model)
	if err != nil {
		log.Error("wiring failed", slog.Any("err", err))
		os.Exit(1)
	}

	sweeper, err := sf.newSweeper(log, cfg.SweepSchedule, cfg.SessionTTL)
	if err != nil {
		log.Error("sweeper failed", slog.Any("err", err))
		os.Exit(1)
	}

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              httpAddr,
		Handler:           sf.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second + cfg.CheckoutDelay,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	for _, svc := range []string{"", "storefront.catalog", "storefront.cart", "storefront.checkout"} {
		healthSrv.SetServingStatus(svc, healthpb.HealthCheckResponse_SERVING)
	}

	var g errgroup.Group
	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})
	sweeper.Start()
	sf.ready.Store(true)

	go func() {
		if err := g.Wait(); err != nil {
			log.Error("server error", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	wait := shutdown.OnSignal(log, cfg.ShutdownTimeout, map[string]shutdown.Operation{
		"http": func(ctx context.Context) error {
			sf.ready.Store(false)
			return server.Shutdown(ctx)
		},
		"grpc": func(ctx context.Context) error {
			healthSrv.Shutdown()
			stopped := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-ctx.Done():
				log.Warn("graceful stop timeout, forcing stop")
				grpcServer.Stop()
				return ctx.Err()
			case <-stopped:
				return nil
			}
		},
		"sweeper": func(ctx context.Context) error {
			select {
			case <-sweeper.Stop().Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	code := <-wait
	log.Info("bye", slog.Int("exit_code", code))
	os.Exit(code)
}
