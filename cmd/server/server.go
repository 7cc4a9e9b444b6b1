package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/config"
	v1 "github.com/KirkDiggler/rpg-tabletop/internal/handlers/api/v1"
	"github.com/KirkDiggler/rpg-tabletop/internal/metrics"
	"github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/dice"
	gridorchestrator "github.com/KirkDiggler/rpg-tabletop/internal/orchestrators/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-tabletop/internal/repositories/dice_session"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/grids"
)

func newServerCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the shared grid and dice session API backed by Redis.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port, overrides server.port")

	return cmd
}

func runServer(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	clk := clock.New()
	m := metrics.New(nil)

	gridRepo, err := grids.NewRedis(&grids.Config{Client: redisClient})
	if err != nil {
		return err
	}
	sessionRepo, err := dicesession.NewRedisRepository(&dicesession.Config{
		Client: redisClient,
		Clock:  clk,
		TTL:    cfg.Dice.SessionTTL,
	})
	if err != nil {
		return err
	}

	gridService, err := gridorchestrator.NewOrchestrator(&gridorchestrator.Config{
		GridRepo:    gridRepo,
		IDGenerator: idgen.NewUUID(idgen.PrefixGrid),
		Clock:       clk,
		Logger:      logger.Named("grid"),
		Metrics:     m,
	})
	if err != nil {
		return fmt.Errorf("failed to create grid service: %w", err)
	}
	diceService, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: sessionRepo,
		IDGenerator:     idgen.NewUUID(idgen.PrefixRoll),
		Clock:           clk,
		Logger:          logger.Named("dice"),
		Metrics:         m,
	})
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	handler, err := v1.NewHandler(&v1.Config{
		GridService:    gridService,
		DiceService:    diceService,
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.Server.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := v1.NewRouter(v1.RouterConfig{
		Handler:       handler,
		Logger:        logger.Named("http"),
		CORSOrigins:   cfg.Server.CORSOrigins,
		EnableMetrics: true,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down http server")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown timeout exceeded, forcing stop", zap.Error(err))
		return srv.Close()
	}
	logger.Info("server stopped gracefully")
	return nil
}
