package main

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crowdmap/crowd-heatmap/internal/api"
	"github.com/crowdmap/crowd-heatmap/internal/database"
	"github.com/crowdmap/crowd-heatmap/internal/middleware"
	"github.com/crowdmap/crowd-heatmap/internal/repository"
	"github.com/crowdmap/crowd-heatmap/internal/service"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := database.Init(cfg.DB()); err != nil {
			return eris.Wrap(err, "init database")
		}
		defer database.Close()

		if cfg.Log.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		overpass := newOverpassClient(cfg)
		opts := cfg.IntensityOptions()
		svc := api.Services{
			Business:  service.NewBusinessService(repository.NewBusinessRepository(database.GetDB())),
			Intensity: service.NewIntensityService(overpass, opts),
			Places:    service.NewPlaceService(newNominatimClient(cfg), overpass, cfg.Nominatim.Limit, opts.RadiusMeters),
			Chat:      service.NewChatService(),
		}

		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
		defer limiter.Stop()

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		srv := &http.Server{
			Addr:         addr,
			Handler:      api.SetupRouter(svc, limiter),
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return eris.Wrapf(err, "listen on %s", addr)
		}

		zap.L().Info("starting server", zap.String("addr", ln.Addr().String()))
		return runServer(ctx, srv, ln, 10*time.Second)
	},
}

// runServer serves on ln until ctx is done and returns only after Shutdown
// has drained in-flight requests or timed out.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	shutdownDone := make(chan struct{})

	// Graceful shutdown
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("server shutdown", zap.Error(err))
		}
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	<-shutdownDone
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
