package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satheeshds/buildledger/handlers"
	"github.com/satheeshds/buildledger/internal/auth"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/ledger"
	"github.com/satheeshds/buildledger/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	_ "github.com/satheeshds/buildledger/docs"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on PORT.

With DATABASE_URL set the server connects to Postgres and applies pending migrations
first; otherwise it runs on an in-memory store. Without JWT_SECRET every request runs
as an admin of DEV_TENANT_ID.`,
	Example: `  # Serve on the configured port
  buildledger serve

  # Override the port
  buildledger serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "", "Port to listen on (default: PORT or 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	port := cfg.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer be.close()

	files, err := storage.New(cfg.StorageDir, cfg.StorageQuotaBytes, be.quotas)
	if err != nil {
		return err
	}

	var authn *auth.Authenticator
	if cfg.AuthEnabled() {
		authn = auth.New(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		log.Warn().Str("tenant_id", cfg.DevTenantID).Msg("JWT_SECRET not set, authentication disabled")
	}

	h := &handlers.Handler{
		Ledger:         ledger.New(be.store, files),
		Files:          files,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Ping:           be.ping,
	}
	srv := &http.Server{
		Addr: ":" + port,
		Handler: handlers.NewRouter(h, handlers.RouterConfig{
			Auth:           authn,
			DevSession:     devSession(),
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("address", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func devSession() auth.Session {
	return auth.Session{
		UserID:   "dev-user",
		TenantID: cfg.DevTenantID,
		Email:    "dev@localhost",
		Role:     "admin",
	}
}
