package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gsinfo-directory/internal/client"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if migrate {
				if err := client.AutoMigrate(a.db); err != nil {
					return err
				}
			}
			if a.cfg.Auth.JWTSecret == "" {
				a.logger.Warn("AUTH_JWT_SECRET is not set, authenticated routes will fail")
			}

			srv := a.newServer()
			serverAddr := a.cfg.HTTP.Host + ":" + a.cfg.HTTP.Port

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting HTTP server", "addr", serverAddr, "provider", a.cfg.Payment.Provider)
				if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
			defer signal.Stop(sigChan)

			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case sig := <-sigChan:
				a.logger.Info("signal received, starting graceful shutdown", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "run database migrations before serving")

	return cmd
}
