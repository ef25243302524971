package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"event-planner/internal/api"
)

// serve: run the HTTP API, and the WhatsApp RSVP listener when enabled.
func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.HTTPAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := appCtx.log
			if appCtx.whatsapp != nil {
				appCtx.whatsapp.SetMessageHandler(appCtx.rsvp.HandleMessage)
				if err := appCtx.connectWhatsApp(ctx); err != nil {
					return err
				}
				log.Info().Msg("Listening for RSVP replies on WhatsApp")
			}

			if err := logChanges(ctx); err != nil {
				return err
			}

			handler := api.NewHandler(api.Deps{
				Events:      appCtx.events,
				Guests:      appCtx.guests,
				Tasks:       appCtx.tasks,
				Budget:      appCtx.budget,
				Invitations: appCtx.rsvp,
				Auth:        appCtx.auth,
			}, api.Options{
				CORSOrigins: cfg.CORSOrigins,
				AuthRate:    cfg.AuthRate,
				AuthBurst:   cfg.AuthBurst,
			}, log)

			server := &http.Server{Addr: addr, Handler: handler}
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("Server starting")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			log.Info().Msg("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Server forced to shutdown")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $HTTP_ADDR)")
	return cmd
}

// logChanges follows the RSVP summary and budget total for the lifetime of
// ctx and logs every new value.
func logChanges(ctx context.Context) error {
	summaries, cancelSummary, err := appCtx.guests.WatchSummary(ctx)
	if err != nil {
		return err
	}
	totals, cancelTotal, err := appCtx.budget.WatchTotal(ctx)
	if err != nil {
		cancelSummary()
		return err
	}

	log := appCtx.log
	go func() {
		defer cancelSummary()
		defer cancelTotal()
		for {
			select {
			case <-ctx.Done():
				return
			case s := <-summaries:
				log.Info().
					Int("attending", s.Attending).
					Int("not_attending", s.NotAttending).
					Int("no_response", s.NoResponse).
					Msg("RSVP summary")
			case total := <-totals:
				log.Info().Float64("total", total).Msg("Budget total")
			}
		}
	}()
	return nil
}
