package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"event-planner/internal/auth"
	"event-planner/internal/config"
	"event-planner/internal/contacts"
	"event-planner/internal/handler"
	"event-planner/internal/notify"
	"event-planner/internal/service"
	"event-planner/internal/storage"
	"event-planner/internal/whatsapp"
)

var (
	dataDir  string
	logLevel string
	cfg      *config.Config
	appCtx   *app
)

// app is the dependency graph shared by all subcommands.
type app struct {
	log      zerolog.Logger
	store    *storage.Storage
	events   *service.EventService
	guests   *service.GuestService
	tasks    *service.TaskService
	budget   *service.BudgetService
	auth     *auth.Local
	whatsapp *whatsapp.Service
	vcard    *contacts.VCardBook
	gateway  notify.Gateway
	rsvp     *handler.RSVPHandler
}

func Execute() error {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "event-planner",
		Short:         "Plan events, guests, tasks and budget",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.LoadConfig()
			if dataDir != "" {
				cfg.DataDir = dataDir
				cfg.DBPath = filepath.Join(dataDir, "planner.db")
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.close()
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default $PLANNER_DATA_DIR or ./data)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		eventCmd(),
		guestCmd(),
		taskCmd(),
		budgetCmd(),
		contactsCmd(),
		authCmd(),
		serveCmd(),
		whatsappCmd(),
	)

	return root
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log := newLogger(cfg.LogLevel)

	if err := cfg.EnsureJWTSecret(); err != nil {
		return nil, err
	}

	store, err := storage.NewStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &app{log: log, store: store}

	if cfg.WhatsAppEnabled {
		a.whatsapp, err = whatsapp.NewService(ctx, &whatsapp.Config{
			DataDir:            cfg.DataDir,
			DefaultCountryCode: cfg.DefaultCountryCode,
		}, log)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to initialize WhatsApp service: %w", err)
		}
		a.gateway = a.whatsapp
	} else {
		a.gateway = notify.NewLogGateway(log)
	}

	// A vCard file wins over the WhatsApp contact list
	var book contacts.AddressBook
	switch {
	case cfg.VCardPath != "":
		a.vcard = contacts.NewVCardBook(cfg.VCardPath)
		book = a.vcard
	case a.whatsapp != nil:
		book = a.whatsapp
	}
	var resolver service.ContactResolver
	if book != nil {
		resolver = contacts.NewResolver(book, log)
	}

	a.events = service.NewEventService(store, log)
	a.guests = service.NewGuestService(store, resolver, log)
	a.tasks = service.NewTaskService(store, log)
	a.budget = service.NewBudgetService(store, log)
	a.auth = auth.NewLocal(store, cfg.JWTSecret, cfg.SessionTTL, log)

	broadcaster := notify.NewBroadcaster(a.gateway, cfg.SendRate, cfg.SendBurst, log)
	a.rsvp = handler.NewRSVPHandler(a.guests, broadcaster, a.gateway, &handler.Config{
		DefaultCountryCode: cfg.DefaultCountryCode,
		InviteMessage:      cfg.InviteMessage,
	}, log)
	return a, nil
}

// connectWhatsApp links the client for commands that send or receive.
func (a *app) connectWhatsApp(ctx context.Context) error {
	if a.whatsapp == nil {
		return nil
	}
	a.log.Info().Msg("Connecting to WhatsApp...")
	return a.whatsapp.Connect(ctx)
}

func (a *app) close() error {
	if a == nil {
		return nil
	}
	if a.whatsapp != nil {
		a.whatsapp.Disconnect()
	}
	return a.store.Close()
}
