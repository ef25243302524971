// Package api exposes the planner services over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"event-planner/internal/auth"
	"event-planner/internal/notify"
	"event-planner/internal/service"
)

// Authenticator is an identity provider that can also check bearer tokens.
type Authenticator interface {
	auth.Provider
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// Inviter sends invitations to guests.
type Inviter interface {
	SendInvitations(ctx context.Context, guestIDs []int64, message string) (notify.Report, error)
}

// Deps holds everything the handlers call into.
type Deps struct {
	Events      *service.EventService
	Guests      *service.GuestService
	Tasks       *service.TaskService
	Budget      *service.BudgetService
	Invitations Inviter
	Auth        Authenticator
}

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins []string
	// AuthRate and AuthBurst limit sign up and sign in attempts per client.
	AuthRate  float64
	AuthBurst int
}

// NewHandler builds the router and wraps it with CORS.
func NewHandler(d Deps, opts Options, log zerolog.Logger) http.Handler {
	router := NewRouter(d, opts, log)
	return cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)
}

// NewRouter configures the application routes.
func NewRouter(d Deps, opts Options, log zerolog.Logger) *mux.Router {
	log = log.With().Str("component", "api").Logger()
	h := &handlers{deps: d, log: log}

	r := mux.NewRouter()
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	requireAuth := authMiddleware(d.Auth)

	// Identity routes
	identity := api.PathPrefix("/auth").Subrouter()
	identity.Use(rateLimitMiddleware(newClientLimiter(opts.AuthRate, opts.AuthBurst)))
	identity.HandleFunc("/signup", h.SignUp).Methods("POST")
	identity.HandleFunc("/signin", h.SignIn).Methods("POST")
	identity.Handle("/signout", requireAuth(http.HandlerFunc(h.SignOut))).Methods("POST")

	// Everything else needs a session
	private := api.NewRoute().Subrouter()
	private.Use(requireAuth)

	// Event routes
	private.HandleFunc("/events", h.ListEvents).Methods("GET")
	private.HandleFunc("/events", h.CreateEvent).Methods("POST")
	private.HandleFunc("/events/{id:[0-9]+}", h.GetEvent).Methods("GET")
	private.HandleFunc("/events/{id:[0-9]+}", h.UpdateEvent).Methods("PUT")
	private.HandleFunc("/events/{id:[0-9]+}", h.DeleteEvent).Methods("DELETE")

	// Guest routes
	private.HandleFunc("/guests", h.ListGuests).Methods("GET")
	private.HandleFunc("/guests", h.CreateGuest).Methods("POST")
	private.HandleFunc("/guests/import", h.ImportContact).Methods("POST")
	private.HandleFunc("/guests/summary", h.RsvpSummary).Methods("GET")
	private.HandleFunc("/guests/invitations", h.SendInvitations).Methods("POST")
	private.HandleFunc("/guests/{id:[0-9]+}", h.GetGuest).Methods("GET")
	private.HandleFunc("/guests/{id:[0-9]+}", h.RemoveGuest).Methods("DELETE")
	private.HandleFunc("/guests/{id:[0-9]+}/rsvp", h.SetRsvpStatus).Methods("PUT")
	private.HandleFunc("/guests/{id:[0-9]+}/invited", h.SetInvited).Methods("PUT")

	// Task routes
	private.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	private.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	private.HandleFunc("/tasks/{id:[0-9]+}", h.GetTask).Methods("GET")
	private.HandleFunc("/tasks/{id:[0-9]+}", h.DeleteTask).Methods("DELETE")
	private.HandleFunc("/tasks/{id:[0-9]+}/completion", h.ToggleCompletion).Methods("PUT")
	private.HandleFunc("/tasks/{id:[0-9]+}/title", h.RenameTask).Methods("PUT")

	// Budget routes
	private.HandleFunc("/budget", h.ListBudgetLines).Methods("GET")
	private.HandleFunc("/budget", h.CreateBudgetLine).Methods("POST")
	private.HandleFunc("/budget/total", h.TotalBudget).Methods("GET")
	private.HandleFunc("/budget/{id:[0-9]+}", h.UpdateBudgetLine).Methods("PUT")
	private.HandleFunc("/budget/{id:[0-9]+}", h.DeleteBudgetLine).Methods("DELETE")

	return r
}

type handlers struct {
	deps Deps
	log  zerolog.Logger
}
