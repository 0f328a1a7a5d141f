package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hazemadel/staffdeck-be/internal/api/handlers"
	"github.com/hazemadel/staffdeck-be/internal/auth"
	"github.com/hazemadel/staffdeck-be/internal/services"
	"github.com/hazemadel/staffdeck-be/internal/websocket"
)

// RouterDeps bundles the services the router wires into handlers.
type RouterDeps struct {
	Hub             *websocket.Hub
	ServerService   services.ServerServiceProvider
	EventService    services.EventServiceProvider
	PayrollService  services.PayrollServiceProvider
	CatererService  services.CatererServiceProvider
	UserService     services.UserServiceProvider
	ActivityService services.ActivityServiceProvider
	AllowedOrigin   string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	serverHandler := handlers.NewServerHandler(deps.ServerService)
	eventHandler := handlers.NewEventHandler(deps.EventService)
	payrollHandler := handlers.NewPayrollHandler(deps.PayrollService)
	catererHandler := handlers.NewCatererHandler(deps.CatererService)
	userHandler := handlers.NewUserHandler(deps.UserService)
	activityHandler := handlers.NewActivityHandler(deps.ActivityService)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Live dashboard feed
		r.Get("/ws", wsHandler.Serve)

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(auth.JWTMiddleware()).Get("/me", userHandler.Me)
			r.With(auth.JWTMiddleware()).Put("/password", userHandler.UpdatePassword)
		})

		r.Get("/dashboard", serverHandler.Dashboard)
		r.Get("/activity", activityHandler.GetRecent)

		// Staff roster and per-server ledger
		r.Route("/servers", func(r chi.Router) {
			r.Get("/", serverHandler.GetAll)
			r.Post("/", serverHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", serverHandler.Get)
				r.Put("/", serverHandler.Update)
				r.Delete("/", serverHandler.Delete)
				r.Get("/details", serverHandler.GetDetails)
				r.Put("/toggle-availability", serverHandler.ToggleAvailability)
				r.Post("/payment", serverHandler.RecordPayment)
				r.Get("/summary", payrollHandler.Summary)
				r.Get("/payslip", payrollHandler.Payslip)
				r.Get("/payslip/html", payrollHandler.PayslipHTML)
			})
		})

		// Catered events and per-event pay tracking
		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.GetAll)
			r.Post("/", eventHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.Get)
				r.Put("/", eventHandler.Update)
				r.Delete("/", eventHandler.Delete)
				r.Post("/complete", eventHandler.Complete)
				r.Post("/servers", eventHandler.AssignServer)
				r.Delete("/servers/{serverId}", eventHandler.UnassignServer)
				r.Patch("/server-payment/{serverId}", eventHandler.MarkServerPaid)
			})
		})

		r.Route("/caterers", func(r chi.Router) {
			r.Get("/", catererHandler.GetAll)
			r.Post("/", catererHandler.Create)
			r.Delete("/{id}", catererHandler.Delete)
		})
	})

	return r
}
