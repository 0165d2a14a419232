package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// Handlers - everything the router mounts.
type Handlers struct {
	Consultants  *ConsultantHandler
	Users        *UserHandler
	Properties   *PropertyHandler
	Contacts     *ContactHandler
	Associations *AssociationHandler
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	// Metrics is optional; nil disables the middleware and /metrics.
	Metrics *Metrics
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter builds the /api/v1 routes.
func NewRouter(cfg ServerConfig, h Handlers, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceHeader},
		ExposedHeaders:   []string{traceHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/consultants", func(r chi.Router) {
			r.Get("/", h.Consultants.List)
			r.Post("/", h.Consultants.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Consultants.Get)
				r.Put("/", h.Consultants.Update)
				r.Delete("/", h.Consultants.Delete)
				r.Get("/users", h.Consultants.Users)
				r.Get("/contacts", h.Consultants.Contacts)

				r.Get("/properties/{family}", h.Associations.ConsultantProperties)
				r.Post("/properties/{family}", h.Associations.AddConsultantProperty)
				r.Delete("/properties/{family}/{otherID}", h.Associations.RemoveConsultantProperty)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.Users.List)
			r.Post("/", h.Users.Create)
			r.Post("/login", h.Users.Login)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Users.Get)
				r.Put("/", h.Users.Update)
				r.Delete("/", h.Users.Delete)
				r.Get("/contacts", h.Users.Contacts)
				r.Get("/properties", h.Users.OwnedProperties)

				r.Get("/properties/{family}", h.Associations.UserProperties)
				r.Post("/properties/{family}", h.Associations.AddUserProperty)
				r.Delete("/properties/{family}/{otherID}", h.Associations.RemoveUserProperty)
			})
		})

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.Properties.List)
			r.Post("/", h.Properties.Create)
			r.Get("/filter", h.Properties.Filter)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Properties.Get)
				r.Put("/", h.Properties.Update)
				r.Delete("/", h.Properties.Delete)
				r.Get("/contacts", h.Properties.Contacts)
				r.Post("/contacts", h.Properties.AddContact)

				r.Get("/{family}", h.Associations.PropertyMembers)
				r.Post("/{family}", h.Associations.AddPropertyMember)
				r.Delete("/{family}/{otherID}", h.Associations.RemovePropertyMember)
			})
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.Contacts.List)
			r.Post("/", h.Contacts.Create)
			r.Get("/{id}", h.Contacts.Get)
			r.Put("/{id}", h.Contacts.Update)
			r.Delete("/{id}", h.Contacts.Delete)
		})
	})

	return r
}

func NewServer(cfg ServerConfig, h Handlers, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, h, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
