package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/openrelief/relief-be/internal/api/handlers"
	"github.com/openrelief/relief-be/internal/auth"
	"github.com/openrelief/relief-be/internal/config"
	"github.com/openrelief/relief-be/internal/models"
	"github.com/openrelief/relief-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	guard *auth.Guard,
	issuer *auth.TokenIssuer,
	userService services.UserServiceProvider,
	requestService services.RequestServiceProvider,
	volunteerService services.VolunteerServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, issuer)
	requestHandler := handlers.NewRequestHandler(requestService, cfg.UploadDir, cfg.MaxUploadSize, cfg.AllowedPhotoExts)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService, requestService)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Disaster Relief API is running"}`))
	})

	// Public endpoints
	r.Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)
	r.Get("/users", userHandler.GetAll)
	r.Get("/request/", requestHandler.GetAll)
	r.Get("/request/{id}", requestHandler.Get)

	// Uploaded photos
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(guard.Authenticator)

		r.Get("/users/me", userHandler.GetMe)
		r.With(auth.RequireRole(models.RoleUser)).Get("/users/dashboard", userHandler.Dashboard)

		r.Post("/request/request-help", requestHandler.Create)

		r.Route("/volunteer", func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleVolunteer))
			r.Get("/dashboard", volunteerHandler.Dashboard)
			r.Post("/apply/{requestID}", volunteerHandler.Apply)
			r.Get("/view-requests", volunteerHandler.ViewRequests)
		})
	})

	return r
}
