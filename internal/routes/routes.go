package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexidev/users-backend/internal/handlers"
	"github.com/lexidev/users-backend/internal/httperr"
	"github.com/lexidev/users-backend/internal/middleware"
	"github.com/lexidev/users-backend/internal/services"
)

func SetupRoutes(r *chi.Mux, h *handlers.UserHandler, tokens *services.TokenService) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperr.Write(w, httperr.NotFound("Could not find the specified route"))
	})

	// Credential endpoints get their own tighter per-IP limiter.
	authLimiter := middleware.NewAuthRateLimiter(1, 5)

	r.Route("/api/users", func(r chi.Router) {
		r.With(authLimiter.Middleware).Post("/signup", h.Signup)
		r.With(authLimiter.Middleware).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Get("/", h.GetUser)
			r.Patch("/update", h.UpdateUser)
			r.Patch("/change-password", h.ChangePassword)
			r.Patch("/profile-picture", h.UploadProfilePicture)
		})
	})
}
