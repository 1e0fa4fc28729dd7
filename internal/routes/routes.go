package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodbridge-app/foodbridge-backend/internal/handlers"
)

// SetupRoutes registers the API. Protected routes sit behind the token
// middleware; uploadDir, when non-empty, is served read-only at /uploads/.
func SetupRoutes(r *chi.Mux, authn func(http.Handler) http.Handler, uploadDir string) {
	// Auth routes
	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)
	r.Post("/api/auth/logout", handlers.Logout)
	r.Post("/api/auth/update-profile", handlers.UpdateProfile)
	r.Get("/api/auth/get-image/{email}", handlers.GetProfileImage)

	// Password recovery routes
	r.Post("/api/auth/forgot-password", handlers.ForgotPassword)
	r.Post("/api/auth/reset-password", handlers.ResetPassword)

	// Session-gated routes
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Get("/api/auth/check-auth", handlers.CheckAuth)
		r.Put("/api/auth/update-password", handlers.UpdatePassword)
	})

	// Donation routes
	r.Post("/api/donate/donation", handlers.CreateDonation)
	r.Get("/api/donate/fetch", handlers.FetchDonations)
	r.Get("/api/donate/fetches/{id}", handlers.FetchDonation)

	// Local media (disk fallback only; Cloudinary serves its own URLs)
	if uploadDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}
}
