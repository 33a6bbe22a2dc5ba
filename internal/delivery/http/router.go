package http

import (
	"log/slog"
	"net/http"

	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups every controller the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Profile     *controllers.ProfileController
	Conferences *controllers.ConferenceController
	Admin       *controllers.AdminController
	Reports     *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes.
// Bearer routes resolve the caller's profile before the controller runs.
func NewRouter(c Controllers, verifier domain.TokenVerifier, profiles middleware.ProfileLoader, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, profiles, logger)

	// Public
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /cities", c.Profile.ListCities)
	mux.HandleFunc("GET /conferences/upcoming", c.Conferences.Upcoming)
	mux.HandleFunc("GET /health", health)

	// Account
	mux.HandleFunc("GET /users/me", auth(c.Profile.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.Profile.UpdateMe))
	mux.HandleFunc("POST /users/me/password", auth(c.Profile.ChangePassword))

	// Conferences
	mux.HandleFunc("GET /conferences", auth(c.Conferences.List))
	mux.HandleFunc("POST /conferences", auth(c.Conferences.Create))
	mux.HandleFunc("GET /conferences/{id}", auth(c.Conferences.Get))
	mux.HandleFunc("POST /conferences/{id}/requests", auth(c.Conferences.SubmitRequest))
	mux.HandleFunc("GET /conferences/{id}/ratings", auth(c.Conferences.ListRatings))
	mux.HandleFunc("POST /conferences/{id}/ratings", auth(c.Conferences.Rate))
	mux.HandleFunc("POST /conferences/{id}/attendance", auth(c.Conferences.Register))
	mux.HandleFunc("POST /conferences/{id}/attendance/{profileID}/attended", auth(c.Conferences.MarkAttended))

	// Admin
	mux.HandleFunc("GET /admin/dashboard", auth(c.Admin.Dashboard))
	mux.HandleFunc("GET /admin/statistics", auth(c.Admin.Statistics))
	mux.HandleFunc("GET /admin/users", auth(c.Admin.ListUsers))
	mux.HandleFunc("POST /admin/users/{id}/{action}", auth(c.Admin.ManageUser))
	mux.HandleFunc("GET /admin/categories", auth(c.Admin.ListCategories))
	mux.HandleFunc("POST /admin/categories", auth(c.Admin.CreateCategory))
	mux.HandleFunc("PUT /admin/categories/{id}", auth(c.Admin.UpdateCategory))
	mux.HandleFunc("DELETE /admin/categories/{id}", auth(c.Admin.DeleteCategory))
	mux.HandleFunc("GET /admin/requests", auth(c.Admin.ListRequests))
	mux.HandleFunc("POST /admin/requests/{id}/{action}", auth(c.Admin.ResolveRequest))
	mux.HandleFunc("GET /admin/settings", auth(c.Admin.GetSettings))
	mux.HandleFunc("PUT /admin/settings", auth(c.Admin.SaveSettings))
	mux.HandleFunc("GET /admin/reports", auth(c.Reports.Export))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
