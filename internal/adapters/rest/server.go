package rest

import (
	"net/http"
	"time"

	"kos-portal/internal/adapters/session"
	"kos-portal/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewServer собирает роутер веб-клиента и возвращает готовый http.Server.
func NewServer(listenPort string, hub *session.Hub, views *Views, tokenTTL time.Duration, logger port.LoggerPort) *http.Server {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(LoggerMiddleware(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessionMW := NewSessionMiddleware(hub)
	router.Use(sessionMW.Attach)

	authHandlers := NewAuthHandlers(views, tokenTTL)
	dashboardHandlers := NewDashboardHandlers(views)
	detailHandlers := NewDetailHandlers(views)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	router.Get("/login", authHandlers.ShowLogin)
	router.Post("/login", authHandlers.SubmitLogin)
	router.Post("/login/google", authHandlers.GoogleLogin)
	router.Get("/register", authHandlers.ShowRegister)
	router.Post("/register", authHandlers.SubmitRegister)
	router.Post("/logout", authHandlers.Logout)

	router.Route("/dashboard", func(r chi.Router) {
		r.Get("/", dashboardHandlers.Dashboard)
		r.Get("/detail/{kosID}", detailHandlers.Detail)
		r.Post("/detail/{kosID}/booking", detailHandlers.SubmitBooking)
		r.Get("/detail/{kosID}/reviews", detailHandlers.Reviews)
		r.Post("/detail/{kosID}/reviews", detailHandlers.SubmitReview)
	})

	return &http.Server{
		Addr:    ":" + listenPort,
		Handler: router,
	}
}
