package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	appmiddleware "fleet-api/internal/api/middleware"
)

// setupRouter configures the HTTP routes and middleware stack.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "same-origin",
		ContentSecurityPolicy: "default-src 'none'",
	})

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(appmiddleware.TraceMiddleware)
	r.Use(secureMiddleware.Handler)

	authMiddleware := appmiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Credential guessing gets throttled per client IP.
		r.With(httprate.LimitByIP(10, time.Minute)).
			Post("/auth/login", app.authHandler.Login)

		// Registration is the only other public endpoint.
		r.Post("/users", app.userHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", app.authHandler.Me)

			r.Get("/users", app.userHandler.List)
			r.Get("/users/{id}", app.userHandler.Get)
			r.Put("/users/{id}", app.userHandler.Update)
			r.Delete("/users/{id}", app.userHandler.Delete)
			r.Post("/users/update-photo", app.userHandler.UpdatePhoto)

			r.Get("/histories", app.historicHandler.List)
			r.Get("/histories/get-car-in-use", app.historicHandler.GetCarInUse)
			r.Post("/histories/check-out", app.historicHandler.CheckIn)
			r.Get("/histories/{id}", app.historicHandler.Get)
			r.Post("/histories", app.historicHandler.Create)
			r.Put("/histories/{id}", app.historicHandler.Update)
			r.Delete("/histories/{id}", app.historicHandler.Delete)
		})
	})

	return r
}
