// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes and middleware chain.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hostwise/internal/handlers"
	"hostwise/internal/middleware"
	"hostwise/internal/session"
)

// Deps carries everything the router needs to assemble the API.
type Deps struct {
	Public *handlers.PublicHandler
	Intake *handlers.IntakeHandler
	Auth   *handlers.AuthHandler
	Admin  *handlers.AdminHandler

	Sessions      *session.Store
	AllowedOrigin string
}

// New assembles the full route tree.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(d.AllowedOrigin))
	r.Use(middleware.LoadSession(d.Sessions))

	// Public surface.
	r.Get("/health", d.Public.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", d.Public.ListPosts)
		r.Get("/posts/{id}", d.Public.GetPost)
		r.Get("/categories", d.Public.ListCategories)
		r.Get("/partners", d.Public.ListPartners)
		r.Get("/documents/latest", d.Public.LatestDocument)
		r.Get("/cron/keep-alive", d.Public.KeepAlive)

		// The intake form gets its own per-IP limiter on top of the
		// per-email cooldown inside the service.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(10, time.Minute)
			r.Use(limiter.Middleware)
			r.Post("/service-request", d.Intake.Submit)
		})

		// One-time bootstrap; refuses once an account exists, so it can
		// stay reachable without auth.
		r.Post("/admin/setup", d.Auth.Setup)

		// Authentication flow.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)

			// 2FA endpoints need a password-authenticated session but
			// run before the 2FA gate by definition.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/2fa/setup", d.Auth.Setup2FA)
				r.Post("/2fa/verify", d.Auth.Verify2FA)
			})
		})

		// Backoffice, fully gated.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireAdmin)
			r.Use(middleware.CSRF)

			r.Get("/service-request", d.Admin.ListServiceRequests)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/posts", d.Admin.ListPosts)
				r.Post("/posts", d.Admin.CreatePost)
				r.Get("/posts/{id}", d.Admin.GetPost)
				r.Put("/posts/{id}", d.Admin.UpdatePost)
				r.Delete("/posts/{id}", d.Admin.DeletePost)

				r.Get("/categories", d.Admin.ListCategories)
				r.Post("/categories", d.Admin.CreateCategory)
				r.Put("/categories/{id}", d.Admin.UpdateCategory)
				r.Delete("/categories/{id}", d.Admin.DeleteCategory)

				r.Get("/partners", d.Admin.ListPartners)
				r.Post("/partners", d.Admin.CreatePartner)
				r.Put("/partners/{id}", d.Admin.UpdatePartner)
				r.Delete("/partners/{id}", d.Admin.DeletePartner)

				r.Put("/service-requests/{id}/status", d.Admin.UpdateServiceRequestStatus)

				r.Get("/documents", d.Admin.ListDocuments)
				r.Post("/documents", d.Admin.UploadDocument)
				r.Delete("/documents/{id}", d.Admin.DeleteDocument)
			})
		})
	})

	return r
}
