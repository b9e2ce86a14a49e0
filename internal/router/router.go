// Package router sets up all HTTP routes and middleware chains for the
// KhoborPress API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"khoborpress/internal/handlers"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
	"khoborpress/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check.
	r.Get("/health", healthHandler)

	// Account routes.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", auth.Me)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})
	})

	// Admin routes: panel roles only, behind completed 2FA.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleEditor))

		r.Get("/dashboard", admin.Dashboard)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", admin.ListPosts)
			r.Post("/", admin.CreatePost)
			r.Get("/{id}", admin.GetPost)
			r.Put("/{id}", admin.UpdatePost)
			r.Delete("/{id}", admin.DeletePost)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.ListCategories)
			r.Post("/", admin.CreateCategory)
			r.Put("/{id}", admin.UpdateCategory)
			r.Delete("/{id}", admin.DeleteCategory)
			r.Post("/{id}/subcategories", admin.CreateSubcategory)
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Put("/{id}", admin.UpdateSubcategory)
			r.Delete("/{id}", admin.DeleteSubcategory)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", admin.ListTags)
			r.Post("/", admin.CreateTag)
			r.Put("/{id}", admin.UpdateTag)
			r.Delete("/{id}", admin.DeleteTag)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", admin.ListAllComments)
			r.Get("/pending", admin.ListPendingComments)
			r.Post("/{id}/approve", admin.ApproveComment)
			r.Post("/{id}/unapprove", admin.UnapproveComment)
			r.Delete("/{id}", admin.DeleteComment)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", admin.ListVideos)
			r.Post("/", admin.CreateVideo)
			r.Put("/{id}", admin.UpdateVideo)
			r.Delete("/{id}", admin.DeleteVideo)
		})

		r.Route("/opinions", func(r chi.Router) {
			r.Get("/", admin.ListOpinions)
			r.Post("/", admin.CreateOpinion)
			r.Put("/{id}", admin.UpdateOpinion)
			r.Delete("/{id}", admin.DeleteOpinion)
		})

		r.Route("/ads", func(r chi.Router) {
			r.Get("/", admin.ListAds)
			r.Post("/", admin.CreateAd)
			r.Put("/{id}", admin.UpdateAd)
			r.Delete("/{id}", admin.DeleteAd)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", admin.ListMedia)
			r.Post("/", admin.UploadMedia)
			r.Delete("/{id}", admin.DeleteMedia)
		})

		r.Get("/newsletter", admin.ListSubscribers)

		// Site settings and user management are admin only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))

			r.Get("/settings", admin.GetSettings)
			r.Put("/settings", admin.UpdateSettings)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", admin.ListUsers)
				r.Post("/", admin.CreateUser)
				r.Put("/{id}/role", admin.SetUserRole)
				r.Post("/{id}/suspend", admin.SuspendUser)
				r.Post("/{id}/unsuspend", admin.UnsuspendUser)
				r.Post("/{id}/reset-2fa", admin.ResetUser2FA)
				r.Delete("/{id}", admin.DeleteUser)
			})
		})
	})

	// Public API.
	r.Get("/", public.Homepage)
	r.Get("/navigation", public.Navigation)
	r.Get("/settings", public.SiteSettings)
	r.Get("/posts/{slug}", public.GetPost)
	r.Get("/posts/{slug}/comments", public.ListComments)
	r.Get("/categories/{slug}", public.Category)
	r.Get("/subcategories/{slug}", public.Subcategory)
	r.Get("/tags/{slug}", public.Tag)
	r.Get("/videos", public.Videos)
	r.Get("/opinions", public.Opinions)
	r.Get("/ads/{placement}", public.Ads)
	r.Post("/newsletter/subscribe", public.Subscribe)
	r.Post("/newsletter/unsubscribe", public.Unsubscribe)

	// Comment creation is rate limited per client IP.
	commentLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Group(func(r chi.Router) {
		r.Use(commentLimiter.Middleware)
		r.Post("/posts/{slug}/comments", public.CreateComment)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
