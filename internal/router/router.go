// Package router sets up all HTTP routes and middleware chains for the
// imovia server. It organizes routes into public API, authenticated API,
// and static file groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"imovia/internal/handlers"
	"imovia/internal/middleware"
	"imovia/internal/session"
	"imovia/internal/storage"
)

// uploadCacheSeconds is the Cache-Control max-age for stored photos.
// Filenames are unique per upload, so a day of caching is safe.
const uploadCacheSeconds = 86400

// Deps carries everything the router wires together.
type Deps struct {
	Sessions   *session.Store
	Photos     *handlers.Photos
	Properties *handlers.Properties
	Contact    *handlers.Contact
	Auth       *handlers.Auth

	// UploadRoot is served read-only under /uploads.
	UploadRoot string

	// PublicDir holds the built frontend bundle; empty disables it.
	PublicDir string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(deps.Sessions))

	// Health check.
	r.Get("/health", healthHandler)

	// Uploads are write-heavy for bots; keep a modest per-IP ceiling.
	uploadLimiter := middleware.NewRateLimiter(30, time.Minute)
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		// Catalog pass-through, photo-enriched.
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", deps.Properties.List)
			r.Get("/featured", deps.Properties.Featured)
			r.Get("/{id}", deps.Properties.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", deps.Properties.Create)
				r.Put("/{id}", deps.Properties.Update)
				r.Delete("/{id}", deps.Properties.Delete)
			})
		})

		// Per-listing photo storage. Uploads are open by contract with the
		// frontend; the rate limiter is the only gate besides capacity.
		r.Route("/listings/{id}/photos", func(r chi.Router) {
			r.Get("/", deps.Photos.List)
			r.With(uploadLimiter.Middleware).Post("/", deps.Photos.Upload)
		})

		// Contact form.
		r.Post("/contact", deps.Contact.Submit)

		// Admin authentication.
		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", deps.Auth.Login)
			r.Post("/logout", deps.Auth.Logout)
			r.Get("/me", deps.Auth.Me)
		})

		// Admin-only resources.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Get("/messages", deps.Contact.AdminList)
		})
	})

	// Stored photos, long-cached, no directory listings.
	r.Handle(storage.PublicPrefix+"/*", http.StripPrefix(storage.PublicPrefix, uploadsHandler(deps.UploadRoot)))

	// Built frontend bundle with client-side routing fallback.
	if deps.PublicDir != "" {
		r.NotFound(spaHandler(deps.PublicDir))
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// uploadsHandler serves files from the upload root. Directory paths get a
// 404 instead of a listing.
func uploadsHandler(root string) http.Handler {
	server := http.FileServer(http.FS(filesOnlyFS{os.DirFS(root)}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(uploadCacheSeconds))
		server.ServeHTTP(w, r)
	})
}

// filesOnlyFS rejects directory opens so the file server cannot render
// listings of stored photos.
type filesOnlyFS struct {
	fs fs.FS
}

func (f filesOnlyFS) Open(name string) (fs.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// spaHandler serves the frontend bundle. Unknown paths fall back to
// index.html so the client-side router handles them; requests with a file
// extension stay 404 to avoid masking missing assets.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		if strings.Contains(filepath.Base(r.URL.Path), ".") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}
}
