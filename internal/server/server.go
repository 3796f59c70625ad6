// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: every dependency in the app — database,
// upload store, token service, credential verifier, services, handlers — is
// constructed and wired here, then injected downward. Nothing reaches for a
// package-level global; a test can build the same graph around an in-memory
// database and a temp upload directory.
//
// DEPENDENCY CHAIN:
//
//	sqlite.DB ──────────────► ShowService ──► ShowHandler
//	upload.Store ───────────┘
//	auth.StaticCredentials ─► AuthService ──► AuthHandler
//	auth.TokenService ──────┘
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mhasan/show-catalog/internal/auth"
	"github.com/mhasan/show-catalog/internal/handler"
	"github.com/mhasan/show-catalog/internal/middleware"
	sqliteRepo "github.com/mhasan/show-catalog/internal/repository/sqlite"
	"github.com/mhasan/show-catalog/internal/service"
	"github.com/mhasan/show-catalog/internal/upload"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port          int
	DBPath        string
	UploadDir     string
	AllowedExts   []string // upload extension allowlist; empty accepts anything
	JWTSecret     string   // required — there is no default
	AdminEmail    string
	AdminPassword string
}

// Server owns the router and the resources that need closing on shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph and registers all routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes wires middleware, handlers, and the static upload file server.
//
// ROUTE STRUCTURE:
//
//	POST   /auth/login    → issue session token
//	POST   /auth/logout   → acknowledge
//	POST   /shows         → create (multipart)
//	GET    /shows         → list
//	GET    /shows/{id}    → get one
//	PUT    /shows/{id}    → update (multipart)
//	DELETE /shows/{id}    → delete
//	GET    /uploads/*     → stored image files
func (s *Server) setupRoutes() error {
	// Middleware order matters: RequestID and RealIP annotate the request,
	// Recoverer turns panics into 500s, then our logger records the outcome.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Wide-open CORS: the catalog frontend is served from a different origin
	// in every deployment this has seen.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// === Upload storage + static serving ===
	uploads, err := upload.New(s.config.UploadDir, s.config.AllowedExts, s.logger)
	if err != nil {
		return fmt.Errorf("creating upload store: %w", err)
	}

	// GET /uploads/<name> serves the raw stored bytes. StripPrefix removes
	// "/uploads/" before the file server looks up the name on disk.
	fileServer := http.FileServer(http.Dir(uploads.Dir()))
	s.router.Handle("/uploads/*", http.StripPrefix(upload.URLPrefix, fileServer))

	// === Session endpoints ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// userID 1 is the identity asserted for the single configured account.
	creds, err := auth.NewStaticCredentials(s.config.AdminEmail, s.config.AdminPassword, 1)
	if err != nil {
		return fmt.Errorf("creating credential verifier: %w", err)
	}

	authService := service.NewAuthService(creds, tokens, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
	})

	// === Show endpoints ===
	showService := service.NewShowService(s.db, uploads, s.logger)
	showHandler := handler.NewShowHandler(showService, s.logger)

	s.router.Route("/shows", func(r chi.Router) {
		r.Post("/", showHandler.HandleCreate)
		r.Get("/", showHandler.HandleList)
		r.Get("/{id}", showHandler.HandleGetByID)
		r.Put("/{id}", showHandler.HandleUpdate)
		r.Delete("/{id}", showHandler.HandleDelete)
	})

	return nil
}

// Handler exposes the configured router, mainly so tests can drive the full
// middleware + routing stack without binding a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without going through Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds
// to drain, and finally close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("uploads", s.config.UploadDir),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
