package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskapp/apiserver/config"
	"github.com/taskapp/apiserver/internal/auth"
	"github.com/taskapp/apiserver/internal/db"
	"github.com/taskapp/apiserver/internal/handlers"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	fs         *firestore.Client
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	fsClient, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(fsClient)
	taskRepo := store.NewTaskRepository(fsClient)
	groupRepo := store.NewGroupRepository(fsClient)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Hello World!"))
	})
	router.Route("/api/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, issuer)
	})
	router.Route("/api/tasks", func(r chi.Router) {
		handlers.TaskRouter(r, taskService, authService)
	})
	router.Route("/api/groups", func(r chi.Router) {
		handlers.GroupRouter(r, groupService, authService)
	})
	router.Route("/api/users", func(r chi.Router) {
		handlers.UserRouter(r, authService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		fs:         fsClient,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.fs != nil {
		_ = s.fs.Close()
	}
	return s.httpServer.Close()
}
