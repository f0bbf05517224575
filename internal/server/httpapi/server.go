// Package httpapi exposes the TimeBank REST surface under /api. Handlers
// stay thin: decode, call a service, map the result or error onto the
// response. All routes except the public task listing and ping resolve the
// bearer credential to a user first.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/timebank/internal/logging"
	"github.com/dmitrijs2005/timebank/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// UserProvider resolves credentials and updates profiles.
type UserProvider interface {
	Resolve(ctx context.Context, credential string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd *models.ProfileUpdate) (*models.User, error)
}

// TaskProvider is the task lifecycle engine.
type TaskProvider interface {
	Create(ctx context.Context, creator *models.User, in *models.TaskCreate) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter) ([]*models.Task, error)
	ListMine(ctx context.Context, user *models.User) ([]*models.Task, error)
	Assign(ctx context.Context, taskID string, claimant *models.User) (*models.Task, error)
	Update(ctx context.Context, taskID string, actor *models.User, upd *models.TaskUpdate) (*models.Task, error)
	Validate(ctx context.Context, taskID string, actor *models.User) (*models.ValidationResult, error)
}

// PhotoProvider hands out presigned evidence photo URLs.
type PhotoProvider interface {
	GetPresignedPutUrl(ctx context.Context) (string, string, error)
	GetPresignedGetUrl(ctx context.Context, key string) (string, error)
}

type HTTPServer struct {
	address     string
	corsOrigins []string
	users       UserProvider
	tasks       TaskProvider
	photos      PhotoProvider
	logger      logging.Logger
}

func NewHTTPServer(address string, corsOrigins string, l logging.Logger, us UserProvider, ts TaskProvider, ps PhotoProvider) (*HTTPServer, error) {
	return &HTTPServer{
		address:     address,
		corsOrigins: strings.Split(corsOrigins, ","),
		logger:      l.With("module", "http_server"),
		users:       us,
		tasks:       ts,
		photos:      ps,
	}, nil
}

// Router assembles the /api route tree with CORS and auth middleware.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.handlePing)
		r.Get("/tasks", s.handleListTasks)

		r.Group(func(r chi.Router) {
			r.Use(s.withUser)

			r.Get("/auth/me", s.handleMe)
			r.Put("/users/profile", s.handleUpdateProfile)

			r.Post("/tasks", s.handleCreateTask)
			r.Get("/tasks/my", s.handleMyTasks)
			r.Post("/tasks/{id}/assign", s.handleAssignTask)
			r.Put("/tasks/{id}", s.handleUpdateTask)
			r.Post("/tasks/{id}/validate", s.handleValidateTask)

			r.Post("/uploads/evidence", s.handleEvidenceUploadURL)
			r.Get("/uploads/evidence/*", s.handleEvidenceDownloadURL)
		})
	})

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
