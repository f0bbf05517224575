// Package server initializes and runs the TimeBank application server.
// It wires configuration, database access, services and the HTTP API,
// and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/timebank/internal/logging"
	"github.com/dmitrijs2005/timebank/internal/server/auth"
	"github.com/dmitrijs2005/timebank/internal/server/config"
	"github.com/dmitrijs2005/timebank/internal/server/httpapi"
	"github.com/dmitrijs2005/timebank/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/timebank/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	taskService  *services.TaskService
	photoService *services.PhotoService
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	if c.AutoMigrate {
		if err := rm.RunMigrations(context.Background(), db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	verifier := auth.NewTokenVerifier([]byte(c.JWTSecret))

	us := services.NewUserService(db, rm, verifier, logger)
	ts := services.NewTaskService(db, rm, services.NewMockEvidenceChecker(), logger)
	ps := services.NewPhotoService(c)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		userService:  us,
		taskService:  ts,
		photoService: ps,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.CORSOrigins,
		app.logger, app.userService, app.taskService, app.photoService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run() {

	ctx, cancelFunc := context.WithCancel(context.Background())

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
