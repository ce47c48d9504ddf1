package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"github.com/mediavault/mediavault/internal/config"
	"github.com/mediavault/mediavault/internal/database"
	"github.com/mediavault/mediavault/internal/filestorage"
	"github.com/mediavault/mediavault/internal/usecase"
)

// Service is what the HTTP layer needs from the application core.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close(context.Context) error

	UploadAssets(context.Context, []usecase.File) ([]usecase.Asset, error)
	ListAssets(context.Context) ([]usecase.Asset, error)
	DeleteAsset(context.Context, string) error
}

type Server struct {
	baseURL string

	server    Service
	validator *validator.Validate
	logger    *slog.Logger
}

// App owns the HTTP server and the process-scoped dependencies
// behind it: open on start, closed on shutdown, never ambient.
type App struct {
	httpServer *http.Server
	service    Service
}

func NewApp() (*App, error) {
	repo := database.New()

	storage, err := newFileStorage()
	if err != nil {
		return nil, err
	}

	sv := usecase.New(repo, storage)

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	if port == 0 {
		port = 4000
	}

	s := &Server{
		baseURL:   os.Getenv(config.ENV_KEY_BASE_URL),
		server:    sv,
		validator: validator.New(),
		logger:    slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}

	return &App{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      s.RegisterRoutes(),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		service: sv,
	}, nil
}

func newFileStorage() (usecase.FileStorageProvider, error) {
	switch driver := os.Getenv(config.ENV_KEY_STORAGE_DRIVER); driver {
	case "minio":
		useSSL, _ := strconv.ParseBool(os.Getenv(config.ENV_KEY_MINIO_USE_SSL))
		return filestorage.NewMinIOStorage(
			os.Getenv(config.ENV_KEY_AWS_BUCKET_NAME),
			os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
			os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
			os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
			useSSL,
		), nil
	case "", "s3":
		return filestorage.NewS3Storage(
			os.Getenv(config.ENV_KEY_AWS_BUCKET_NAME),
			os.Getenv(config.ENV_KEY_AWS_REGION),
		), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) ListenAndServe() error {
	return a.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then closes the database
// connection.
func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.service.Close(ctx)
}
