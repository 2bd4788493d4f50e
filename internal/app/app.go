// Package app initializes and runs the users service.
// It configures logging, storage and routing,
// and handles graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/patric-chuzhbe/usersapi/internal/config"
	"github.com/patric-chuzhbe/usersapi/internal/logger"
	"github.com/patric-chuzhbe/usersapi/internal/router"
	"github.com/patric-chuzhbe/usersapi/internal/service"
	"github.com/patric-chuzhbe/usersapi/internal/storage/memorystorage"
)

// App holds the configuration, storage and HTTP handler of the service.
type App struct {
	cfg         *config.Config
	db          *memorystorage.MemoryStorage
	httpHandler http.Handler
	stdout      io.Writer
}

type InitOption func(*App)

// WithConfig uses cfg instead of loading the configuration from the environment.
func WithConfig(cfg *config.Config) InitOption {
	return func(a *App) {
		a.cfg = cfg
	}
}

// WithStdout redirects the startup banner.
func WithStdout(w io.Writer) InitOption {
	return func(a *App) {
		a.stdout = w
	}
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - creating the in-memory storage
// - setting up the router and middleware
func New(optionsProto ...InitOption) (*App, error) {
	var err error
	app := &App{
		stdout: os.Stdout,
	}
	for _, protoOption := range optionsProto {
		protoOption(app)
	}

	if app.cfg == nil {
		app.cfg, err = config.New()
		if err != nil {
			return nil, err
		}
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = memorystorage.New()
	if err != nil {
		return nil, err
	}

	app.httpHandler = router.New(
		service.New(app.db),
		router.WithMaxBodyBytes(app.cfg.MaxBodyBytes),
		router.WithCompressionLevel(app.cfg.CompressionLevel),
	)

	return app, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, a
// termination signal arrives or the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", a.cfg.RunAddr)
	if err != nil {
		return fmt.Errorf("in internal/app/app.go/Run(): error while `net.Listen()` calling: %w", err)
	}

	server := &http.Server{
		Handler:           a.httpHandler,
		IdleTimeout:       a.cfg.IdleTimeout,
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Serve(listener)
	}()

	fmt.Fprintf(a.stdout, "Server is running on %s\n", a.cfg.ServerURL())
	logger.Log.Debugw("server running", "RunAddr", a.cfg.RunAddr)

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}
