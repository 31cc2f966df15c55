package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockops/adjustment-e2e/internal/config"
	"github.com/stockops/adjustment-e2e/internal/logger"
)

// ServerDependencies holds all dependencies needed for the report server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Logger       *logger.Logger
	RunsHandler  http.Handler
	RunHandler   http.Handler
}

// RunServe starts the run-history report server and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.Logger)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /runs", deps.RunsHandler)
	mux.Handle("GET /runs/{id}", deps.RunHandler)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("report server listening")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("report server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// A nil shutdown channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, log *logger.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, log, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, log *logger.Logger, shutdownTimeout time.Duration) error {
	if log == nil {
		log = logger.Nop()
	}
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Info().Str("signal", sig.String()).Msg("shutting down report server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info().Msg("report server stopped")
	return nil
}
