// Package server runs the isolate HTTP API with signal-driven graceful
// shutdown and configuration reload.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-isolate/pkg/config"
	"github.com/dd0wney/cluso-isolate/pkg/logging"
)

// ConfigReloadFunc is a function that reloads configuration
type ConfigReloadFunc func() error

// GracefulServer wraps an HTTP server with graceful shutdown capabilities
type GracefulServer struct {
	server          *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration

	listener net.Listener
	startErr error
	readyCh  chan struct{}

	shutdownCh   chan struct{}
	doneCh       chan struct{}
	shutdownOnce sync.Once
	shutdownErr  error

	configReloadFn ConfigReloadFunc
	configMu       sync.RWMutex
}

// NewGracefulServer creates a server for handler using the timeouts in cfg
func NewGracefulServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *GracefulServer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GracefulServer{
		server: &http.Server{
			Addr:           net.JoinHostPort("", strconv.Itoa(cfg.Port)),
			Handler:        handler,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			IdleTimeout:    cfg.IdleTimeout,
			MaxHeaderBytes: 1 << 20,
		},
		logger:          logger.With(logging.Component("server")),
		shutdownTimeout: cfg.ShutdownTimeout,
		readyCh:         make(chan struct{}),
		shutdownCh:      make(chan struct{}),
		doneCh:          make(chan struct{}),
	}
}

// Start listens, serves and blocks until the server has shut down. SIGINT
// and SIGTERM trigger a graceful shutdown; SIGHUP reloads configuration.
func (gs *GracefulServer) Start() error {
	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		gs.startErr = err
		close(gs.readyCh)
		return err
	}
	gs.listener = ln
	close(gs.readyCh)

	go gs.handleSignals()

	gs.logger.Info("starting HTTP server", logging.String("addr", ln.Addr().String()))
	if err := gs.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-gs.doneCh
	return gs.shutdownErr
}

// Ready is closed once Start has either bound its listener or failed to.
// Check StartErr after it closes.
func (gs *GracefulServer) Ready() <-chan struct{} {
	return gs.readyCh
}

// StartErr returns the listen error once Ready is closed, nil otherwise
func (gs *GracefulServer) StartErr() error {
	select {
	case <-gs.readyCh:
		return gs.startErr
	default:
		return nil
	}
}

// Addr returns the bound address, which differs from the configured one
// when port 0 was requested. It is empty before Ready or after a failed
// Start.
func (gs *GracefulServer) Addr() string {
	select {
	case <-gs.readyCh:
		if gs.listener == nil {
			return ""
		}
		return gs.listener.Addr().String()
	default:
		return ""
	}
}

// Shutdown initiates a graceful shutdown. Only the first call has effect.
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.logger.Info("initiating graceful shutdown", logging.Duration("timeout", timeout))

		if err := gs.server.Shutdown(ctx); err != nil {
			gs.shutdownErr = err
			gs.logger.Error("error during shutdown", logging.Error(err))
		} else {
			gs.logger.Info("server shutdown complete")
		}
		close(gs.doneCh)
	})
	<-gs.doneCh
	return gs.shutdownErr
}

// handleSignals listens for OS signals until shutdown begins
func (gs *GracefulServer) handleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-gs.shutdownCh:
			return
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGINT, syscall.SIGTERM:
				gs.logger.Info("received signal, starting graceful shutdown", logging.String("signal", sig.String()))
				gs.Shutdown(gs.shutdownTimeout)
				return

			case syscall.SIGHUP:
				gs.logger.Info("received SIGHUP, reloading configuration")
				gs.ReloadConfig()
			}
		}
	}
}

// IsShuttingDown returns true if shutdown has been initiated
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownChannel returns a channel that closes when shutdown is initiated
func (gs *GracefulServer) ShutdownChannel() <-chan struct{} {
	return gs.shutdownCh
}

// SetConfigReloadFunc sets the function to call when configuration reload is triggered
func (gs *GracefulServer) SetConfigReloadFunc(fn ConfigReloadFunc) {
	gs.configMu.Lock()
	defer gs.configMu.Unlock()
	gs.configReloadFn = fn
}

// ReloadConfig triggers a configuration reload
func (gs *GracefulServer) ReloadConfig() error {
	gs.configMu.RLock()
	reloadFn := gs.configReloadFn
	gs.configMu.RUnlock()

	if reloadFn == nil {
		gs.logger.Warn("configuration reload requested, but no reload function configured")
		return nil
	}

	if err := reloadFn(); err != nil {
		gs.logger.Error("configuration reload failed", logging.Error(err))
		return err
	}

	gs.logger.Info("configuration reload complete")
	return nil
}
