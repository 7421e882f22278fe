// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const shutdownTimeout = 15 * time.Second

// Server represents the http server for TalentHub services.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        log.Logger
	signals       chan os.Signal
}

// ServerAddress returns is a convenience method to return the server address.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// NewServer creates an instance of Server.
func NewServer(cfg *Config, app *fiber.App, logger log.Logger) *Server {
	return &Server{
		app:           app,
		serverAddress: cfg.ServerAddress,
		logger:        logger,
		signals:       make(chan os.Signal, 1),
	}
}

// Run listens until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run(_ *libCommons.Launcher) error {
	signal.Notify(s.signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.signals)

	listenErr := make(chan error, 1)

	go func() {
		s.logger.Infof("HTTP server listening on %s", s.ServerAddress())
		listenErr <- s.app.Listen(s.ServerAddress())
	}()

	select {
	case err := <-listenErr:
		return errors.Wrap(err, "failed to run the server")
	case sig := <-s.signals:
		s.logger.Infof("Received %s, shutting down HTTP server", sig)
	}

	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return errors.Wrap(err, "failed to shut down the server")
	}

	return <-listenErr
}
