// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
)

const (
	healthServerReadTimeout     = 5 * time.Second
	healthServerWriteTimeout    = 5 * time.Second
	healthServerIdleTimeout     = 30 * time.Second
	healthServerShutdownTimeout = 5 * time.Second

	readinessCheckTimeout = 2 * time.Second
)

// HealthServer serves /health and /ready for the worker next to the consumers.
type HealthServer struct {
	server             *http.Server
	rabbitMQConnection *libRabbitmq.RabbitMQConnection
	mongoConnection    *mongoDB.MongoConnection
	logger             log.Logger
}

// NewHealthServer creates a HealthServer bound to port. /ready checks both connections.
func NewHealthServer(port string, rabbitMQConnection *libRabbitmq.RabbitMQConnection, mongoConnection *mongoDB.MongoConnection, logger log.Logger) *HealthServer {
	hs := &HealthServer{
		rabbitMQConnection: rabbitMQConnection,
		mongoConnection:    mongoConnection,
		logger:             logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", hs.handleHealth)
	mux.HandleFunc("/ready", hs.handleReady)

	hs.server = &http.Server{
		Addr:         net.JoinHostPort("", port),
		Handler:      mux,
		ReadTimeout:  healthServerReadTimeout,
		WriteTimeout: healthServerWriteTimeout,
		IdleTimeout:  healthServerIdleTimeout,
	}

	return hs
}

// Start begins listening in a background goroutine.
func (hs *HealthServer) Start() {
	pkg.GoNamed(hs.logger, "health-server", func() {
		hs.logger.Infof("Health server listening on %s", hs.server.Addr)

		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hs.logger.Errorf("Health server error: %v", err)
		}
	})
}

// Shutdown gracefully stops the health server.
func (hs *HealthServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), healthServerShutdownTimeout)
	defer cancel()

	if err := hs.server.Shutdown(ctx); err != nil {
		hs.logger.Errorf("Health server shutdown error: %v", err)
	}
}

func (hs *HealthServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	hs.writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

func (hs *HealthServer) handleReady(w http.ResponseWriter, _ *http.Request) {
	deps := map[string]*dependencyStatus{
		"rabbitmq": hs.checkRabbitMQ(),
		"mongodb":  hs.checkMongoDB(),
	}

	code, status := http.StatusOK, "ready"

	for _, dep := range deps {
		if dep.Status != "ready" {
			code, status = http.StatusServiceUnavailable, "not_ready"
		}
	}

	hs.writeJSON(w, code, map[string]any{"status": status, "dependencies": deps})
}

func (hs *HealthServer) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		hs.logger.Errorf("Failed to encode health response: %v", err)
	}
}

type dependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (hs *HealthServer) checkRabbitMQ() *dependencyStatus {
	conn := hs.rabbitMQConnection
	if conn == nil {
		return &dependencyStatus{Status: "not_ready", Message: "connection not configured"}
	}

	if !conn.Connected || conn.Connection == nil || conn.Connection.IsClosed() {
		return &dependencyStatus{Status: "not_ready", Message: "connection is closed"}
	}

	if !conn.HealthCheck() {
		return &dependencyStatus{Status: "not_ready", Message: "health check failed"}
	}

	return &dependencyStatus{Status: "ready"}
}

func (hs *HealthServer) checkMongoDB() *dependencyStatus {
	if hs.mongoConnection == nil {
		return &dependencyStatus{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	db, err := hs.mongoConnection.GetDB(ctx)
	if err != nil {
		return &dependencyStatus{Status: "not_ready", Message: "failed to get connection"}
	}

	if err := db.Ping(ctx, nil); err != nil {
		return &dependencyStatus{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyStatus{Status: "ready"}
}
