// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dlt-talenthub/talenthub/components/worker/internal/adapters/rabbitmq"
	"github.com/dlt-talenthub/talenthub/components/worker/internal/services"
	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/metrics"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/pongo"
	pkgRabbitmq "github.com/dlt-talenthub/talenthub/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
)

const (
	defaultHealthPort = "4006"
	maxWorkers        = 100
)

// Config is the top level configuration struct for the worker.
type Config struct {
	EnvName  string `env:"ENV_NAME"`
	LogLevel string `env:"LOG_LEVEL"`

	RabbitURI              string `env:"RABBITMQ_URI"`
	RabbitMQHost           string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost       string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP       string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser           string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass           string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQHealthCheckURL string `env:"RABBITMQ_HEALTH_CHECK_URL"`
	RabbitMQNumWorkers     int    `env:"RABBITMQ_NUMBERS_OF_WORKERS"`
	NotificationQueue      string `env:"NOTIFICATION_QUEUE"`

	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`

	MongoURI          string `env:"MONGO_URI"`
	MongoDBHost       string `env:"MONGO_HOST"`
	MongoDBName       string `env:"MONGO_NAME"`
	MongoDBUser       string `env:"MONGO_USER"`
	MongoDBPassword   string `env:"MONGO_PASSWORD"`
	MongoDBPort       string `env:"MONGO_PORT"`
	MongoDBParameters string `env:"MONGO_PARAMETERS"`
	MongoMaxPoolSize  int    `env:"MONGO_MAX_POOL_SIZE"`

	HealthPort string `env:"HEALTH_PORT"`
}

func (cfg *Config) applyDefaults() {
	if cfg.RabbitMQNumWorkers == 0 {
		cfg.RabbitMQNumWorkers = constant.DefaultWorkerCount
	}

	if cfg.MongoMaxPoolSize == 0 {
		cfg.MongoMaxPoolSize = constant.MongoDefaultMaxPoolSize
	}

	if cfg.HealthPort == "" {
		cfg.HealthPort = defaultHealthPort
	}
}

// Validate reports every missing or out-of-range setting at once.
func (cfg *Config) Validate() error {
	var errs []string

	required := []struct {
		value string
		env   string
	}{
		{cfg.RabbitMQHost, "RABBITMQ_HOST"},
		{cfg.RabbitMQPortAMQP, "RABBITMQ_PORT_AMQP"},
		{cfg.RabbitMQUser, "RABBITMQ_DEFAULT_USER"},
		{cfg.RabbitMQPass, "RABBITMQ_DEFAULT_PASS"},
		{cfg.NotificationQueue, "NOTIFICATION_QUEUE"},
		{cfg.MongoDBHost, "MONGO_HOST"},
		{cfg.MongoDBName, "MONGO_NAME"},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, r.env+" is required")
		}
	}

	if cfg.RabbitMQNumWorkers < 1 || cfg.RabbitMQNumWorkers > maxWorkers {
		errs = append(errs, fmt.Sprintf("RABBITMQ_NUMBERS_OF_WORKERS must be between 1 and %d", maxWorkers))
	}

	if cfg.MongoMaxPoolSize < 1 || cfg.MongoMaxPoolSize > constant.MongoMaxPoolSizeUpperBound {
		errs = append(errs, fmt.Sprintf("MONGO_MAX_POOL_SIZE must be between 1 and %d", constant.MongoMaxPoolSizeUpperBound))
	}

	if port, err := strconv.Atoi(cfg.HealthPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, "HEALTH_PORT must be a port number")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// InitWorker loads configuration and wires the notification consumer.
// On failure the resources acquired so far are released before returning.
func InitWorker() (_ *Service, err error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env vars: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := zap.InitializeLoggerWithError()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var cleanups []func()

	defer func() {
		if err != nil {
			for i := len(cleanups) - 1; i >= 0; i-- {
				cleanups[i]()
			}
		}
	}()

	telemetry, err := libOtel.InitializeTelemetryWithError(&libOtel.TelemetryConfig{
		LibraryName:               cfg.OtelLibraryName,
		ServiceName:               cfg.OtelServiceName,
		ServiceVersion:            cfg.OtelServiceVersion,
		DeploymentEnv:             cfg.OtelDeploymentEnv,
		CollectorExporterEndpoint: cfg.OtelColExporterEndpoint,
		EnableTelemetry:           cfg.EnableTelemetry,
		Logger:                    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	cleanups = append(cleanups, func() { telemetry.ShutdownTelemetry() })

	mongoConnection, notificationRepo, err := initNotificationStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	cleanups = append(cleanups, func() {
		if mongoConnection.DB != nil {
			if disconnectErr := mongoConnection.DB.Disconnect(context.Background()); disconnectErr != nil {
				logger.Errorf("Cleanup: failed to disconnect MongoDB: %v", disconnectErr)
			}
		}
	})

	rabbitSource := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, url.QueryEscape(cfg.RabbitMQPass), cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	logger.Infof("RabbitMQ connecting to %s", pkg.RedactConnectionString(rabbitSource))

	rabbitMQConnection := &libRabbitmq.RabbitMQConnection{
		ConnectionStringSource: rabbitSource,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Queue:                  cfg.NotificationQueue,
		Logger:                 logger,
	}

	routes, err := rabbitmq.NewConsumerRoutes(rabbitMQConnection, cfg.RabbitMQNumWorkers, logger)
	if err != nil {
		return nil, err
	}

	monitor := pkgRabbitmq.NewConnectionMonitor(rabbitMQConnection, logger)
	monitor.Start()

	cleanups = append(cleanups, monitor.Stop, func() {
		if rabbitMQConnection.Connection != nil && !rabbitMQConnection.Connection.IsClosed() {
			if closeErr := rabbitMQConnection.Connection.Close(); closeErr != nil {
				logger.Errorf("Cleanup: failed to close RabbitMQ connection: %v", closeErr)
			}
		}
	})

	renderer, err := pongo.NewNotificationRenderer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compile notification templates: %w", err)
	}

	useCase := &services.UseCase{
		NotificationRepo: notificationRepo,
		Renderer:         renderer,
		Metrics:          initMetrics(cfg, telemetry, logger),
	}

	healthServer := NewHealthServer(cfg.HealthPort, rabbitMQConnection, mongoConnection, logger)
	healthServer.Start()

	logger.Infof("Worker consuming %s with %d workers", cfg.NotificationQueue, cfg.RabbitMQNumWorkers)

	return &Service{
		MultiQueueConsumer: NewMultiQueueConsumer(routes, useCase, cfg.NotificationQueue),
		Logger:             logger,
		healthServer:       healthServer,
		cleanups:           cleanups,
	}, nil
}

func initNotificationStore(cfg *Config, logger log.Logger) (*mongoDB.MongoConnection, *notification.NotificationMongoDBRepository, error) {
	source := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.MongoURI, cfg.MongoDBUser, url.QueryEscape(cfg.MongoDBPassword), cfg.MongoDBHost, cfg.MongoDBPort)

	if cfg.MongoDBParameters != "" {
		source += "/?" + cfg.MongoDBParameters
	}

	logger.Infof("MongoDB connecting to %s", pkg.RedactConnectionString(source))

	mongoConnection := &mongoDB.MongoConnection{
		ConnectionStringSource: source,
		Database:               cfg.MongoDBName,
		Logger:                 logger,
		MaxPoolSize:            uint64(cfg.MongoMaxPoolSize),
	}

	repo, err := notification.NewNotificationMongoDBRepository(mongoConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize notification mongodb repository: %w", err)
	}

	if err := repo.EnsureIndexes(pkg.ContextWithLogger(context.Background(), logger)); err != nil {
		logger.Warnf("Failed to ensure notification indexes (non-fatal): %v", err)
	}

	return mongoConnection, repo, nil
}

func initMetrics(cfg *Config, telemetry *libOtel.Telemetry, logger log.Logger) *metrics.Metrics {
	if !cfg.EnableTelemetry || telemetry == nil || telemetry.MetricProvider == nil {
		return metrics.NoopMetrics()
	}

	m, err := metrics.NewMetrics(telemetry.MetricProvider.Meter(cfg.OtelLibraryName))
	if err != nil {
		logger.Errorf("Failed to create metrics, falling back to noop: %v", err)
		return metrics.NoopMetrics()
	}

	return m
}
