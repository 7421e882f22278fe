// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/components/api/internal/adapters/rabbitmq"
	"github.com/dlt-talenthub/talenthub/components/api/internal/adapters/redis"
	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/metrics"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/application"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/job"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/notification"
	"github.com/dlt-talenthub/talenthub/pkg/mongodb/user"
	pkgRabbitmq "github.com/dlt-talenthub/talenthub/pkg/rabbitmq"
	"github.com/dlt-talenthub/talenthub/pkg/security"
	"github.com/dlt-talenthub/talenthub/pkg/storage"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	libOtel "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	libRedis "github.com/LerianStudio/lib-commons/v3/commons/redis"
	"github.com/LerianStudio/lib-commons/v3/commons/zap"
)

// mongoResources holds MongoDB-related resources created during initialization.
type mongoResources struct {
	connection      *mongoDB.MongoConnection
	userRepo        *user.UserMongoDBRepository
	jobRepo         *job.JobMongoDBRepository
	applicationRepo *application.ApplicationMongoDBRepository
	notificationRep *notification.NotificationMongoDBRepository
}

// rabbitResources holds RabbitMQ-related resources created during initialization.
type rabbitResources struct {
	connection *libRabbitmq.RabbitMQConnection
	producer   *rabbitmq.ProducerRabbitMQRepository
	monitor    *pkgRabbitmq.ConnectionMonitor
}

// redisResources holds the Redis connection and the refresh token store built on it.
type redisResources struct {
	connection *libRedis.RedisConnection
	tokenRepo  *redis.TokenRedisRepository
}

// initConfigAndLogger loads configuration from environment variables, applies defaults,
// validates it and initializes the structured logger.
func initConfigAndLogger() (*Config, log.Logger, error) {
	cfg := &Config{}
	if err := libCommons.SetConfigFromEnvVars(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to load config from env vars: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := zap.InitializeLoggerWithError()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logger, nil
}

// initTelemetry initializes OpenTelemetry and returns a cleanup that shuts the provider down.
func initTelemetry(cfg *Config, logger log.Logger) (*libOtel.Telemetry, func(), error) {
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
		return nil, nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	cleanup := func() {
		logger.Info("Cleanup: shutting down telemetry")
		telemetry.ShutdownTelemetry()
	}

	return telemetry, cleanup, nil
}

// initMetrics registers the domain counters on the telemetry meter provider.
// Without telemetry, or when registration fails, no-op instruments are used.
func initMetrics(cfg *Config, telemetry *libOtel.Telemetry, logger log.Logger) *metrics.Metrics {
	if !cfg.EnableTelemetry || telemetry == nil || telemetry.MetricProvider == nil {
		logger.Info("Metrics: using noop instruments (telemetry disabled)")
		return metrics.NoopMetrics()
	}

	m, err := metrics.NewMetrics(telemetry.MetricProvider.Meter(cfg.OtelLibraryName))
	if err != nil {
		logger.Errorf("Failed to create metrics, falling back to noop: %v", err)
		return metrics.NoopMetrics()
	}

	return m
}

// initStorage creates the S3 client for uploads and wraps it in the object storage breaker.
func initStorage(cfg *Config, logger log.Logger) (*storage.BreakerStorage, error) {
	ctx := pkg.ContextWithLogger(context.Background(), logger)

	client, err := storage.NewStorageClient(ctx, storage.Config{
		Bucket:            cfg.ObjectStorageBucket,
		S3Endpoint:        cfg.ObjectStorageEndpoint,
		S3Region:          cfg.ObjectStorageRegion,
		S3AccessKeyID:     cfg.ObjectStorageAccessKeyID,
		S3SecretAccessKey: cfg.ObjectStorageSecretKey,
		S3UsePathStyle:    cfg.ObjectStorageUsePathStyle,
		S3DisableSSL:      cfg.ObjectStorageDisableSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	logger.Infof("Storage initialized with bucket: %s (resumes/, avatars/ and logos/ prefixes)", cfg.ObjectStorageBucket)

	return storage.NewBreakerStorage(client, pkg.NewCircuitBreakerManager(logger)), nil
}

// mongoConnectionString builds the MongoDB URI with an escaped password and optional parameters.
func mongoConnectionString(cfg *Config) string {
	source := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.MongoURI, cfg.MongoDBUser, url.QueryEscape(cfg.MongoDBPassword), cfg.MongoDBHost, cfg.MongoDBPort)

	if cfg.MongoDBParameters != "" {
		source += "/?" + cfg.MongoDBParameters
	}

	return source
}

// initMongoDB connects to MongoDB, builds the four repositories, ensures their
// indexes and returns a cleanup that disconnects the client.
func initMongoDB(cfg *Config, logger log.Logger) (*mongoResources, func(), error) {
	source := mongoConnectionString(cfg)

	logger.Infof("MongoDB connecting to %s", pkg.RedactConnectionString(source))

	mongoConnection := &mongoDB.MongoConnection{
		ConnectionStringSource: source,
		Database:               cfg.MongoDBName,
		Logger:                 logger,
		MaxPoolSize:            uint64(cfg.MongoMaxPoolSize),
	}

	res := &mongoResources{connection: mongoConnection}

	var err error

	if res.userRepo, err = user.NewUserMongoDBRepository(mongoConnection); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize user mongodb repository: %w", err)
	}

	if res.jobRepo, err = job.NewJobMongoDBRepository(mongoConnection); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize job mongodb repository: %w", err)
	}

	if res.applicationRepo, err = application.NewApplicationMongoDBRepository(mongoConnection); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize application mongodb repository: %w", err)
	}

	if res.notificationRep, err = notification.NewNotificationMongoDBRepository(mongoConnection); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize notification mongodb repository: %w", err)
	}

	logger.Info("Ensuring MongoDB indexes exist for users, jobs, applications and notifications...")

	ctx := pkg.ContextWithLogger(context.Background(), logger)

	indexers := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{"user", res.userRepo.EnsureIndexes},
		{"job", res.jobRepo.EnsureIndexes},
		{"application", res.applicationRepo.EnsureIndexes},
		{"notification", res.notificationRep.EnsureIndexes},
	}

	for _, ix := range indexers {
		if err := ix.ensure(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to ensure %s indexes: %w", ix.name, err)
		}
	}

	cleanup := func() {
		if mongoConnection.DB != nil {
			logger.Info("Cleanup: disconnecting MongoDB")

			if disconnectErr := mongoConnection.DB.Disconnect(context.Background()); disconnectErr != nil {
				logger.Errorf("Cleanup: failed to disconnect MongoDB: %v", disconnectErr)
			}
		}
	}

	return res, cleanup, nil
}

// initRabbitMQ creates the notification producer and starts the background connection monitor.
func initRabbitMQ(cfg *Config, logger log.Logger) (*rabbitResources, []func()) {
	source := fmt.Sprintf("%s://%s:%s@%s:%s",
		cfg.RabbitURI, cfg.RabbitMQUser, url.QueryEscape(cfg.RabbitMQPass), cfg.RabbitMQHost, cfg.RabbitMQPortAMQP)

	logger.Infof("RabbitMQ connecting to %s", pkg.RedactConnectionString(source))

	conn := &libRabbitmq.RabbitMQConnection{
		ConnectionStringSource: source,
		HealthCheckURL:         cfg.RabbitMQHealthCheckURL,
		Host:                   cfg.RabbitMQHost,
		Port:                   cfg.RabbitMQPortHost,
		User:                   cfg.RabbitMQUser,
		Pass:                   cfg.RabbitMQPass,
		Queue:                  cfg.NotificationQueue,
		Logger:                 logger,
	}

	producer := rabbitmq.NewProducerRabbitMQ(conn)

	monitor := pkgRabbitmq.NewConnectionMonitor(conn, logger)
	monitor.Start()

	logger.Info("RabbitMQ background connection monitor started")

	cleanups := []func(){
		func() {
			logger.Info("Cleanup: stopping RabbitMQ connection monitor")
			monitor.Stop()
		},
		func() {
			logger.Info("Cleanup: closing RabbitMQ connection")
			closeRabbitMQ(conn, logger)
		},
	}

	return &rabbitResources{connection: conn, producer: producer, monitor: monitor}, cleanups
}

func closeRabbitMQ(conn *libRabbitmq.RabbitMQConnection, logger log.Logger) {
	if conn.Channel != nil {
		if err := conn.Channel.Close(); err != nil {
			logger.Errorf("Cleanup: failed to close RabbitMQ channel: %v", err)
		}
	}

	if conn.Connection != nil && !conn.Connection.IsClosed() {
		if err := conn.Connection.Close(); err != nil {
			logger.Errorf("Cleanup: failed to close RabbitMQ connection: %v", err)
		}
	}
}

// initRedis connects to Redis/Valkey and builds the refresh token store.
func initRedis(cfg *Config, logger log.Logger) (*redisResources, func(), error) {
	redisConnection := &libRedis.RedisConnection{
		Address:  strings.Split(cfg.RedisHost, ","),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Protocol: cfg.RedisProtocol,
		UseTLS:   cfg.RedisTLS,
		CACert:   cfg.RedisCACert,
		Logger:   logger,
	}

	tokenRepo, err := redis.NewTokenRedis(redisConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis connection: %w", err)
	}

	cleanup := func() {
		logger.Info("Cleanup: closing Redis connection")

		if closeErr := redisConnection.Close(); closeErr != nil {
			logger.Errorf("Cleanup: failed to close Redis connection: %v", closeErr)
		}
	}

	return &redisResources{connection: redisConnection, tokenRepo: tokenRepo}, cleanup, nil
}

// initSecurity builds the JWT token manager and the bcrypt password hasher.
func initSecurity(cfg *Config) (*security.TokenManager, *security.PasswordHasher, error) {
	tokens, err := security.NewTokenManager(security.TokenManagerConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTokenTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.RefreshTokenTTLHours) * time.Hour,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}

	return tokens, security.NewPasswordHasher(cfg.BcryptCost), nil
}
