// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/components/api/internal/adapters/http/in"
	"github.com/dlt-talenthub/talenthub/components/api/internal/services"
	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"golang.org/x/crypto/bcrypt"
)

const (
	envProduction = "production"

	minJWTSecretLength    = 32
	maxUploadMaxBytes     = 100 << 20
	maxAccessTTLMinutes   = 24 * 60
	maxRefreshTTLHours    = 90 * 24
	maxRateLimitWindowSec = 3600
)

// Config is the top level configuration struct for the entire application.
type Config struct {
	EnvName       string `env:"ENV_NAME"`
	ServerAddress string `env:"SERVER_ADDRESS"`
	LogLevel      string `env:"LOG_LEVEL"`

	// OpenTelemetry
	OtelServiceName         string `env:"OTEL_RESOURCE_SERVICE_NAME"`
	OtelLibraryName         string `env:"OTEL_LIBRARY_NAME"`
	OtelServiceVersion      string `env:"OTEL_RESOURCE_SERVICE_VERSION"`
	OtelDeploymentEnv       string `env:"OTEL_RESOURCE_DEPLOYMENT_ENVIRONMENT"`
	OtelColExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	EnableTelemetry         bool   `env:"ENABLE_TELEMETRY"`

	// MongoDB
	MongoURI          string `env:"MONGO_URI"`
	MongoDBHost       string `env:"MONGO_HOST"`
	MongoDBName       string `env:"MONGO_NAME"`
	MongoDBUser       string `env:"MONGO_USER"`
	MongoDBPassword   string `env:"MONGO_PASSWORD"`
	MongoDBPort       string `env:"MONGO_PORT"`
	MongoDBParameters string `env:"MONGO_PARAMETERS"`
	MongoMaxPoolSize  int    `env:"MONGO_MAX_POOL_SIZE"`

	// RabbitMQ
	RabbitURI              string `env:"RABBITMQ_URI"`
	RabbitMQHost           string `env:"RABBITMQ_HOST"`
	RabbitMQPortHost       string `env:"RABBITMQ_PORT_HOST"`
	RabbitMQPortAMQP       string `env:"RABBITMQ_PORT_AMQP"`
	RabbitMQUser           string `env:"RABBITMQ_DEFAULT_USER"`
	RabbitMQPass           string `env:"RABBITMQ_DEFAULT_PASS"`
	RabbitMQHealthCheckURL string `env:"RABBITMQ_HEALTH_CHECK_URL"`
	NotificationExchange   string `env:"NOTIFICATION_EXCHANGE"`
	NotificationRoutingKey string `env:"NOTIFICATION_ROUTING_KEY"`
	NotificationQueue      string `env:"NOTIFICATION_QUEUE"`

	// Redis / Valkey
	RedisHost     string `env:"REDIS_HOST"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	RedisProtocol int    `env:"REDIS_PROTOCOL"`
	RedisTLS      bool   `env:"REDIS_TLS"`
	RedisCACert   string `env:"REDIS_CA_CERT"`

	// Object storage (S3 compatible)
	ObjectStorageEndpoint     string `env:"OBJECT_STORAGE_ENDPOINT"`
	ObjectStorageRegion       string `env:"OBJECT_STORAGE_REGION"`
	ObjectStorageBucket       string `env:"OBJECT_STORAGE_BUCKET"`
	ObjectStorageAccessKeyID  string `env:"OBJECT_STORAGE_ACCESS_KEY_ID"`
	ObjectStorageSecretKey    string `env:"OBJECT_STORAGE_SECRET_KEY"`
	ObjectStorageUsePathStyle bool   `env:"OBJECT_STORAGE_USE_PATH_STYLE"`
	ObjectStorageDisableSSL   bool   `env:"OBJECT_STORAGE_DISABLE_SSL"`
	UploadMaxBytes            int    `env:"UPLOAD_MAX_BYTES"`

	// Authentication
	JWTSecret             string `env:"JWT_SECRET"`
	JWTIssuer             string `env:"JWT_ISSUER"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES"`
	RefreshTokenTTLHours  int    `env:"REFRESH_TOKEN_TTL_HOURS"`
	BcryptCost            int    `env:"BCRYPT_COST"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`
	CORSAllowedMethods string `env:"CORS_ALLOWED_METHODS"`
	CORSAllowedHeaders string `env:"CORS_ALLOWED_HEADERS"`

	// Rate limiting
	RateLimitEnabled   bool `env:"RATE_LIMIT_ENABLED"`
	RateLimitGlobal    int  `env:"RATE_LIMIT_GLOBAL"`
	RateLimitAuth      int  `env:"RATE_LIMIT_AUTH"`
	RateLimitWrite     int  `env:"RATE_LIMIT_WRITE"`
	RateLimitWindowSec int  `env:"RATE_LIMIT_WINDOW_SECONDS"`
}

// applyDefaults fills the optional settings left unset in the environment.
func (cfg *Config) applyDefaults() {
	if cfg.MongoMaxPoolSize == 0 {
		cfg.MongoMaxPoolSize = constant.MongoDefaultMaxPoolSize
	}

	if cfg.NotificationRoutingKey == "" {
		cfg.NotificationRoutingKey = "notification"
	}

	if cfg.ObjectStorageRegion == "" {
		cfg.ObjectStorageRegion = "us-east-1"
	}

	if cfg.UploadMaxBytes == 0 {
		cfg.UploadMaxBytes = constant.DefaultUploadMaxBytes
	}

	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = constant.ApplicationName
	}

	if cfg.AccessTokenTTLMinutes == 0 {
		cfg.AccessTokenTTLMinutes = int(constant.DefaultAccessTokenTTL.Minutes())
	}

	if cfg.RefreshTokenTTLHours == 0 {
		cfg.RefreshTokenTTLHours = int(constant.DefaultRefreshTokenTTL.Hours())
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	if cfg.CORSAllowedMethods == "" {
		cfg.CORSAllowedMethods = "GET,POST,PATCH,DELETE,OPTIONS"
	}

	if cfg.CORSAllowedHeaders == "" {
		cfg.CORSAllowedHeaders = "Origin,Content-Type,Accept,Authorization,X-Request-Id"
	}

	if _, set := os.LookupEnv("RATE_LIMIT_ENABLED"); !set {
		cfg.RateLimitEnabled = constant.RateLimitDefaultEnabled
	}

	if cfg.RateLimitGlobal == 0 {
		cfg.RateLimitGlobal = constant.RateLimitDefaultGlobalMax
	}

	if cfg.RateLimitAuth == 0 {
		cfg.RateLimitAuth = constant.RateLimitDefaultAuthMax
	}

	if cfg.RateLimitWrite == 0 {
		cfg.RateLimitWrite = constant.RateLimitDefaultWriteMax
	}

	if cfg.RateLimitWindowSec == 0 {
		cfg.RateLimitWindowSec = int(constant.RateLimitDefaultWindow.Seconds())
	}
}

// Validate checks required fields, value ranges and production hardening rules.
// All problems are reported together.
func (cfg *Config) Validate() error {
	var errs []string

	required := []struct {
		value string
		env   string
	}{
		{cfg.ServerAddress, "SERVER_ADDRESS"},
		{cfg.MongoDBHost, "MONGO_HOST"},
		{cfg.MongoDBName, "MONGO_NAME"},
		{cfg.RabbitMQHost, "RABBITMQ_HOST"},
		{cfg.RabbitMQPortAMQP, "RABBITMQ_PORT_AMQP"},
		{cfg.RabbitMQUser, "RABBITMQ_DEFAULT_USER"},
		{cfg.RabbitMQPass, "RABBITMQ_DEFAULT_PASS"},
		{cfg.NotificationExchange, "NOTIFICATION_EXCHANGE"},
		{cfg.RedisHost, "REDIS_HOST"},
		{cfg.ObjectStorageEndpoint, "OBJECT_STORAGE_ENDPOINT"},
		{cfg.ObjectStorageBucket, "OBJECT_STORAGE_BUCKET"},
		{cfg.JWTSecret, "JWT_SECRET"},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, r.env+" is required")
		}
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Sprintf("JWT_SECRET must be at least %d characters", minJWTSecretLength))
	}

	errs = append(errs, cfg.validateRanges()...)

	if cfg.EnvName == envProduction {
		errs = append(errs, cfg.validateProduction()...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

func (cfg *Config) validateRanges() []string {
	var errs []string

	between := func(value, lower, upper int, env string) {
		if value < lower || value > upper {
			errs = append(errs, fmt.Sprintf("%s must be between %d and %d", env, lower, upper))
		}
	}

	between(cfg.MongoMaxPoolSize, 1, constant.MongoMaxPoolSizeUpperBound, "MONGO_MAX_POOL_SIZE")
	between(cfg.UploadMaxBytes, 1, maxUploadMaxBytes, "UPLOAD_MAX_BYTES")
	between(cfg.AccessTokenTTLMinutes, 1, maxAccessTTLMinutes, "ACCESS_TOKEN_TTL_MINUTES")
	between(cfg.RefreshTokenTTLHours, 1, maxRefreshTTLHours, "REFRESH_TOKEN_TTL_HOURS")
	between(cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost, "BCRYPT_COST")
	between(cfg.RateLimitGlobal, 1, constant.RateLimitMaxGlobal, "RATE_LIMIT_GLOBAL")
	between(cfg.RateLimitAuth, 1, constant.RateLimitMaxAuth, "RATE_LIMIT_AUTH")
	between(cfg.RateLimitWrite, 1, constant.RateLimitMaxWrite, "RATE_LIMIT_WRITE")
	between(cfg.RateLimitWindowSec, 1, maxRateLimitWindowSec, "RATE_LIMIT_WINDOW_SECONDS")

	return errs
}

func (cfg *Config) validateProduction() []string {
	var errs []string

	if !cfg.RateLimitEnabled {
		errs = append(errs, "RATE_LIMIT_ENABLED must be true in production")
	}

	if !cfg.EnableTelemetry {
		errs = append(errs, "ENABLE_TELEMETRY must be true in production")
	}

	secrets := []struct {
		value string
		env   string
	}{
		{cfg.MongoDBPassword, "MONGO_PASSWORD"},
		{cfg.RabbitMQPass, "RABBITMQ_DEFAULT_PASS"},
		{cfg.RedisPassword, "REDIS_PASSWORD"},
		{cfg.ObjectStorageSecretKey, "OBJECT_STORAGE_SECRET_KEY"},
		{cfg.JWTSecret, "JWT_SECRET"},
	}

	for _, s := range secrets {
		if s.value == "" || strings.Contains(s.value, constant.DefaultPasswordPlaceholder) {
			errs = append(errs, s.env+" must be set to a real secret in production")
		}
	}

	origins := strings.TrimSpace(cfg.CORSAllowedOrigins)

	switch {
	case origins == "":
		errs = append(errs, "CORS_ALLOWED_ORIGINS must not be empty in production")
	case strings.Contains(origins, "*"):
		errs = append(errs, "CORS_ALLOWED_ORIGINS must not contain wildcard (*) in production")
	default:
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" && !strings.HasPrefix(origin, "https://") {
				errs = append(errs, "CORS_ALLOWED_ORIGINS must use HTTPS in production")

				break
			}
		}
	}

	return errs
}

// InitServers loads configuration, connects every dependency and builds the HTTP server.
// On failure the resources acquired so far are released before returning.
func InitServers() (_ *Service, err error) {
	cfg, logger, err := initConfigAndLogger()
	if err != nil {
		return nil, err
	}

	var cleanups []func()

	defer func() {
		if err != nil {
			for i := len(cleanups) - 1; i >= 0; i-- {
				cleanups[i]()
			}
		}
	}()

	telemetry, telemetryCleanup, err := initTelemetry(cfg, logger)
	if err != nil {
		return nil, err
	}

	cleanups = append(cleanups, telemetryCleanup)

	appMetrics := initMetrics(cfg, telemetry, logger)

	objectStorage, err := initStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	mongo, mongoCleanup, err := initMongoDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	cleanups = append(cleanups, mongoCleanup)

	rabbit, rabbitCleanups := initRabbitMQ(cfg, logger)
	cleanups = append(cleanups, rabbitCleanups...)

	redisRes, redisCleanup, err := initRedis(cfg, logger)
	if err != nil {
		return nil, err
	}

	cleanups = append(cleanups, redisCleanup)

	tokens, passwords, err := initSecurity(cfg)
	if err != nil {
		return nil, err
	}

	useCase := &services.UseCase{
		UserRepo:               mongo.userRepo,
		JobRepo:                mongo.jobRepo,
		ApplicationRepo:        mongo.applicationRepo,
		NotificationRepo:       mongo.notificationRep,
		TokenRepo:              redisRes.tokenRepo,
		Tokens:                 tokens,
		Passwords:              passwords,
		Producer:               rabbit.producer,
		Storage:                objectStorage,
		Metrics:                appMetrics,
		NotificationExchange:   cfg.NotificationExchange,
		NotificationRoutingKey: cfg.NotificationRoutingKey,
		UploadMaxBytes:         int64(cfg.UploadMaxBytes),
	}

	handlers, err := newHandlers(useCase)
	if err != nil {
		return nil, err
	}

	routeCfg := in.RouteConfig{
		CORS: in.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: cfg.CORSAllowedMethods,
			AllowedHeaders: cfg.CORSAllowedHeaders,
		},
		RateLimit: in.RateLimitConfig{
			Enabled:   cfg.RateLimitEnabled,
			GlobalMax: cfg.RateLimitGlobal,
			AuthMax:   cfg.RateLimitAuth,
			WriteMax:  cfg.RateLimitWrite,
			Window:    time.Duration(cfg.RateLimitWindowSec) * time.Second,
			Storage:   in.NewRedisStorage(redisRes.connection, logger),
		},
		UploadMaxBytes: int64(cfg.UploadMaxBytes),
	}

	readiness := &in.ReadinessDeps{
		MongoConnection:    mongo.connection,
		RabbitMQConnection: rabbit.connection,
		RedisConnection:    redisRes.connection,
		StorageClient:      objectStorage,
	}

	httpApp := in.NewRoutes(logger, telemetry, handlers, tokens, routeCfg, readiness)

	return &Service{
		Server:   NewServer(cfg, httpApp, logger),
		Logger:   logger,
		cleanups: cleanups,
	}, nil
}

func newHandlers(useCase *services.UseCase) (*in.Handlers, error) {
	h := &in.Handlers{}

	var err error

	if h.Auth, err = in.NewAuthHandler(useCase); err != nil {
		return nil, err
	}

	if h.Job, err = in.NewJobHandler(useCase); err != nil {
		return nil, err
	}

	if h.Application, err = in.NewApplicationHandler(useCase); err != nil {
		return nil, err
	}

	if h.User, err = in.NewUserHandler(useCase); err != nil {
		return nil, err
	}

	if h.Upload, err = in.NewUploadHandler(useCase); err != nil {
		return nil, err
	}

	if h.Notification, err = in.NewNotificationHandler(useCase); err != nil {
		return nil, err
	}

	return h, nil
}
