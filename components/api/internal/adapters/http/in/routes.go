// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"time"

	"github.com/dlt-talenthub/talenthub/components/api/internal/adapters/redis"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	"github.com/dlt-talenthub/talenthub/pkg/net/http"
	"github.com/dlt-talenthub/talenthub/pkg/storage"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	mongoDB "github.com/LerianStudio/lib-commons/v3/commons/mongo"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

const (
	readinessCheckTimeout = 2 * time.Second
	readinessStorageProbe = ".readiness-check"
	defaultBodyLimit      = 4 * 1024 * 1024
	multipartOverhead     = 64 * 1024
)

// Handlers groups the HTTP handlers mounted by NewRoutes.
type Handlers struct {
	Auth         *AuthHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	User         *UserHandler
	Upload       *UploadHandler
	Notification *NotificationHandler
}

// RouteConfig carries the middleware settings of the HTTP server.
type RouteConfig struct {
	CORS           CORSConfig
	RateLimit      RateLimitConfig
	UploadMaxBytes int64
}

// ReadinessDeps holds the dependency connections needed for the /ready endpoint.
type ReadinessDeps struct {
	MongoConnection    *mongoDB.MongoConnection
	RabbitMQConnection *libRabbitmq.RabbitMQConnection
	RedisConnection    redis.ClientProvider
	StorageClient      storage.ObjectStorage
}

// NewRoutes creates the fiber app with every TalentHub route and middleware.
func NewRoutes(lg log.Logger, tl *opentelemetry.Telemetry, h *Handlers, tokens AccessTokenParser, cfg RouteConfig, deps *ReadinessDeps) *fiber.App {
	bodyLimit := defaultBodyLimit
	if limit := int(cfg.UploadMaxBytes) + multipartOverhead; limit > bodyLimit {
		bodyLimit = limit
	}

	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return commonsHttp.HandleFiberError(ctx, err)
		},
	})
	tlMid := commonsHttp.NewTelemetryMiddleware(tl)

	f.Use(RecoverMiddleware())
	f.Use(tlMid.WithTelemetry(tl))
	f.Use(SecurityHeaders())
	f.Use(CORSMiddleware(cfg.CORS))
	f.Use(commonsHttp.WithHTTPLogging(commonsHttp.WithCustomLogger(lg)))
	f.Use(RateLimiterMiddleware(cfg.RateLimit))

	authn := Authenticate(tokens)
	recruiters := RequireRoles(constant.RoleRecruiter, constant.RoleAdmin)
	talents := RequireRoles(constant.RoleTalent)
	admins := RequireRoles(constant.RoleAdmin)

	// Auth
	f.Post("/v1/auth/register", http.WithBody(new(model.RegisterInput), h.Auth.Register))
	f.Post("/v1/auth/login", http.WithBody(new(model.LoginInput), h.Auth.Login))
	f.Post("/v1/auth/refresh", http.WithBody(new(model.RefreshInput), h.Auth.Refresh))
	f.Post("/v1/auth/logout", http.WithBody(new(model.RefreshInput), h.Auth.Logout))
	f.Get("/v1/auth/me", authn, h.Auth.Me)

	// Jobs
	f.Post("/v1/jobs", authn, recruiters, http.WithBody(new(model.CreateJobInput), h.Job.CreateJob))
	f.Get("/v1/jobs", h.Job.GetAllJobs)
	f.Get("/v1/jobs/:id", ParsePathParametersUUID, h.Job.GetJobByID)
	f.Patch("/v1/jobs/:id", authn, recruiters, ParsePathParametersUUID, http.WithBody(new(model.UpdateJobInput), h.Job.UpdateJob))
	f.Patch("/v1/jobs/:id/status", authn, recruiters, ParsePathParametersUUID, http.WithBody(new(model.UpdateJobStatusInput), h.Job.UpdateJobStatus))
	f.Delete("/v1/jobs/:id", authn, recruiters, ParsePathParametersUUID, h.Job.DeleteJob)

	// Applications
	f.Post("/v1/jobs/:id/applications", authn, talents, ParsePathParametersUUID, http.WithBody(new(model.CreateApplicationInput), h.Application.CreateApplication))
	f.Get("/v1/jobs/:id/applications", authn, recruiters, ParsePathParametersUUID, h.Application.GetJobApplications)
	f.Get("/v1/applications", authn, h.Application.GetAllApplications)
	f.Get("/v1/applications/:id", authn, ParsePathParametersUUID, h.Application.GetApplicationByID)
	f.Patch("/v1/applications/:id/status", authn, recruiters, ParsePathParametersUUID, http.WithBody(new(model.UpdateApplicationStatusInput), h.Application.UpdateApplicationStatus))
	f.Delete("/v1/applications/:id", authn, talents, ParsePathParametersUUID, h.Application.WithdrawApplication)

	// Talents and users
	f.Get("/v1/talents", h.User.GetAllTalents)
	f.Patch("/v1/talents/me", authn, talents, http.WithBody(new(model.UpdateTalentProfileInput), h.User.UpdateTalentProfile))
	f.Get("/v1/talents/:id", ParsePathParametersUUID, h.User.GetTalentByID)
	f.Get("/v1/users", authn, admins, h.User.GetAllUsers)
	f.Patch("/v1/users/:id/status", authn, admins, ParsePathParametersUUID, http.WithBody(new(model.UpdateUserStatusInput), h.User.UpdateUserStatus))

	// Uploads
	f.Post("/v1/uploads", authn, h.Upload.UploadFile)
	f.Get("/v1/uploads/url", authn, h.Upload.GetUploadURL)

	// Notifications
	f.Get("/v1/notifications", authn, h.Notification.GetAllNotifications)
	f.Patch("/v1/notifications/read-all", authn, h.Notification.MarkAllNotificationsRead)
	f.Patch("/v1/notifications/:id/read", authn, ParsePathParametersUUID, h.Notification.MarkNotificationRead)

	// Doc Swagger
	f.Get("/swagger/*", WithSwaggerEnvConfig(), fiberSwagger.WrapHandler)

	f.Get("/health", commonsHttp.Ping)
	f.Get("/ready", readinessHandler(deps))
	f.Get("/version", commonsHttp.Version)

	f.Use(tlMid.EndTracingSpans)

	return f
}

type dependencyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func ready() *dependencyResult {
	return &dependencyResult{Status: "ready"}
}

func notReady(message string) *dependencyResult {
	return &dependencyResult{Status: "not_ready", Message: message}
}

// readinessHandler checks every dependency with a 2 second timeout each.
// It answers 200 when all are ready and 503 otherwise.
func readinessHandler(deps *ReadinessDeps) fiber.Handler {
	if deps == nil {
		deps = &ReadinessDeps{}
	}

	return func(c *fiber.Ctx) error {
		results := map[string]*dependencyResult{
			"mongodb":  checkMongoDB(deps.MongoConnection),
			"rabbitmq": checkRabbitMQ(deps.RabbitMQConnection),
			"redis":    checkRedis(deps.RedisConnection),
			"storage":  checkStorage(deps.StorageClient),
		}

		httpStatus, overallStatus := fiber.StatusOK, "ready"

		for _, result := range results {
			if result.Status != "ready" {
				httpStatus, overallStatus = fiber.StatusServiceUnavailable, "not_ready"

				break
			}
		}

		return commonsHttp.JSONResponse(c, httpStatus, fiber.Map{
			"status":       overallStatus,
			"dependencies": results,
		})
	}
}

func checkMongoDB(conn *mongoDB.MongoConnection) *dependencyResult {
	if conn == nil {
		return notReady("connection not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	db, err := conn.GetDB(ctx)
	if err != nil {
		return notReady("failed to get connection")
	}

	if err = db.Ping(ctx, nil); err != nil {
		return notReady("ping failed")
	}

	return ready()
}

func checkRabbitMQ(conn *libRabbitmq.RabbitMQConnection) *dependencyResult {
	if conn == nil {
		return notReady("connection not configured")
	}

	if !conn.Connected || conn.Connection == nil || conn.Connection.IsClosed() {
		return notReady("connection is closed")
	}

	if !conn.HealthCheck() {
		return notReady("health check failed")
	}

	return ready()
}

func checkRedis(conn redis.ClientProvider) *dependencyResult {
	if conn == nil {
		return notReady("connection not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	client, err := conn.GetClient(ctx)
	if err != nil {
		return notReady("failed to get client")
	}

	if _, err = client.Ping(ctx).Result(); err != nil {
		return notReady("ping failed")
	}

	return ready()
}

// checkStorage probes a key that never exists; any answer proves the bucket is reachable.
func checkStorage(client storage.ObjectStorage) *dependencyResult {
	if client == nil {
		return notReady("storage client not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	if _, err := client.Exists(ctx, readinessStorageProbe); err != nil {
		return notReady("storage connectivity check failed")
	}

	return ready()
}
