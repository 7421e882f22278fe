// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	"github.com/dlt-talenthub/talenthub/pkg/model"
	pkgRabbitmq "github.com/dlt-talenthub/talenthub/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libConstants "github.com/LerianStudio/lib-commons/v3/commons/constants"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
)

// sleepFunc is the function used for sleeping between retries.
// Overridable in tests for deterministic behavior.
var sleepFunc = time.Sleep

// ProducerRabbitMQRepository publishes notification events to RabbitMQ.
type ProducerRabbitMQRepository struct {
	conn *libRabbitmq.RabbitMQConnection
}

// Compile-time interface satisfaction check.
var _ pkgRabbitmq.ProducerRepository = (*ProducerRabbitMQRepository)(nil)

// NewProducerRabbitMQ returns a new instance of ProducerRabbitMQRepository using the given rabbitmq connection.
// A failed first connection is logged and retried on the first publish.
func NewProducerRabbitMQ(c *libRabbitmq.RabbitMQConnection) *ProducerRabbitMQRepository {
	prmq := &ProducerRabbitMQRepository{
		conn: c,
	}

	if _, err := c.GetNewConnect(); err != nil {
		c.Logger.Errorf("Failed to connect to RabbitMQ during initialization: %v", err)
		c.Logger.Warn("RabbitMQ connection will be retried on first event publish")
	} else {
		c.Logger.Info("RabbitMQ producer connected successfully")
	}

	return prmq
}

// Publish sends a notification event to the exchange with the given routing key.
// Every attempt calls EnsureChannel first, and failures are retried up to
// ProducerMaxRetries times with full-jitter exponential backoff.
func (prmq *ProducerRabbitMQRepository) Publish(ctx context.Context, exchange, key string, event model.NotificationEvent) error {
	logger, tracer, reqId, _ := libCommons.NewTrackingFromContext(ctx)

	ctx, span := tracer.Start(ctx, "repository.rabbitmq.publish_event")
	defer span.End()

	span.SetAttributes(
		attribute.String("app.request.request_id", reqId),
		attribute.String("app.request.exchange", exchange),
		attribute.String("app.request.key", key),
		attribute.String("app.request.event_type", event.Type),
		attribute.String("app.request.recipient_id", event.RecipientID.String()),
	)

	body, err := json.Marshal(event)
	if err != nil {
		libOpentelemetry.HandleSpanError(&span, "Failed to marshal notification event", err)

		logger.Errorf("Failed to marshal notification event %s: %v", event.ID, err)

		return err
	}

	headers := amqp.Table{
		libConstants.HeaderID:     reqId,
		constant.RetryCountHeader: 0,
	}

	libOpentelemetry.InjectTraceHeadersIntoQueue(ctx, (*map[string]any)(&headers))

	backoff := constant.ProducerInitialBackoff

	var publishErr error

	for attempt := 0; attempt <= constant.ProducerMaxRetries; attempt++ {
		if publishErr = prmq.conn.EnsureChannel(); publishErr == nil {
			publishErr = prmq.conn.Channel.Publish(
				exchange,
				key,
				false,
				false,
				amqp.Publishing{
					ContentType:  "application/json",
					DeliveryMode: amqp.Persistent,
					MessageId:    event.ID.String(),
					Timestamp:    event.OccurredAt,
					Type:         event.Type,
					Headers:      headers,
					Body:         body,
				})
			if publishErr == nil {
				logger.Infof("Event %s (%s) published to %s", event.ID, event.Type, exchange)

				return nil
			}
		}

		logger.Errorf("Publish failed (attempt %d/%d): %v", attempt+1, constant.ProducerMaxRetries+1, publishErr)

		span.SetAttributes(attribute.Int("app.request.rabbitmq.retry_attempt", attempt))

		if attempt == constant.ProducerMaxRetries {
			break
		}

		sleepDuration := pkg.FullJitter(backoff)

		logger.Infof("Retrying publish in %v (attempt %d/%d)", sleepDuration, attempt+1, constant.ProducerMaxRetries+1)

		sleepFunc(sleepDuration)

		backoff = pkg.NextBackoff(backoff)
	}

	libOpentelemetry.HandleSpanError(&span, "Failed to publish event after all retries", publishErr)

	return publishErr
}
