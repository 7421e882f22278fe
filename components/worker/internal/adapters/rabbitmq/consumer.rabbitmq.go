// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"
	pkgRabbitmq "github.com/dlt-talenthub/talenthub/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libConstants "github.com/LerianStudio/lib-commons/v3/commons/constants"
	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
	"github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const republishTimeout = 5 * time.Second

// deliveryChannel is the subset of *amqp091.Channel the consumer uses.
type deliveryChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// ConsumerRoutes runs a pool of workers per registered queue.
type ConsumerRoutes struct {
	channel    func() (deliveryChannel, error)
	routes     map[string]pkgRabbitmq.QueueHandlerFunc
	numWorkers int
	log.Logger

	// sleepFunc waits out the retry backoff; replaced in tests.
	sleepFunc func(ctx context.Context, d time.Duration)
}

var _ pkgRabbitmq.ConsumerRepository = (*ConsumerRoutes)(nil)

// NewConsumerRoutes connects to RabbitMQ and returns an empty route table.
func NewConsumerRoutes(conn *libRabbitmq.RabbitMQConnection, numWorkers int, logger log.Logger) (*ConsumerRoutes, error) {
	if err := conn.EnsureChannel(); err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	return newConsumerRoutes(func() (deliveryChannel, error) {
		if err := conn.EnsureChannel(); err != nil {
			return nil, err
		}

		return conn.Channel, nil
	}, numWorkers, logger), nil
}

func newConsumerRoutes(channel func() (deliveryChannel, error), numWorkers int, logger log.Logger) *ConsumerRoutes {
	if numWorkers <= 0 {
		numWorkers = constant.DefaultWorkerCount
	}

	return &ConsumerRoutes{
		channel:    channel,
		routes:     make(map[string]pkgRabbitmq.QueueHandlerFunc),
		numWorkers: numWorkers,
		Logger:     logger,
		sleepFunc:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Register adds a handler for queueName.
func (cr *ConsumerRoutes) Register(queueName string, handler pkgRabbitmq.QueueHandlerFunc) {
	cr.routes[queueName] = handler
}

// RunConsumers starts the workers of every registered queue and returns; workers stop when ctx is done.
func (cr *ConsumerRoutes) RunConsumers(ctx context.Context, wg *sync.WaitGroup) error {
	for queueName, handler := range cr.routes {
		cr.Info("Starting consumer for queue " + queueName)

		ch, err := cr.channel()
		if err != nil {
			return fmt.Errorf("opening channel for %s: %w", queueName, err)
		}

		if err := ch.Qos(constant.DefaultPrefetchCount, 0, false); err != nil {
			return fmt.Errorf("setting qos for %s: %w", queueName, err)
		}

		messages, err := ch.Consume(queueName, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("consuming %s: %w", queueName, err)
		}

		cr.startWorkers(ctx, wg, ch, messages, queueName, handler)
	}

	return nil
}

func (cr *ConsumerRoutes) startWorkers(ctx context.Context, wg *sync.WaitGroup, ch deliveryChannel, messages <-chan amqp091.Delivery, queue string, handler pkgRabbitmq.QueueHandlerFunc) {
	for i := 0; i < cr.numWorkers; i++ {
		wg.Add(1)

		go func(workerID int) {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					cr.Infof("Worker %d: Shutting down gracefully", workerID)
					return
				case message, ok := <-messages:
					if !ok {
						cr.Infof("Worker %d: Message channel closed", workerID)
						return
					}

					cr.processMessage(ctx, workerID, ch, queue, handler, message)
				}
			}
		}(i)
	}
}

// processMessage runs handler for one delivery and settles it. A panicking handler
// is treated as a retryable failure so the worker keeps running.
func (cr *ConsumerRoutes) processMessage(ctx context.Context, workerID int, ch deliveryChannel, queue string, handler pkgRabbitmq.QueueHandlerFunc, message amqp091.Delivery) {
	requestID, ok := message.Headers[libConstants.HeaderID].(string)
	if !ok || requestID == "" {
		requestID = libCommons.GenerateUUIDv7().String()
	}

	logger := cr.Logger.WithFields(libConstants.HeaderID, requestID)

	msgCtx := libCommons.ContextWithLogger(libCommons.ContextWithHeaderID(context.Background(), requestID), logger)
	msgCtx = libOpentelemetry.ExtractTraceContextFromQueueHeaders(msgCtx, message.Headers)

	tracer := pkg.NewTracerFromContext(msgCtx)

	msgCtx, span := tracer.Start(msgCtx, "repository.rabbitmq.process_message")
	defer span.End()

	retryCount := getRetryCount(message)

	span.SetAttributes(
		attribute.String("app.request.rabbitmq.consumer.request_id", requestID),
		attribute.String("app.request.rabbitmq.consumer.queue", queue),
		attribute.Int("app.request.rabbitmq.consumer.retry_count", retryCount),
	)

	logger.Infof("Worker %d: Processing message from %s (attempt %d)", workerID, queue, retryCount+1)

	if err := runHandler(msgCtx, handler, message.Body); err != nil {
		logger.Errorf("Worker %d: Error processing message from %s: %v", workerID, queue, err)
		libOpentelemetry.HandleSpanError(&span, "Error processing message", err)

		cr.handleFailedMessage(ctx, workerID, ch, queue, message, err, retryCount, &span)

		return
	}

	if err := message.Ack(false); err != nil {
		logger.Errorf("Worker %d: Failed to ack message from %s: %v", workerID, queue, err)
	}
}

func runHandler(ctx context.Context, handler pkgRabbitmq.QueueHandlerFunc, body []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v\n%s", r, debug.Stack())
		}
	}()

	return handler(ctx, body)
}

// handleFailedMessage dead-letters non-retryable and exhausted messages. Otherwise it
// republishes the body with an incremented retry header after a backoff, then acks the
// original; if republishing fails the original is requeued as is.
func (cr *ConsumerRoutes) handleFailedMessage(ctx context.Context, workerID int, ch deliveryChannel, queue string, message amqp091.Delivery, err error, retryCount int, span *trace.Span) {
	if !isRetryable(err) {
		cr.Infof("Worker %d: Non-retryable error for %s, sending to DLQ: %v", workerID, queue, err)
		libOpentelemetry.HandleSpanBusinessErrorEvent(span, "Non-retryable error, routing to DLQ", err)

		_ = message.Nack(false, false)

		return
	}

	if retryCount >= constant.MaxMessageRetries {
		cr.Errorf("Worker %d: Max retries (%d) exceeded for %s, sending to DLQ: %v", workerID, constant.MaxMessageRetries, queue, err)

		_ = message.Nack(false, false)

		return
	}

	backoff := pkg.ExponentialBackoff(retryCount, constant.RetryInitialBackoff, constant.RetryMaxBackoff, constant.RetryJitterMax)

	cr.Infof("Worker %d: Retrying message from %s in %v (attempt %d/%d)", workerID, queue, backoff, retryCount+1, constant.MaxMessageRetries)

	cr.sleepFunc(ctx, backoff)

	pubCtx, cancel := context.WithTimeout(context.Background(), republishTimeout)
	defer cancel()

	if pubErr := ch.PublishWithContext(pubCtx, "", queue, false, false, retryPublishing(message, retryCount+1, err)); pubErr != nil {
		cr.Errorf("Worker %d: Failed to republish message to %s, requeueing: %v", workerID, queue, pubErr)

		_ = message.Nack(false, true)

		return
	}

	_ = message.Ack(false)
}

// retryPublishing copies message with the retry count and failure reason headers set.
func retryPublishing(message amqp091.Delivery, attempt int, cause error) amqp091.Publishing {
	headers := amqp091.Table{}
	for k, v := range message.Headers {
		headers[k] = v
	}

	headers[constant.RetryCountHeader] = int32(attempt)
	headers[constant.RetryFailureReasonHeader] = truncate(cause.Error(), 256)

	return amqp091.Publishing{
		Headers:       headers,
		ContentType:   message.ContentType,
		DeliveryMode:  amqp091.Persistent,
		CorrelationId: message.CorrelationId,
		MessageId:     message.MessageId,
		Timestamp:     time.Now().UTC(),
		Type:          message.Type,
		Body:          message.Body,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}

// isRetryable reports whether err might succeed on another attempt.
// THB business errors and validation failures never do.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if strings.Contains(err.Error(), "THB-") {
		return false
	}

	var (
		validationErr    pkg.ValidationError
		notFoundErr      pkg.EntityNotFoundError
		knownFieldsErr   pkg.ValidationKnownFieldsError
		unknownFieldsErr pkg.ValidationUnknownFieldsError
		unprocessableErr pkg.UnprocessableOperationError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &knownFieldsErr),
		errors.As(err, &unknownFieldsErr),
		errors.As(err, &unprocessableErr):
		return false
	}

	return true
}

// getRetryCount reads the retry header; missing, negative or non-numeric values count as zero.
func getRetryCount(msg amqp091.Delivery) int {
	var n int64

	switch v := msg.Headers[constant.RetryCountHeader].(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		n = int64(v)
	default:
		return 0
	}

	if n < 0 {
		return 0
	}

	return int(n)
}
