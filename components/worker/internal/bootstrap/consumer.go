// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dlt-talenthub/talenthub/components/worker/internal/services"
	"github.com/dlt-talenthub/talenthub/pkg/rabbitmq"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
)

// MultiQueueConsumer binds queue handlers to the consumer routes.
type MultiQueueConsumer struct {
	consumerRoutes rabbitmq.ConsumerRepository
	UseCase        *services.UseCase
}

// NewMultiQueueConsumer registers the notification queue handler.
func NewMultiQueueConsumer(routes rabbitmq.ConsumerRepository, useCase *services.UseCase, notificationQueue string) *MultiQueueConsumer {
	consumer := &MultiQueueConsumer{
		consumerRoutes: routes,
		UseCase:        useCase,
	}

	routes.Register(notificationQueue, consumer.handlerDeliverNotification)

	return consumer
}

// errConsumersStopped means every delivery channel closed without a shutdown signal,
// usually after a broker connection loss. The process exits so it can be restarted.
var errConsumersStopped = errors.New("all consumers stopped before shutdown")

// Run starts every consumer and blocks until SIGINT/SIGTERM, then waits for the workers.
func (mq *MultiQueueConsumer) Run(_ *libCommons.Launcher) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mq.run(ctx)
}

func (mq *MultiQueueConsumer) run(ctx context.Context) error {
	wg := &sync.WaitGroup{}

	if err := mq.consumerRoutes.RunConsumers(ctx, wg); err != nil {
		return err
	}

	workersDone := make(chan struct{})

	go func() {
		wg.Wait()
		close(workersDone)
	}()

	select {
	case <-ctx.Done():
		<-workersDone

		return nil
	case <-workersDone:
		if ctx.Err() != nil {
			return nil
		}

		return errConsumersStopped
	}
}

func (mq *MultiQueueConsumer) handlerDeliverNotification(ctx context.Context, body []byte) error {
	return mq.UseCase.DeliverNotification(ctx, body)
}
