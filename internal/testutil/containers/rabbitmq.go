// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package containers

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

const (
	RabbitMQUser     = "talenthub"
	RabbitMQPassword = "talenthub"

	defaultRabbitMQImage = "rabbitmq:4-management-alpine"
)

// RabbitMQContainer wraps a RabbitMQ testcontainer with connection info.
type RabbitMQContainer struct {
	*rabbitmq.RabbitMQContainer
	AmqpURL string
}

// StartRabbitMQ creates and starts a RabbitMQ container. An empty image uses rabbitmq:4-management-alpine.
func StartRabbitMQ(ctx context.Context, image string) (*RabbitMQContainer, error) {
	if image == "" {
		image = defaultRabbitMQImage
	}

	container, err := rabbitmq.Run(ctx,
		image,
		rabbitmq.WithAdminUsername(RabbitMQUser),
		rabbitmq.WithAdminPassword(RabbitMQPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("start rabbitmq container: %w", err)
	}

	amqpURL, err := container.AmqpURL(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("get rabbitmq amqp url: %w", err)
	}

	return &RabbitMQContainer{
		RabbitMQContainer: container,
		AmqpURL:           amqpURL,
	}, nil
}

// DeclareQueueWithDLQ declares queue and its dead letter queue queue+".dlq". Messages
// rejected without requeue on queue are routed to the dead letter queue through the default exchange.
func (r *RabbitMQContainer) DeclareQueueWithDLQ(queue string) error {
	conn, err := amqp091.Dial(r.AmqpURL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	dlq := queue + ".dlq"

	if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", dlq, err)
	}

	args := amqp091.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlq,
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", queue, err)
	}

	return nil
}
