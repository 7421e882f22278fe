// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"

	"github.com/dlt-talenthub/talenthub/pkg/model"
)

// ProducerRepository publishes notification events to the broker.
//
//go:generate mockgen --destination=producer.mock.go --package=rabbitmq --copyright_file=../../COPYRIGHT . ProducerRepository
type ProducerRepository interface {
	Publish(ctx context.Context, exchange, key string, event model.NotificationEvent) error
}
