// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"

	libLog "github.com/LerianStudio/lib-commons/v3/commons/log"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settlement records how a delivery was finished.
type settlement struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcknowledger struct {
	mu      sync.Mutex
	settled map[uint64]settlement
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{settled: make(map[uint64]settlement)}
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.settled[tag] = settlement{acked: true}

	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.settled[tag] = settlement{nacked: true, requeue: requeue}

	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func (a *fakeAcknowledger) get(tag uint64) (settlement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.settled[tag]

	return s, ok
}

type published struct {
	exchange string
	key      string
	msg      amqp091.Publishing
}

type fakeChannel struct {
	mu         sync.Mutex
	deliveries chan amqp091.Delivery
	published  []published
	publishErr error
	qosErr     error
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{deliveries: make(chan amqp091.Delivery, 8)}
}

func (c *fakeChannel) Qos(int, int, bool) error { return c.qosErr }

func (c *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp091.Table) (<-chan amqp091.Delivery, error) {
	return c.deliveries, nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.publishErr != nil {
		return c.publishErr
	}

	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})

	return nil
}

func (c *fakeChannel) publishedMessages() []published {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]published(nil), c.published...)
}

func newTestRoutes(ch *fakeChannel) *ConsumerRoutes {
	cr := newConsumerRoutes(func() (deliveryChannel, error) { return ch, nil }, 1, &libLog.NoneLogger{})
	cr.sleepFunc = func(context.Context, time.Duration) {}

	return cr
}

func delivery(ack amqp091.Acknowledger, tag uint64, headers amqp091.Table) amqp091.Delivery {
	return amqp091.Delivery{
		Acknowledger: ack,
		DeliveryTag:  tag,
		Headers:      headers,
		ContentType:  "application/json",
		Body:         []byte(`{"type":"job.closed"}`),
	}
}

func TestConsumerRoutes_ProcessMessage(t *testing.T) {
	t.Parallel()

	businessErr := pkg.ValidateBusinessError(constant.ErrBadRequest, "NotificationEvent", "bad payload")

	tests := []struct {
		name          string
		handlerErr    error
		panics        bool
		headers       amqp091.Table
		publishErr    error
		want          settlement
		wantPublished bool
		wantAttempt   int32
	}{
		{
			name: "success acks",
			want: settlement{acked: true},
		},
		{
			name:       "business error dead-letters",
			handlerErr: businessErr,
			want:       settlement{nacked: true},
		},
		{
			name:          "transient error republishes with retry header",
			handlerErr:    errors.New("mongo unavailable"),
			want:          settlement{acked: true},
			wantPublished: true,
			wantAttempt:   1,
		},
		{
			name:          "later attempt increments existing header",
			handlerErr:    errors.New("mongo unavailable"),
			headers:       amqp091.Table{constant.RetryCountHeader: int32(3)},
			want:          settlement{acked: true},
			wantPublished: true,
			wantAttempt:   4,
		},
		{
			name:       "exhausted retries dead-letter",
			handlerErr: errors.New("mongo unavailable"),
			headers:    amqp091.Table{constant.RetryCountHeader: int64(constant.MaxMessageRetries)},
			want:       settlement{nacked: true},
		},
		{
			name:       "republish failure requeues original",
			handlerErr: errors.New("mongo unavailable"),
			publishErr: errors.New("channel closed"),
			want:       settlement{nacked: true, requeue: true},
		},
		{
			name:          "handler panic is retried",
			panics:        true,
			want:          settlement{acked: true},
			wantPublished: true,
			wantAttempt:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ch := newFakeChannel()
			ch.publishErr = tt.publishErr
			cr := newTestRoutes(ch)
			ack := newFakeAcknowledger()

			handler := func(context.Context, []byte) error {
				if tt.panics {
					panic("boom")
				}

				return tt.handlerErr
			}

			cr.processMessage(context.Background(), 0, ch, "talenthub.notifications", handler, delivery(ack, 7, tt.headers))

			got, ok := ack.get(7)
			require.True(t, ok, "delivery was not settled")
			assert.Equal(t, tt.want, got)

			msgs := ch.publishedMessages()
			if !tt.wantPublished {
				assert.Empty(t, msgs)
				return
			}

			require.Len(t, msgs, 1)
			assert.Equal(t, "", msgs[0].exchange)
			assert.Equal(t, "talenthub.notifications", msgs[0].key)
			assert.Equal(t, tt.wantAttempt, msgs[0].msg.Headers[constant.RetryCountHeader])
			assert.NotEmpty(t, msgs[0].msg.Headers[constant.RetryFailureReasonHeader])
			assert.Equal(t, []byte(`{"type":"job.closed"}`), msgs[0].msg.Body)
		})
	}
}

func TestConsumerRoutes_RunConsumers(t *testing.T) {
	t.Parallel()

	ch := newFakeChannel()
	cr := newTestRoutes(ch)
	cr.numWorkers = 3

	var (
		mu     sync.Mutex
		bodies []string
	)

	cr.Register("talenthub.notifications", func(_ context.Context, body []byte) error {
		mu.Lock()
		defer mu.Unlock()

		bodies = append(bodies, string(body))

		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	require.NoError(t, cr.RunConsumers(ctx, wg))

	ack := newFakeAcknowledger()
	for tag := uint64(1); tag <= 5; tag++ {
		d := delivery(ack, tag, nil)
		d.Body = []byte(fmt.Sprintf("msg-%d", tag))
		ch.deliveries <- d
	}

	require.Eventually(t, func() bool {
		for tag := uint64(1); tag <= 5; tag++ {
			if _, ok := ack.get(tag); !ok {
				return false
			}
		}

		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()

	assert.ElementsMatch(t, []string{"msg-1", "msg-2", "msg-3", "msg-4", "msg-5"}, bodies)
}

func TestConsumerRoutes_RunConsumersClosedChannelStopsWorkers(t *testing.T) {
	t.Parallel()

	ch := newFakeChannel()
	cr := newTestRoutes(ch)
	cr.Register("q", func(context.Context, []byte) error { return nil })

	wg := &sync.WaitGroup{}
	require.NoError(t, cr.RunConsumers(context.Background(), wg))

	close(ch.deliveries)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("workers did not stop after the delivery channel closed")
	}
}

func TestConsumerRoutes_RunConsumersQosError(t *testing.T) {
	t.Parallel()

	ch := newFakeChannel()
	ch.qosErr = errors.New("channel closed")

	cr := newTestRoutes(ch)
	cr.Register("q", func(context.Context, []byte) error { return nil })

	err := cr.RunConsumers(context.Background(), &sync.WaitGroup{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setting qos for q")
}

func TestNewConsumerRoutes_DefaultWorkers(t *testing.T) {
	t.Parallel()

	cr := newConsumerRoutes(nil, 0, &libLog.NoneLogger{})
	assert.Equal(t, constant.DefaultWorkerCount, cr.numWorkers)
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("insert: %w", context.DeadlineExceeded), false},
		{"business code in message", errors.New("THB-0013 - not found"), false},
		{"validation error", pkg.ValidationError{Message: "bad"}, false},
		{"not found", pkg.EntityNotFoundError{Message: "gone"}, false},
		{"unprocessable", pkg.UnprocessableOperationError{Message: "no"}, false},
		{"network", errors.New("connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestGetRetryCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"missing", nil, 0},
		{"int32", int32(2), 2},
		{"int64", int64(4), 4},
		{"int", 3, 3},
		{"float64", float64(1), 1},
		{"negative", int32(-3), 0},
		{"string", "2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := amqp091.Table{}
			if tt.value != nil {
				headers[constant.RetryCountHeader] = tt.value
			}

			assert.Equal(t, tt.want, getRetryCount(amqp091.Delivery{Headers: headers}))
		})
	}
}

func TestRetryPublishing_KeepsHeadersAndTruncatesReason(t *testing.T) {
	t.Parallel()

	msg := amqp091.Delivery{
		Headers:   amqp091.Table{"x-request-id": "req-1"},
		MessageId: "m-1",
		Body:      []byte("payload"),
	}

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}

	pub := retryPublishing(msg, 2, errors.New(string(long)))

	assert.Equal(t, "req-1", pub.Headers["x-request-id"])
	assert.Equal(t, int32(2), pub.Headers[constant.RetryCountHeader])
	assert.Len(t, pub.Headers[constant.RetryFailureReasonHeader], 256)
	assert.Equal(t, "m-1", pub.MessageId)
	assert.Equal(t, amqp091.Persistent, pub.DeliveryMode)
	assert.NotContains(t, msg.Headers, constant.RetryCountHeader, "original headers are not mutated")
}
