// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package rabbitmq

import (
	"time"

	"github.com/dlt-talenthub/talenthub/pkg"
	"github.com/dlt-talenthub/talenthub/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	libRabbitmq "github.com/LerianStudio/lib-commons/v3/commons/rabbitmq"
)

// Reconnector is the part of a broker connection the monitor needs.
type Reconnector interface {
	Alive() bool
	Reconnect() error
}

// amqpReconnector adapts a lib-commons connection to Reconnector.
type amqpReconnector struct {
	conn *libRabbitmq.RabbitMQConnection
}

func (r amqpReconnector) Alive() bool {
	if r.conn == nil || !r.conn.Connected {
		return false
	}

	return r.conn.Connection != nil && !r.conn.Connection.IsClosed()
}

func (r amqpReconnector) Reconnect() error {
	return r.conn.EnsureChannel()
}

// tickerFactory is swapped in tests.
var tickerFactory = func(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// ConnectionMonitor re-establishes a dropped broker connection in the background,
// so /ready recovers even when nothing is being published.
type ConnectionMonitor struct {
	target   Reconnector
	interval time.Duration
	logger   log.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewConnectionMonitor watches a lib-commons RabbitMQ connection.
func NewConnectionMonitor(conn *libRabbitmq.RabbitMQConnection, logger log.Logger) *ConnectionMonitor {
	return newConnectionMonitor(amqpReconnector{conn: conn}, constant.ConnectionMonitorInterval, logger)
}

func newConnectionMonitor(target Reconnector, interval time.Duration, logger log.Logger) *ConnectionMonitor {
	return &ConnectionMonitor{
		target:   target,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the check loop.
func (m *ConnectionMonitor) Start() {
	pkg.GoNamed(m.logger, "rabbitmq-connection-monitor", m.loop)
}

// Stop ends the loop and waits for it to return. It must be called at most once, after Start.
func (m *ConnectionMonitor) Stop() {
	close(m.stop)
	<-m.done
}

func (m *ConnectionMonitor) loop() {
	defer close(m.done)

	ticks, stopTicker := tickerFactory(m.interval)
	defer stopTicker()

	for {
		select {
		case <-m.stop:
			m.logger.Info("RabbitMQ connection monitor stopped")
			return
		case <-ticks:
			m.check()
		}
	}
}

// check reports whether the connection was healthy after the attempt.
func (m *ConnectionMonitor) check() bool {
	if m.target.Alive() {
		return true
	}

	m.logger.Warn("RabbitMQ connection lost, reconnecting")

	if err := m.target.Reconnect(); err != nil {
		m.logger.Errorf("RabbitMQ reconnection failed, next attempt in %v: %v", m.interval, err)
		return false
	}

	m.logger.Info("RabbitMQ connection restored")

	return true
}
