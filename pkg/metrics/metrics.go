// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// ResourceAttribute is the attribute key that segments list requests by resource.
const ResourceAttribute = "resource"

// Metrics holds the TalentHub OTel instruments.
// All fields are non-nil after NewMetrics or NoopMetrics.
type Metrics struct {
	// JobsPostedTotal counts job postings created.
	JobsPostedTotal metric.Int64Counter

	// ApplicationsSubmittedTotal counts applications submitted by talents.
	ApplicationsSubmittedTotal metric.Int64Counter

	// NotificationsDeliveredTotal counts notifications persisted by the worker, segmented by event type.
	NotificationsDeliveredTotal metric.Int64Counter

	// ListRequestsTotal counts paginated list requests, segmented by resource.
	ListRequestsTotal metric.Int64Counter
}

// NewMetrics registers the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	jobsPosted, err := meter.Int64Counter(
		"jobs_posted_total",
		metric.WithDescription("Job postings created"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create jobs_posted_total counter: %w", err)
	}

	applicationsSubmitted, err := meter.Int64Counter(
		"applications_submitted_total",
		metric.WithDescription("Applications submitted"),
		metric.WithUnit("{application}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create applications_submitted_total counter: %w", err)
	}

	notificationsDelivered, err := meter.Int64Counter(
		"notifications_delivered_total",
		metric.WithDescription("In-app notifications delivered"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create notifications_delivered_total counter: %w", err)
	}

	listRequests, err := meter.Int64Counter(
		"list_requests_total",
		metric.WithDescription("Paginated list requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create list_requests_total counter: %w", err)
	}

	return &Metrics{
		JobsPostedTotal:             jobsPosted,
		ApplicationsSubmittedTotal:  applicationsSubmitted,
		NotificationsDeliveredTotal: notificationsDelivered,
		ListRequestsTotal:           listRequests,
	}, nil
}

// NoopMetrics returns a Metrics backed by no-op instruments, used when telemetry is disabled.
func NoopMetrics() *Metrics {
	meter := noop.NewMeterProvider().Meter("noop")

	// noop meter never returns errors
	jobsPosted, _ := meter.Int64Counter("jobs_posted_total")
	applicationsSubmitted, _ := meter.Int64Counter("applications_submitted_total")
	notificationsDelivered, _ := meter.Int64Counter("notifications_delivered_total")
	listRequests, _ := meter.Int64Counter("list_requests_total")

	return &Metrics{
		JobsPostedTotal:             jobsPosted,
		ApplicationsSubmittedTotal:  applicationsSubmitted,
		NotificationsDeliveredTotal: notificationsDelivered,
		ListRequestsTotal:           listRequests,
	}
}

// RecordListRequest increments list_requests_total for resource.
func (m *Metrics) RecordListRequest(ctx context.Context, resource string) {
	if m == nil {
		return
	}

	m.ListRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(ResourceAttribute, resource)))
}

// RecordNotificationDelivered increments notifications_delivered_total for eventType.
func (m *Metrics) RecordNotificationDelivered(ctx context.Context, eventType string) {
	if m == nil {
		return
	}

	m.NotificationsDeliveredTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("type", eventType)))
}

// RecordJobPosted increments jobs_posted_total.
func (m *Metrics) RecordJobPosted(ctx context.Context) {
	if m == nil {
		return
	}

	m.JobsPostedTotal.Add(ctx, 1)
}

// RecordApplicationSubmitted increments applications_submitted_total.
func (m *Metrics) RecordApplicationSubmitted(ctx context.Context) {
	if m == nil {
		return
	}

	m.ApplicationsSubmittedTotal.Add(ctx, 1)
}
