// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package pongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dlt-talenthub/talenthub/pkg/constant"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
	libOpentelemetry "github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/flosch/pongo2/v6"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUnknownEventType is returned for events without a registered template.
var ErrUnknownEventType = errors.New("no notification template for event type")

// Rendered is the text of one notification.
type Rendered struct {
	Title string
	Body  string
	Link  string
}

// Template holds the raw pongo2 sources of one notification kind.
type Template struct {
	Title string
	Body  string
	Link  string
}

// DefaultTemplates are the notification texts keyed by event type.
var DefaultTemplates = map[string]Template{
	constant.EventApplicationSubmitted: {
		Title: `New application for {{ jobTitle }}`,
		Body:  `{{ talentName|default:"A talent" }} applied to {{ jobTitle }}.`,
		Link:  `/applications/{{ applicationId }}`,
	},
	constant.EventApplicationStatusChanged: {
		Title: `Your application was {{ status|status_label }}`,
		Body:  `Your application to {{ jobTitle }} is now {{ status|status_label }}.{% if note %} Note: {{ note }}{% endif %}`,
		Link:  `/applications/{{ applicationId }}`,
	},
	constant.EventJobClosed: {
		Title: `{{ jobTitle }} is closed`,
		Body:  `The position {{ jobTitle }} is no longer accepting applications.`,
		Link:  `/jobs/{{ jobId }}`,
	},
}

type compiled struct {
	title *pongo2.Template
	body  *pongo2.Template
	link  *pongo2.Template
}

// NotificationRenderer renders notification texts from precompiled templates.
type NotificationRenderer struct {
	templates map[string]compiled
}

// NewNotificationRenderer compiles templates. A nil map uses DefaultTemplates.
func NewNotificationRenderer(templates map[string]Template) (*NotificationRenderer, error) {
	if templates == nil {
		templates = DefaultTemplates
	}

	r := &NotificationRenderer{templates: make(map[string]compiled, len(templates))}

	for eventType, t := range templates {
		var c compiled

		var err error

		if c.title, err = pongo2.FromString(t.Title); err != nil {
			return nil, fmt.Errorf("compiling %s title: %w", eventType, err)
		}

		if c.body, err = pongo2.FromString(t.Body); err != nil {
			return nil, fmt.Errorf("compiling %s body: %w", eventType, err)
		}

		if c.link, err = pongo2.FromString(t.Link); err != nil {
			return nil, fmt.Errorf("compiling %s link: %w", eventType, err)
		}

		r.templates[eventType] = c
	}

	return r, nil
}

// Supports reports whether eventType has a template.
func (r *NotificationRenderer) Supports(eventType string) bool {
	_, ok := r.templates[eventType]

	return ok
}

// Render executes the templates of eventType against data.
func (r *NotificationRenderer) Render(ctx context.Context, eventType string, data map[string]string) (Rendered, error) {
	logger, tracer, _, _ := libCommons.NewTrackingFromContext(ctx)

	_, span := tracer.Start(ctx, "pongo.render_notification")
	defer span.End()

	span.SetAttributes(attribute.String("app.request.event_type", eventType))

	c, ok := r.templates[eventType]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}

	pongoCtx := make(pongo2.Context, len(data))
	for k, v := range data {
		pongoCtx[k] = v
	}

	var out Rendered

	for _, part := range []struct {
		tpl  *pongo2.Template
		dest *string
	}{
		{c.title, &out.Title},
		{c.body, &out.Body},
		{c.link, &out.Link},
	} {
		text, err := part.tpl.Execute(pongoCtx)
		if err != nil {
			libOpentelemetry.HandleSpanError(&span, "Failed to execute notification template", err)
			logger.Errorf("Error executing %s template: %v", eventType, err)

			return Rendered{}, err
		}

		*part.dest = strings.TrimSpace(text)
	}

	return out, nil
}
