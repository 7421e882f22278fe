// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package listing

import (
	"context"
	"sync"

	"github.com/dlt-talenthub/talenthub/pkg"
)

// FetchFunc loads one page for a query.
type FetchFunc[T any] func(ctx context.Context, q Query) (Result[T], error)

// Requested is emitted every time the controller issues a fetch.
type Requested struct {
	Seq   uint64
	Query Query
}

// View is what the pager currently displays.
type View[T any] struct {
	// Query is the query whose response is displayed.
	Query  Query
	Result Result[T]
	// Seq is the sequence number of the displayed response, zero before the first one.
	Seq uint64
}

type controllerOptions struct {
	staleGuard  bool
	notify      func(error)
	onRequested func(Requested)
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerOptions)

// WithStaleResponseGuard makes the controller drop any response older than the one on display.
// Without it the last response to arrive is applied, whatever request it answers.
func WithStaleResponseGuard() ControllerOption {
	return func(o *controllerOptions) {
		o.staleGuard = true
	}
}

// WithNotifier receives every failed fetch, typically to show a transient message.
func WithNotifier(fn func(error)) ControllerOption {
	return func(o *controllerOptions) {
		o.notify = fn
	}
}

// WithRequestListener observes the list requested events.
func WithRequestListener(fn func(Requested)) ControllerOption {
	return func(o *controllerOptions) {
		o.onRequested = fn
	}
}

// Controller drives a paginated list. Each page change issues one asynchronous fetch;
// in-flight requests are never cancelled or de-duplicated.
type Controller[T any] struct {
	fetch FetchFunc[T]
	opts  controllerOptions

	mu      sync.Mutex
	query   Query
	issued  uint64
	view    View[T]
	onApply func(View[T])

	wg sync.WaitGroup
}

// NewController creates a controller starting from query q. Nothing is fetched until
// Refresh or OnPageChange is called.
func NewController[T any](fetch FetchFunc[T], q Query, opts ...ControllerOption) *Controller[T] {
	c := &Controller[T]{fetch: fetch, query: q}

	for _, opt := range opts {
		opt(&c.opts)
	}

	return c
}

// OnApply registers the render hook called with every view the controller applies.
// The hook runs while the controller is locked and must not call back into it.
func (c *Controller[T]) OnApply(fn func(View[T])) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onApply = fn
}

// OnPageChange re-issues the current query for page n and returns the request sequence number.
func (c *Controller[T]) OnPageChange(ctx context.Context, n int) uint64 {
	return c.request(ctx, func(q Query) Query { return q.WithPage(n) })
}

// OnFilterChange sets a filter, resets to the first page and fetches.
func (c *Controller[T]) OnFilterChange(ctx context.Context, key, value string) uint64 {
	return c.request(ctx, func(q Query) Query { return q.WithFilter(key, value).WithPage(1) })
}

// Refresh re-issues the current query unchanged.
func (c *Controller[T]) Refresh(ctx context.Context) uint64 {
	return c.request(ctx, func(q Query) Query { return q })
}

// View returns what is currently displayed.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.view
}

// Query returns the most recently requested query.
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.query
}

// Wait blocks until every issued fetch has completed and been applied or dropped.
func (c *Controller[T]) Wait() {
	c.wg.Wait()
}

func (c *Controller[T]) request(ctx context.Context, next func(Query) Query) uint64 {
	c.mu.Lock()
	c.query = next(c.query)
	c.issued++
	ev := Requested{Seq: c.issued, Query: c.query}
	c.mu.Unlock()

	if c.opts.onRequested != nil {
		c.opts.onRequested(ev)
	}

	// The fetch outlives the caller: page changes are never cancelled.
	fetchCtx := context.WithoutCancel(ctx)

	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		res, err := c.fetch(fetchCtx, ev.Query)
		c.apply(fetchCtx, ev, res, err)
	}()

	return ev.Seq
}

func (c *Controller[T]) apply(ctx context.Context, ev Requested, res Result[T], err error) {
	logger := pkg.NewLoggerFromContext(ctx)

	c.mu.Lock()
	shown := c.view.Seq

	if c.opts.staleGuard && ev.Seq < shown {
		c.mu.Unlock()
		logger.Debugf("Dropping stale response for %s (seq %d, showing %d)", BuildRequest(ev.Query), ev.Seq, shown)

		return
	}

	if err != nil {
		c.mu.Unlock()
		logger.Errorf("Failed to fetch %s: %v", BuildRequest(ev.Query), err)

		if c.opts.notify != nil {
			c.opts.notify(err)
		}

		return
	}

	c.view = View[T]{Query: ev.Query, Result: res, Seq: ev.Seq}

	if c.onApply != nil {
		c.onApply(c.view)
	}

	c.mu.Unlock()
}
