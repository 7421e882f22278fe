// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/pagination"

	"github.com/go-resty/resty/v2"
)

// ErrListFetchFailed is returned for any transport, server or decoding failure of a list request.
var ErrListFetchFailed = errors.New("list fetch failed")

// FetchError carries the details of a failed list request. It matches ErrListFetchFailed with errors.Is.
type FetchError struct {
	Request    Request
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	var b strings.Builder

	b.WriteString(ErrListFetchFailed.Error())
	b.WriteString(": GET ")
	b.WriteString(e.Request.String())

	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}

	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrListFetchFailed}
	}

	return []error{ErrListFetchFailed, e.Err}
}

// Result is one decoded page.
type Result[T any] struct {
	Items      []T
	Pagination pagination.Descriptor
}

// Window is the pager for this page.
func (r Result[T]) Window() pagination.Window {
	return r.Pagination.Window()
}

type envelope struct {
	Data map[string]json.RawMessage `json:"data"`
}

type apiError struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Client issues list requests against a TalentHub API.
type Client struct {
	http *resty.Client
}

// ClientOption configures a Client.
type ClientOption func(*resty.Client)

// WithBearerToken authenticates every request with an access token.
func WithBearerToken(token string) ClientOption {
	return func(c *resty.Client) {
		if token != "" {
			c.SetAuthToken(token)
		}
	}
}

// WithTimeout bounds each request. Requests have no deadline unless this is set.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// NewClient builds a client rooted at baseURL, e.g. "http://localhost:4000".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")

	for _, opt := range opts {
		opt(rc)
	}

	return &Client{http: rc}
}

// Fetch requests one page described by q and decodes items of type T.
func Fetch[T any](ctx context.Context, c *Client, q Query) (Result[T], error) {
	req := BuildRequest(q)

	var (
		body   envelope
		errRes apiError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(req.Params).
		SetResult(&body).
		SetError(&errRes).
		Get(req.Path)
	if err != nil {
		return Result[T]{}, &FetchError{Request: req, Err: err}
	}

	if resp.IsError() {
		return Result[T]{}, &FetchError{
			Request:    req,
			StatusCode: resp.StatusCode(),
			Code:       errRes.Code,
			Message:    errRes.Message,
		}
	}

	return decode[T](req, q.Key, body)
}

func decode[T any](req Request, key string, body envelope) (Result[T], error) {
	rawItems, ok := body.Data[key]
	if !ok {
		return Result[T]{}, &FetchError{Request: req, Err: fmt.Errorf("response has no %q array", key)}
	}

	rawPagination, ok := body.Data["pagination"]
	if !ok {
		return Result[T]{}, &FetchError{Request: req, Err: errors.New("response has no pagination")}
	}

	var res Result[T]

	if err := json.Unmarshal(rawItems, &res.Items); err != nil {
		return Result[T]{}, &FetchError{Request: req, Err: err}
	}

	if err := json.Unmarshal(rawPagination, &res.Pagination); err != nil {
		return Result[T]{}, &FetchError{Request: req, Err: err}
	}

	if res.Items == nil {
		res.Items = []T{}
	}

	return res, nil
}

// Fetcher binds a client and an item type into a function usable by a Controller.
func Fetcher[T any](c *Client) func(context.Context, Query) (Result[T], error) {
	return func(ctx context.Context, q Query) (Result[T], error) {
		return Fetch[T](ctx, c, q)
	}
}
