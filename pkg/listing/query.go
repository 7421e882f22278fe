// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

// Package listing is the client side of the paginated list contract: the query
// state, the HTTP fetch and the pager controller that applies results.
package listing

import (
	"maps"
	"net/url"
	"strconv"
	"strings"
)

// Query is the full state of a list request. It is a value: the With* methods
// return modified copies and never touch the receiver.
type Query struct {
	// Resource is the collection path, e.g. "/v1/jobs".
	Resource string
	// Key is the name of the items array inside the response data object.
	Key     string
	Page    int
	Limit   int
	Filters map[string]string
}

// NewQuery starts a query on page 1 with the server default limit.
func NewQuery(resource, key string) Query {
	return Query{Resource: resource, Key: key, Page: 1}
}

// WithPage returns a copy of q pointing at page n.
func (q Query) WithPage(n int) Query {
	out := q.clone()
	out.Page = n

	return out
}

// WithLimit returns a copy of q with a new page size.
func (q Query) WithLimit(n int) Query {
	out := q.clone()
	out.Limit = n

	return out
}

// WithFilter returns a copy of q with filter key set to value. An empty value removes the filter.
func (q Query) WithFilter(key, value string) Query {
	out := q.clone()

	if value == "" {
		delete(out.Filters, key)

		return out
	}

	if out.Filters == nil {
		out.Filters = make(map[string]string, 1)
	}

	out.Filters[key] = value

	return out
}

func (q Query) clone() Query {
	out := q
	if q.Filters != nil {
		out.Filters = maps.Clone(q.Filters)
	}

	return out
}

// Request is the wire form of a Query.
type Request struct {
	Path   string
	Params url.Values
}

// String renders path and encoded query, e.g. "/v1/jobs?limit=12&page=2".
func (r Request) String() string {
	if len(r.Params) == 0 {
		return r.Path
	}

	return r.Path + "?" + r.Params.Encode()
}

// BuildRequest turns q into a request. Zero page and limit are left for the server
// to default. Filters named page or limit are ignored in favour of the explicit fields.
func BuildRequest(q Query) Request {
	params := url.Values{}

	for k, v := range q.Filters {
		k = strings.TrimSpace(k)
		if k == "" || k == "page" || k == "limit" || v == "" {
			continue
		}

		params.Set(k, v)
	}

	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	return Request{Path: q.Resource, Params: params}
}
