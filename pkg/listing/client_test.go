// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package listing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type job struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, WithBearerToken("token-123"))
}

func TestFetch_Success(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/jobs", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "engineering", r.URL.Query().Get("category"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"jobs":[{"id":"a","title":"Go Engineer"}],"pagination":{"page":2,"limit":1,"total":3,"pages":3,"hasNext":true,"hasPrev":true}}}`))
	})

	q := NewQuery("/v1/jobs", "jobs").WithPage(2).WithFilter("category", "engineering")

	res, err := Fetch[job](context.Background(), client, q)
	require.NoError(t, err)

	assert.Equal(t, []job{{ID: "a", Title: "Go Engineer"}}, res.Items)
	assert.Equal(t, 3, res.Pagination.Pages)
	assert.True(t, res.Pagination.HasNext)
	assert.Equal(t, "1 2 3", res.Window().String())
}

func TestFetch_EmptyListIsNotNil(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"jobs":null,"pagination":{"page":1,"limit":12,"total":0,"pages":0,"hasNext":false,"hasPrev":false}}}`))
	})

	res, err := Fetch[job](context.Background(), client, NewQuery("/v1/jobs", "jobs"))
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantCode   string
	}{
		{
			name: "server error with business code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"code":"THB-0022","title":"Pagination Limit Exceeded","message":"too many"}`))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "THB-0022",
		},
		{
			name: "missing resource key",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data":{"users":[],"pagination":{}}}`))
			},
		},
		{
			name: "missing pagination",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data":{"jobs":[]}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, tt.handler)

			_, err := Fetch[job](context.Background(), client, NewQuery("/v1/jobs", "jobs"))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrListFetchFailed)

			var fErr *FetchError
			require.True(t, errors.As(err, &fErr))
			assert.Equal(t, tt.wantStatus, fErr.StatusCode)
			assert.Equal(t, tt.wantCode, fErr.Code)
		})
	}
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := Fetch[job](context.Background(), NewClient(srv.URL), NewQuery("/v1/jobs", "jobs"))
	assert.ErrorIs(t, err, ErrListFetchFailed)
}
