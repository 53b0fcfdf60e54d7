package storeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefinder/internal/domain"
	"storefinder/internal/storeindex"
)

func directory(t *testing.T) *httptest.Server {
	t.Helper()
	stores, err := storeindex.SampleStores()
	require.NoError(t, err)
	ix, err := storeindex.New(stores, 0)
	require.NoError(t, err)

	srv := httptest.NewServer(storeindex.NewHandler(ix, nil))
	t.Cleanup(srv.Close)
	return srv
}

func stub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_RejectsBadEndpoint(t *testing.T) {
	_, err := NewClient("ftp://example.com/task2")
	assert.Error(t, err)

	_, err = NewClient("://nope")
	assert.Error(t, err)
}

func TestURL_EncodesTrimmedQuery(t *testing.T) {
	c, err := NewClient("http://localhost:8888/task2")
	require.NoError(t, err)

	raw := c.URL(domain.FetchRequest{Query: "  al1 2&x ", Offset: 3, PageSize: 3})
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/task2", u.Path)
	assert.Equal(t, "al1 2&x", u.Query().Get("q"))
	assert.Equal(t, "3", u.Query().Get("start_with"))
	assert.Equal(t, "3", u.Query().Get("n"))
}

func TestFetch_Pages(t *testing.T) {
	srv := directory(t)
	c, err := NewClient(srv.URL + "/task2")
	require.NoError(t, err)

	page, err := c.Fetch(context.Background(), domain.FetchRequest{Query: "lon", PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalCount)
	require.Len(t, page.Portion, 3)
	assert.Equal(t, "London_Camden", page.Portion[0].Name)

	page, err = c.Fetch(context.Background(), domain.FetchRequest{Query: "lon", Offset: 6, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, []domain.Store{{Name: "London_Wembley", Postcode: "HA9 0WS"}}, page.Portion)
}

func TestFetch_NoSearchIsEmpty(t *testing.T) {
	srv := directory(t)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	page, err := c.Fetch(context.Background(), domain.FetchRequest{Query: "   ", PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalCount)
	assert.NotNil(t, page.Portion)
	assert.Empty(t, page.Portion)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		req    domain.FetchRequest
		kind   Kind
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   "boom",
			req:    domain.FetchRequest{Query: "br", PageSize: 3},
			kind:   KindStatus,
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   "<html>",
			req:    domain.FetchRequest{Query: "br", PageSize: 3},
			kind:   KindDecode,
		},
		{
			name:   "oversized page",
			status: http.StatusOK,
			body:   `{"portion":[{"name":"A","postcode":"1"},{"name":"B","postcode":"2"}],"total_count":9}`,
			req:    domain.FetchRequest{Query: "br", PageSize: 1},
			kind:   KindProtocol,
		},
		{
			name:   "page past total",
			status: http.StatusOK,
			body:   `{"portion":[{"name":"A","postcode":"1"}],"total_count":3}`,
			req:    domain.FetchRequest{Query: "br", Offset: 3, PageSize: 3},
			kind:   KindProtocol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := stub(t, tt.status, tt.body)
			c, err := NewClient(srv.URL)
			require.NoError(t, err)

			_, err = c.Fetch(context.Background(), tt.req)
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.True(t, errors.Is(err, &Error{Kind: tt.kind}))
			if tt.kind == KindStatus {
				assert.Equal(t, tt.status, apiErr.StatusCode)
				assert.Contains(t, err.Error(), "500")
			}
		})
	}
}

func TestFetch_Cancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err = c.Fetch(ctx, domain.FetchRequest{Query: "br", PageSize: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, errors.Is(err, &Error{Kind: KindNetwork}))
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(srv.URL, WithTimeout(30*time.Millisecond))
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), domain.FetchRequest{Query: "br", PageSize: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, &Error{Kind: KindNetwork}))
}
