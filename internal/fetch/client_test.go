package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/http/httptrace"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch_Success(t *testing.T) {
	var gotUA, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"status":{"indicator":"none"}}`))
	}))
	defer server.Close()

	client := NewClient()
	defer client.Close()

	resp := client.Fetch(context.Background(), server.URL, 5*time.Second)
	require.NoError(t, resp.Error)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"status":{"indicator":"none"}}`, resp.Body)
	assert.Equal(t, UserAgent, gotUA)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Greater(t, int64(resp.Latency), int64(0))
}

func TestClient_Fetch_HTTPErrorStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusNotFound, "Network error: Not Found"},
		{http.StatusInternalServerError, "Network error: Internal Server Error"},
		{http.StatusServiceUnavailable, "Network error: Service Unavailable"},
		{599, "Network error: HTTP 599"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			resp := NewClient().Fetch(context.Background(), server.URL, 5*time.Second)
			require.Error(t, resp.Error)
			assert.Equal(t, tt.want, resp.Error.Error())
			assert.Equal(t, tt.code, resp.StatusCode)
			assert.Empty(t, resp.Body)

			var fetchErr *Error
			require.True(t, errors.As(resp.Error, &fetchErr))
			assert.Equal(t, KindNetwork, fetchErr.Kind)
		})
	}
}

func TestClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	resp := NewClient().Fetch(context.Background(), server.URL, 50*time.Millisecond)
	require.Error(t, resp.Error)
	assert.Equal(t, "Network error: timed out", resp.Error.Error())
	assert.True(t, errors.Is(resp.Error, context.DeadlineExceeded))
}

func TestClient_Fetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	resp := NewClient().Fetch(context.Background(), addr, time.Second)
	require.Error(t, resp.Error)
	assert.True(t, strings.HasPrefix(resp.Error.Error(), "Network error: "), resp.Error.Error())
	assert.Zero(t, resp.StatusCode)
}

func TestClient_Fetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := NewClient().Fetch(ctx, server.URL, time.Second)
	require.Error(t, resp.Error)
	assert.Equal(t, "Network error: canceled", resp.Error.Error())
}

func TestClient_Fetch_InvalidUTF8(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer server.Close()

	resp := NewClient().Fetch(context.Background(), server.URL, time.Second)
	require.Error(t, resp.Error)
	assert.Equal(t, "response body is not valid UTF-8", resp.Error.Error())

	var fetchErr *Error
	require.True(t, errors.As(resp.Error, &fetchErr))
	assert.Equal(t, KindDecode, fetchErr.Kind)
}

func TestClient_Fetch_InvalidURL(t *testing.T) {
	resp := NewClient().Fetch(context.Background(), "://bad", time.Second)
	require.Error(t, resp.Error)
	assert.True(t, strings.HasPrefix(resp.Error.Error(), "Network error: "))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "network", KindNetwork.String())
	assert.Equal(t, "read", KindRead.String())
	assert.Equal(t, "decode", KindDecode.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

// TestClient_ConnectionReuse verifies that sequential fetches to the same
// host reuse pooled connections.
func TestClient_ConnectionReuse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient()

	var reusedCount int
	trace := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Reused {
				reusedCount++
			}
		},
	}

	const numRequests = 5
	for i := 0; i < numRequests; i++ {
		ctx := httptrace.WithClientTrace(context.Background(), trace)
		resp := client.Fetch(ctx, server.URL, 5*time.Second)
		if resp.Error != nil {
			t.Fatalf("request %d failed: %v", i, resp.Error)
		}
	}

	expectedMinReuse := numRequests - 2 // allow some tolerance
	if reusedCount < expectedMinReuse {
		t.Errorf("expected at least %d reused connections, got %d out of %d requests",
			expectedMinReuse, reusedCount, numRequests)
	}
}

// TestClient_Close verifies that Close() is safe to call and idempotent.
func TestClient_Close(t *testing.T) {
	client := NewClient()
	client.Close()
	client.Close()

	var nilClient *Client
	nilClient.Close()
}
