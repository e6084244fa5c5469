package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mwalczyk/docdive"
	docdivehttp "github.com/mwalczyk/docdive/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>ok</html>"))
		}))
		defer srv.Close()

		f := docdivehttp.NewFetcher()
		body, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", string(body))
	})

	t.Run("sends accept header and rotates user agents", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var agents []string
		var accepts []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			agents = append(agents, r.Header.Get("User-Agent"))
			accepts = append(accepts, r.Header.Get("Accept"))
			mu.Unlock()
		}))
		defer srv.Close()

		f := docdivehttp.NewFetcher(
			docdivehttp.WithAccept("application/json"),
			docdivehttp.WithUserAgents([]string{"agent-one", "agent-two"}),
		)

		for range 3 {
			_, err := f.Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
		}

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"agent-one", "agent-two", "agent-one"}, agents)
		assert.Equal(t, []string{"application/json", "application/json", "application/json"}, accepts)
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := docdivehttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, docdive.ENOTFOUND, docdive.ErrorCode(err))
	})

	t.Run("maps 429 to rate limit with retry-after hint", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "120")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		f := docdivehttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, docdive.ERATELIMIT, docdive.ErrorCode(err))
		assert.Equal(t, 120*time.Second, docdive.RetryAfter(err))
	})

	t.Run("maps 401 and 403 to unauthorized", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))

			f := docdivehttp.NewFetcher()
			_, err := f.Fetch(context.Background(), srv.URL)
			srv.Close()

			require.Error(t, err)
			assert.Equal(t, docdive.EUNAUTHORIZED, docdive.ErrorCode(err))
		}
	})

	t.Run("maps other non-2xx to network error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		f := docdivehttp.NewFetcher()
		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, docdive.ENETWORK, docdive.ErrorCode(err))
	})

	t.Run("transport failure is a network error", func(t *testing.T) {
		t.Parallel()

		f := docdivehttp.NewFetcher(docdivehttp.WithTimeout(time.Second))
		_, err := f.Fetch(context.Background(), "http://127.0.0.1:1")

		require.Error(t, err)
		assert.Equal(t, docdive.ENETWORK, docdive.ErrorCode(err))
	})

	t.Run("invalid URL is rejected before any request", func(t *testing.T) {
		t.Parallel()

		f := docdivehttp.NewFetcher()
		_, err := f.Fetch(context.Background(), "http://%zz invalid")

		require.Error(t, err)
		assert.Equal(t, docdive.EINVALID, docdive.ErrorCode(err))
	})
}

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain passes immediately", func(t *testing.T) {
		t.Parallel()

		l := docdivehttp.NewDomainLimiter(1.0)

		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), "a.example.com"))
		require.NoError(t, l.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		t.Parallel()

		l := docdivehttp.NewDomainLimiter(0.001)
		require.NoError(t, l.Wait(context.Background(), "slow.example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.Error(t, l.Wait(ctx, "slow.example.com"))
	})
}
