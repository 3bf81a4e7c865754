package disk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnk-music/intake/common/config"
	"github.com/dnk-music/intake/common/logger"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DiskConfig{
		BaseURL: srv.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	}
	return NewClient(cfg, nil, logger.New("error", "text"))
}

func TestMkdirIdempotent(t *testing.T) {
	var calls int
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "OAuth test-token", r.Header.Get("Authorization"))

		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			return
		}
		// Second creation of the same path reports a conflict
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"DiskPathPointsToExistentDirectoryError","description":"folder exists"}`))
	})

	ctx := context.Background()
	require.NoError(t, client.Mkdir(ctx, "/releases/artist"))
	require.NoError(t, client.Mkdir(ctx, "/releases/artist"))
	assert.Equal(t, 2, calls)
}

func TestMkdirSurfacesOtherErrors(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"UnauthorizedError","description":"bad token"}`))
	})

	err := client.Mkdir(context.Background(), "/releases/artist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnauthorizedError")
}

func TestPublishMissingPathYieldsEmptyLink(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"DiskNotFoundError","description":"no such path"}`))
	})

	link, err := client.Publish(context.Background(), "/releases/missing")
	require.NoError(t, err)
	assert.Empty(t, link)
}

func TestPublishResolvesPublicURL(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"href":"ignored"}`))
		case http.MethodGet:
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"public_url":"https://yadi.sk/d/abc"}`))
		}
	})

	link, err := client.Publish(context.Background(), "/releases/artist/album")
	require.NoError(t, err)
	assert.Equal(t, "https://yadi.sk/d/abc", link)
}
