package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/paddock-data/lapdelta/internal/f1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderFetchRaw(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(sessionFixture))
	}))
	defer srv.Close()

	provider := NewProvider(nil, srv.URL)
	payload, err := provider.FetchRaw(context.Background(), Key{Season: 2024, Event: "Italian Grand Prix", Kind: f1.KindRace})
	require.NoError(t, err)
	assert.Equal(t, sessionFixture, string(payload))
	assert.Equal(t, "/sessions/2024/Italian%20Grand%20Prix/R", gotPath, "event names with spaces must be escaped")
}

func TestProviderFetchRawUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such session", http.StatusNotFound)
	}))
	defer srv.Close()

	provider := NewProvider(nil, srv.URL)
	_, err := provider.FetchRaw(context.Background(), Key{Season: 1990, Event: "Monza", Kind: f1.KindRace})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestCachingRepositoryFetchesOnce(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(sessionFixture))
	}))
	defer srv.Close()

	repo := NewCachingRepository(newTestStore(t), NewProvider(nil, srv.URL))
	key := Key{Season: 2024, Event: "Monza", Kind: f1.KindRace}

	first, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	second, err := repo.Get(context.Background(), key)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second Get must be served from cache")
	assert.Equal(t, first.Drivers(), second.Drivers())
	require.Len(t, first.Laps, 2)
	assert.Equal(t, "VER", first.Laps[0].Driver)
}

func TestCachingRepositoryRejectsInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"season":2024,"event":"Monza","kind":"R","laps":[{"driver":"VER","number":-1}]}`))
	}))
	defer srv.Close()

	repo := NewCachingRepository(newTestStore(t), NewProvider(nil, srv.URL))
	_, err := repo.Get(context.Background(), Key{Season: 2024, Event: "Monza", Kind: f1.KindRace})
	require.Error(t, err)

	// Invalid payloads must not be cached.
	_, ok, err := repo.store.Load(Key{Season: 2024, Event: "Monza", Kind: f1.KindRace})
	require.NoError(t, err)
	assert.False(t, ok)
}
