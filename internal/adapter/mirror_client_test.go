package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/event-monitor/internal/config"
	"github.com/event-monitor/internal/errors"
	"github.com/event-monitor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() models.PersistedPreferences {
	return models.PersistedPreferences{
		LastUpdated:      time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		UserSettings:     models.DefaultUserSettings(),
		WishListKeywords: []string{"technology"},
		User:             "alice",
	}
}

func TestMirrorClient_Push(t *testing.T) {
	var (
		gotHeaders http.Header
		gotBody    map[string]interface{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewMirrorClient(config.MirrorConfig{
		Endpoint:      srv.URL,
		APIKey:        "test-key",
		WebhookSecret: "test-secret",
		Timeout:       time.Second,
	})

	require.NoError(t, client.Push(context.Background(), testSnapshot()))

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "Bearer test-key", gotHeaders.Get("Authorization"))
	assert.Equal(t, "test-key", gotHeaders.Get("X-API-Key"))
	assert.Equal(t, "test-secret", gotHeaders.Get("X-Webhook-Secret"))

	assert.Equal(t, "alice", gotBody["user"])
	assert.Equal(t, []interface{}{"technology"}, gotBody["wishListKeywords"])
	assert.NotContains(t, gotBody, "apiKey")
	assert.NotContains(t, gotBody, "webhookSecret")
}

func TestMirrorClient_OmitsEmptySecrets(t *testing.T) {
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
	}))
	defer srv.Close()

	client := NewMirrorClient(config.MirrorConfig{Endpoint: srv.URL})
	require.NoError(t, client.Push(context.Background(), testSnapshot()))

	assert.Empty(t, gotHeaders.Get("Authorization"))
	assert.Empty(t, gotHeaders.Get("X-Webhook-Secret"))
}

func TestMirrorClient_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewMirrorClient(config.MirrorConfig{Endpoint: srv.URL})
	err := client.Push(context.Background(), testSnapshot())

	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryMirrorUnreachable))
	assert.Contains(t, err.Error(), "status=502")
}

func TestMirrorClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewMirrorClient(config.MirrorConfig{Endpoint: url})
	err := client.Push(context.Background(), testSnapshot())

	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryMirrorUnreachable))
}

func TestMirrorClient_RespectsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewMirrorClient(config.MirrorConfig{Endpoint: srv.URL, Timeout: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := client.Push(ctx, testSnapshot())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
