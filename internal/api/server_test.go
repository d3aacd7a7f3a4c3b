package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/event-monitor/internal/catalog"
	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/service"
	"github.com/event-monitor/internal/storage"
	"github.com/event-monitor/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	server   *Server
	prefs    *service.PreferenceStore
	accounts *service.AccountService
}

func newTestEnv(t *testing.T, cfg *ServerConfig) *testEnv {
	t.Helper()

	kv, _ := storagetest.NewRedisStore(t)
	prefs := service.NewPreferenceStore(kv, service.PreferenceStoreConfig{
		Clock: func() time.Time { return testNow },
	})
	t.Cleanup(prefs.WaitForMirrors)

	cat := catalog.New([]models.Event{
		{ID: 1, Name: "AI Summit", EventDate: testNow.Add(24 * time.Hour), DistanceKm: 10, Tags: []string{"technology", "ai"}},
		{ID: 2, Name: "Jazz Night", EventDate: testNow.Add(48 * time.Hour), DistanceKm: 4, Tags: []string{"music"}},
		{ID: 3, Name: "Robotics Expo", EventDate: testNow.Add(90 * 24 * time.Hour), DistanceKm: 25, Tags: []string{"technology"}},
		{ID: 4, Name: "Past Meetup", EventDate: testNow.Add(-24 * time.Hour), DistanceKm: 1, Tags: []string{"technology"}},
	})
	events := service.NewEventFilterService(cat, prefs)
	accounts := service.NewAccountService(kv, storage.NewKeys("kiro"), "api-test-secret", time.Hour)

	if cfg == nil {
		cfg = &ServerConfig{Host: "localhost", Port: "8080", RateLimitRPS: 1000, RateLimitBurst: 1000}
	}
	server := NewServer(cfg, prefs, events, accounts, nil)
	server.now = func() time.Time { return testNow }

	return &testEnv{server: server, prefs: prefs, accounts: accounts}
}

// token registers a user and returns its bearer token
func (e *testEnv) token(t *testing.T, username string) string {
	t.Helper()
	res, err := e.accounts.Register(context.Background(), service.RegisterInput{Username: username, Password: "pw"})
	require.NoError(t, err)
	return res.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.server.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Saves  service.SaveStats `json:"saves"`
	}
	decode(t, w, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	token := env.token(t, "alice")
	env.do(t, "POST", "/api/events/1/hide", token, nil)
	decode(t, env.do(t, "GET", "/health", "", nil), &body)
	assert.Equal(t, int64(1), body.Saves.TotalSaves)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "alice", "password": "secret", "email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg service.AuthResult
	decode(t, w, &reg)
	assert.Equal(t, "alice", reg.Session.UserID)
	assert.NotEmpty(t, reg.Token)

	w = env.do(t, "POST", "/api/auth/register", "", map[string]string{"username": "alice", "password": "again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, "POST", "/api/auth/login", "", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "POST", "/api/auth/login", "", map[string]string{"username": "alice", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "POST", "/api/auth/login", "", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionRequired(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, "GET", "/api/preferences", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, "GET", "/api/preferences", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestPreferences_GetUpdateClear(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.token(t, "alice")

	w := env.do(t, "GET", "/api/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view service.PreferenceView
	decode(t, w, &view)
	assert.Equal(t, []string{"technology"}, view.WishListKeywords)
	assert.Equal(t, float64(10), view.Settings.SearchRadius)

	settings := models.DefaultUserSettings()
	settings.HomeAddress = "1 Main St"
	settings.SearchRadius = 25
	settings.InterestTags = []string{"music"}

	w = env.do(t, "PUT", "/api/preferences", token, settings)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated service.UpdateResult
	decode(t, w, &updated)
	assert.True(t, updated.Persisted)
	assert.Equal(t, "alice", updated.Preferences.User)
	assert.Equal(t, "1 Main St", updated.Preferences.HomeAddress)
	assert.Equal(t, []string{"technology"}, updated.Preferences.WishListKeywords)

	settings.DistanceUnit = "furlongs"
	w = env.do(t, "PUT", "/api/preferences", token, settings)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "PUT", "/api/preferences", token, `{"unknownField": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "DELETE", "/api/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/preferences", token, nil)
	decode(t, w, &view)
	assert.Equal(t, "", view.Settings.HomeAddress)
	assert.Empty(t, view.WishListKeywords)
}

func TestPreferences_UsersAreIsolated(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.token(t, "alice")
	bob := env.token(t, "bob")

	w := env.do(t, "PUT", "/api/preferences/wishlist", alice, map[string][]string{"keywords": {"Jazz"}})
	require.Equal(t, http.StatusOK, w.Code)

	var view service.PreferenceView
	decode(t, env.do(t, "GET", "/api/preferences", bob, nil), &view)
	assert.Equal(t, []string{"technology"}, view.WishListKeywords)

	decode(t, env.do(t, "GET", "/api/preferences", alice, nil), &view)
	assert.Equal(t, []string{"jazz"}, view.WishListKeywords)
}

func TestPreferences_MonitorURLsAndCategories(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.token(t, "alice")

	w := env.do(t, "POST", "/api/preferences/monitor-urls", token, map[string]string{"url": "https://events.example"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res service.UpdateResult
	decode(t, w, &res)
	require.Len(t, res.Preferences.MonitorURLs, 1)
	id := res.Preferences.MonitorURLs[0].ID

	w = env.do(t, "POST", "/api/preferences/monitor-urls", token, map[string]string{"url": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "DELETE", "/api/preferences/monitor-urls/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "DELETE", "/api/preferences/monitor-urls/"+jsonNumber(id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &res)
	assert.Empty(t, res.Preferences.MonitorURLs)

	w = env.do(t, "POST", "/api/preferences/categories", token, map[string]string{"name": "Robotics"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "POST", "/api/preferences/categories", token, map[string]string{"name": "music"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var summary service.PreferenceSummary
	decode(t, env.do(t, "GET", "/api/preferences/summary", token, nil), &summary)
	assert.Contains(t, summary.AllTags, "robotics")
	assert.Equal(t, "Both Email & SMS", summary.NotificationMethodLabel)

	w = env.do(t, "DELETE", "/api/preferences/categories/robotics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &res)
	assert.NotContains(t, res.Preferences.CustomCategories, "robotics")
}

func jsonNumber(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}

func TestPreferences_History(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.token(t, "alice")

	env.do(t, "PUT", "/api/preferences/wishlist", token, map[string][]string{"keywords": {"ai"}})
	env.do(t, "POST", "/api/events/2/hide", token, nil)

	var body struct {
		Entries []models.SaveHistoryEntry `json:"entries"`
		Count   int                       `json:"count"`
	}
	decode(t, env.do(t, "GET", "/api/preferences/history", token, nil), &body)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "hide_event", string(body.Entries[0].Operation))
	assert.Equal(t, "wishlist_update", string(body.Entries[1].Operation))
}

func TestEvents_LiveWishListAndHide(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.token(t, "alice")

	type eventsBody struct {
		Events []models.EventView `json:"events"`
		Count  int                `json:"count"`
	}

	var live eventsBody
	decode(t, env.do(t, "GET", "/api/events", token, nil), &live)
	require.Equal(t, 3, live.Count)
	assert.Equal(t, "10 KM", live.Events[0].Distance)

	decode(t, env.do(t, "GET", "/api/events?window=week", token, nil), &live)
	assert.Equal(t, 2, live.Count)

	w := env.do(t, "GET", "/api/events?window=fortnight", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var wish eventsBody
	decode(t, env.do(t, "GET", "/api/events/wishlist", token, nil), &wish)
	require.Equal(t, 2, wish.Count)
	assert.Equal(t, int64(1), wish.Events[0].ID)

	w = env.do(t, "POST", "/api/events/1/hide", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var saved service.SaveResult
	decode(t, w, &saved)
	assert.True(t, saved.Persisted)

	decode(t, env.do(t, "GET", "/api/events/wishlist", token, nil), &wish)
	require.Equal(t, 1, wish.Count)
	assert.Equal(t, int64(3), wish.Events[0].ID)

	w = env.do(t, "DELETE", "/api/events/1/hide", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.do(t, "GET", "/api/events", token, nil), &live)
	assert.Equal(t, 3, live.Count)

	w = env.do(t, "POST", "/api/events/0/hide", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = env.do(t, "POST", "/api/events/x/hide", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvents_Calendar(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.token(t, "alice")

	env.do(t, "POST", "/api/events/2/hide", token, nil)

	w := env.do(t, "GET", "/api/events/calendar.ics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")

	body := w.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "AI Summit")
	assert.Contains(t, body, "Robotics Expo")
	assert.NotContains(t, body, "Jazz Night")
	assert.NotContains(t, body, "Past Meetup")
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, &ServerConfig{RateLimitRPS: 1, RateLimitBurst: 2})
	token := env.token(t, "alice")

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, env.do(t, "GET", "/api/preferences", token, nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another user has its own budget
	other := env.token(t, "bob")
	assert.Equal(t, http.StatusOK, env.do(t, "GET", "/api/preferences", other, nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, "OPTIONS", "/api/preferences", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCompression(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	env.server.router.ServeHTTP(w, req)

	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Contains(t, string(data), "healthy")
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, ErrCodeInternalError, resp.Error.Code)
}

func TestConcurrentRequests(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.token(t, "alice")

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			env.do(t, "POST", "/api/events/"+jsonNumber(int64(id))+"/hide", token, nil)
		}(i)
	}
	wg.Wait()

	var view service.PreferenceView
	decode(t, env.do(t, "GET", "/api/preferences", token, nil), &view)
	assert.Len(t, view.HiddenEvents, 10)
}
