package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/event-monitor/internal/errors"
	"github.com/event-monitor/internal/logging"
	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/storage"
	"github.com/event-monitor/internal/types"
	"github.com/google/uuid"
)

// Defaults applied when PreferenceStoreConfig leaves a field zero
const (
	DefaultHistoryLimit  = 50
	DefaultMirrorTimeout = 8 * time.Second
)

// DefaultWishListKeywords seeds the keyword list of a user with no stored snapshot
var DefaultWishListKeywords = []string{"technology"}

// HistoryArchive receives every save history entry. Append failures are
// logged and otherwise ignored.
type HistoryArchive interface {
	Append(ctx context.Context, entry models.SaveHistoryEntry) error
}

// PreferenceStoreConfig holds the optional collaborators of a PreferenceStore
type PreferenceStoreConfig struct {
	Namespace     string
	Mirror        Mirror
	Archive       HistoryArchive
	Monitor       *SaveMonitor
	MirrorTimeout time.Duration
	HistoryLimit  int
	Logger        *logging.Logger
	Clock         func() time.Time
}

// SaveResult reports the outcome of a durable write. A failed write is
// not an error: in-memory state is updated and Persisted is false.
type SaveResult struct {
	Persisted bool   `json:"persisted"`
	Error     string `json:"error,omitempty"`
	HistoryID string `json:"historyId"`
}

// UpdateResult is returned by operations that write the preference snapshot
type UpdateResult struct {
	SaveResult
	Preferences models.PersistedPreferences `json:"preferences"`
}

// PreferenceView is the in-memory state of one user
type PreferenceView struct {
	Settings         models.UserSettings `json:"settings"`
	WishListKeywords []string            `json:"wishListKeywords"`
	HiddenEvents     []int64             `json:"hiddenEvents"`
}

type userState struct {
	mu       sync.Mutex
	loaded   bool
	settings models.UserSettings
	keywords []string
	hidden   []int64
	history  []models.SaveHistoryEntry
}

// PreferenceStore owns each user's settings, wish list keywords, hidden
// events and save history, and persists them to a KeyValueStore.
type PreferenceStore struct {
	kv            storage.KeyValueStore
	keys          storage.Keys
	mirror        Mirror
	archive       HistoryArchive
	monitor       *SaveMonitor
	mirrorTimeout time.Duration
	historyLimit  int
	logger        *logging.Logger
	now           func() time.Time

	mu      sync.Mutex
	users   map[string]*userState
	mirrors sync.WaitGroup
}

// NewPreferenceStore creates a preference store on top of kv
func NewPreferenceStore(kv storage.KeyValueStore, cfg PreferenceStoreConfig) *PreferenceStore {
	if cfg.Namespace == "" {
		cfg.Namespace = "kiro"
	}
	if cfg.Mirror == nil {
		cfg.Mirror = NoopMirror{}
	}
	if cfg.MirrorTimeout <= 0 {
		cfg.MirrorTimeout = DefaultMirrorTimeout
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetGlobalLogger()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Monitor == nil {
		cfg.Monitor = NewSaveMonitor()
	}

	return &PreferenceStore{
		kv:            kv,
		keys:          storage.NewKeys(cfg.Namespace),
		mirror:        cfg.Mirror,
		archive:       cfg.Archive,
		monitor:       cfg.Monitor,
		mirrorTimeout: cfg.MirrorTimeout,
		historyLimit:  cfg.HistoryLimit,
		logger:        cfg.Logger.WithField("component", "preference_store"),
		now:           cfg.Clock,
		users:         make(map[string]*userState),
	}
}

// Stats returns durable write and mirror push statistics
func (s *PreferenceStore) Stats() *SaveStats {
	return s.monitor.GetStats()
}

// Keys returns the key layout used by the store
func (s *PreferenceStore) Keys() storage.Keys {
	return s.keys
}

func (s *PreferenceStore) state(userID string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.users[userID]
	if !ok {
		st = &userState{}
		s.users[userID] = st
	}
	return st
}

func validateSession(sess models.Session) error {
	if strings.TrimSpace(sess.UserID) == "" {
		return errors.NewValidationError("user", "session has no user")
	}
	return nil
}

// Load reads the user's stored snapshot and hidden events, replacing the
// in-memory copy. Absent or malformed data yields the defaults. A failed
// read keeps the in-memory copy if there is one.
func (s *PreferenceStore) Load(ctx context.Context, sess models.Session) models.UserSettings {
	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.loadLocked(ctx, sess.UserID, st)
	return st.settings.Clone()
}

func (s *PreferenceStore) ensureLoaded(ctx context.Context, userID string, st *userState) {
	if !st.loaded {
		s.loadLocked(ctx, userID, st)
	}
}

func (s *PreferenceStore) loadLocked(ctx context.Context, userID string, st *userState) {
	logger := s.logger.WithField("user", userID)

	settings, keywords, ok := s.readPreferences(ctx, userID, logger)
	if ok {
		st.settings = settings
		st.keywords = keywords
	} else if !st.loaded {
		st.settings = models.DefaultUserSettings()
		st.keywords = append([]string{}, DefaultWishListKeywords...)
	}

	if hidden, ok := s.readHidden(ctx, userID, logger); ok {
		st.hidden = hidden
	} else if !st.loaded {
		st.hidden = []int64{}
	}

	st.loaded = true
}

// readPreferences returns ok=false only when the store could not be read
func (s *PreferenceStore) readPreferences(ctx context.Context, userID string, logger *logging.Logger) (models.UserSettings, []string, bool) {
	key := s.keys.Preferences(userID)
	defaults := func() (models.UserSettings, []string, bool) {
		return models.DefaultUserSettings(), append([]string{}, DefaultWishListKeywords...), true
	}

	raw, err := s.kv.Get(ctx, key)
	if stderrors.Is(err, storage.ErrKeyNotFound) {
		return defaults()
	}
	if err != nil {
		logger.WithError(errors.NewStorageUnavailableError("load", err)).Warn("Failed to read preferences")
		return models.UserSettings{}, nil, false
	}

	stored := models.PersistedPreferences{UserSettings: models.DefaultUserSettings()}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.WithError(errors.NewMalformedDataError(key, err)).Warn("Stored preferences are malformed, using defaults")
		return defaults()
	}

	keywords := DefaultWishListKeywords
	if stored.WishListKeywords != nil {
		keywords = stored.WishListKeywords
	}

	return repairSettings(stored.UserSettings), NormalizeKeywords(keywords), true
}

func (s *PreferenceStore) readHidden(ctx context.Context, userID string, logger *logging.Logger) ([]int64, bool) {
	key := s.keys.HiddenEvents(userID)

	raw, err := s.kv.Get(ctx, key)
	if stderrors.Is(err, storage.ErrKeyNotFound) {
		return []int64{}, true
	}
	if err != nil {
		logger.WithError(errors.NewStorageUnavailableError("load hidden events", err)).Warn("Failed to read hidden events")
		return nil, false
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.WithError(errors.NewMalformedDataError(key, err)).Warn("Stored hidden events are malformed, ignoring")
		return []int64{}, true
	}

	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out, true
}

// Current returns the in-memory state, loading it on first use
func (s *PreferenceStore) Current(ctx context.Context, sess models.Session) PreferenceView {
	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	return PreferenceView{
		Settings:         st.settings.Clone(),
		WishListKeywords: append([]string{}, st.keywords...),
		HiddenEvents:     append([]int64{}, st.hidden...),
	}
}

// WishListKeywords returns the user's keyword list
func (s *PreferenceStore) WishListKeywords(ctx context.Context, sess models.Session) []string {
	return s.Current(ctx, sess).WishListKeywords
}

// HiddenEvents returns the user's hidden event IDs in the order they were hidden
func (s *PreferenceStore) HiddenEvents(ctx context.Context, sess models.Session) []int64 {
	return s.Current(ctx, sess).HiddenEvents
}

// History returns the user's save history, most recent first
func (s *PreferenceStore) History(ctx context.Context, sess models.Session) []models.SaveHistoryEntry {
	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	return append([]models.SaveHistoryEntry{}, st.history...)
}

// Update validates and stores new settings, merging in the current wish
// list keywords. Only validation failures are returned as errors.
func (s *PreferenceStore) Update(ctx context.Context, sess models.Session, settings models.UserSettings) (*UpdateResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	return s.updateLocked(ctx, sess, st, settings)
}

func (s *PreferenceStore) updateLocked(ctx context.Context, sess models.Session, st *userState, settings models.UserSettings) (*UpdateResult, error) {
	normalized, err := NormalizeSettings(settings, s.now())
	if err != nil {
		return nil, err
	}

	st.settings = normalized
	return s.persistSnapshot(ctx, sess, st, types.OpSettingsUpdate), nil
}

// SetWishListKeywords normalizes and stores the keyword list through the
// same snapshot write as Update
func (s *PreferenceStore) SetWishListKeywords(ctx context.Context, sess models.Session, keywords []string) (*UpdateResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	st.keywords = NormalizeKeywords(keywords)
	return s.persistSnapshot(ctx, sess, st, types.OpWishListUpdate), nil
}

// AddMonitorURL appends a monitored website with a fresh unique ID
func (s *PreferenceStore) AddMonitorURL(ctx context.Context, sess models.Session, url string) (*UpdateResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.NewValidationError("url", "must not be empty")
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	next := st.settings.Clone()
	next.MonitorURLs = append(next.MonitorURLs, models.MonitorURL{
		ID:  NextMonitorURLID(s.now(), next.MonitorURLs),
		URL: url,
	})
	return s.updateLocked(ctx, sess, st, next)
}

// RemoveMonitorURL removes the monitored website with the given ID. An
// unknown ID leaves the list unchanged.
func (s *PreferenceStore) RemoveMonitorURL(ctx context.Context, sess models.Session, id int64) (*UpdateResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	next := st.settings.Clone()
	kept := next.MonitorURLs[:0]
	for _, m := range next.MonitorURLs {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	next.MonitorURLs = kept
	return s.updateLocked(ctx, sess, st, next)
}

// AddCustomCategory adds a user-defined interest tag
func (s *PreferenceStore) AddCustomCategory(ctx context.Context, sess models.Session, name string) (*UpdateResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.NewValidationError("category", "must not be empty")
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	if containsString(AllTags(st.settings), name) {
		return nil, errors.NewConflictError("category already exists: " + name)
	}

	next := st.settings.Clone()
	next.CustomCategories = append(next.CustomCategories, name)
	return s.updateLocked(ctx, sess, st, next)
}

// RemoveCustomCategory removes a user-defined tag and deselects it
func (s *PreferenceStore) RemoveCustomCategory(ctx context.Context, sess models.Session, name string) (*UpdateResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}
	name = strings.ToLower(strings.TrimSpace(name))

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	next := st.settings.Clone()
	if containsString(next.CustomCategories, name) {
		next.CustomCategories = removeString(next.CustomCategories, name)
		next.InterestTags = removeString(next.InterestTags, name)
	}
	return s.updateLocked(ctx, sess, st, next)
}

// HideEvent adds id to the hidden set. Hiding twice is the same as once.
func (s *PreferenceStore) HideEvent(ctx context.Context, sess models.Session, id int64) (*SaveResult, error) {
	return s.changeHidden(ctx, sess, id, types.OpHideEvent)
}

// UnhideEvent removes id from the hidden set
func (s *PreferenceStore) UnhideEvent(ctx context.Context, sess models.Session, id int64) (*SaveResult, error) {
	return s.changeHidden(ctx, sess, id, types.OpUnhideEvent)
}

func (s *PreferenceStore) changeHidden(ctx context.Context, sess models.Session, id int64, op types.OperationKind) (*SaveResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, errors.NewValidationError("eventId", "must be a positive integer")
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	switch op {
	case types.OpHideEvent:
		if !containsID(st.hidden, id) {
			st.hidden = append(st.hidden, id)
		}
	case types.OpUnhideEvent:
		kept := make([]int64, 0, len(st.hidden))
		for _, h := range st.hidden {
			if h != id {
				kept = append(kept, h)
			}
		}
		st.hidden = kept
	}

	data, err := json.Marshal(st.hidden)
	if err == nil {
		err = s.kv.Set(ctx, s.keys.HiddenEvents(sess.UserID), string(data))
	}
	if err != nil {
		err = errors.NewStorageUnavailableError(string(op), err)
	}

	snapshot, _ := json.Marshal(map[string]interface{}{
		"eventId":      id,
		"hiddenEvents": st.hidden,
	})
	entry := s.record(ctx, sess.UserID, st, op, snapshot, err)
	return resultFor(entry), nil
}

// ClearAll resets settings to defaults, empties the keyword list, clears
// save history and deletes the stored snapshot. Hidden events are kept.
func (s *PreferenceStore) ClearAll(ctx context.Context, sess models.Session) (*SaveResult, error) {
	if err := validateSession(sess); err != nil {
		return nil, err
	}

	st := s.state(sess.UserID)
	st.mu.Lock()
	defer st.mu.Unlock()

	s.ensureLoaded(ctx, sess.UserID, st)
	st.settings = models.DefaultUserSettings()
	st.keywords = []string{}
	st.history = nil

	var err error
	if delErr := s.kv.Del(ctx, s.keys.Preferences(sess.UserID)); delErr != nil {
		err = errors.NewStorageUnavailableError(string(types.OpClearAll), delErr)
	}

	entry := s.record(ctx, sess.UserID, st, types.OpClearAll, nil, err)
	return resultFor(entry), nil
}

// WaitForMirrors blocks until every dispatched mirror push has finished or
// timed out
func (s *PreferenceStore) WaitForMirrors() {
	s.mirrors.Wait()
}

// persistSnapshot writes the full snapshot, records it in history and, if
// the write succeeded, hands a copy to the mirror
func (s *PreferenceStore) persistSnapshot(ctx context.Context, sess models.Session, st *userState, op types.OperationKind) *UpdateResult {
	snapshot := models.PersistedPreferences{
		LastUpdated:      s.now().UTC(),
		UserSettings:     st.settings.Clone(),
		WishListKeywords: append([]string{}, st.keywords...),
		User:             sess.UserID,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		err = errors.NewInternalError("failed to encode preferences", err)
	} else if setErr := s.kv.Set(ctx, s.keys.Preferences(sess.UserID), string(data)); setErr != nil {
		err = errors.NewStorageUnavailableError(string(op), setErr)
	}

	entry := s.record(ctx, sess.UserID, st, op, data, err)
	if err == nil {
		s.dispatchMirror(snapshot)
	}

	return &UpdateResult{
		SaveResult:  *resultFor(entry),
		Preferences: snapshot,
	}
}

func (s *PreferenceStore) record(ctx context.Context, userID string, st *userState, op types.OperationKind, snapshot []byte, err error) models.SaveHistoryEntry {
	entry := models.SaveHistoryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: s.now().UTC(),
		Operation: op,
		Snapshot:  snapshot,
		Status:    types.SaveSuccess,
	}

	logger := s.logger.WithFields(map[string]interface{}{
		"user":      userID,
		"operation": string(op),
	})

	s.monitor.RecordSave(op, err)
	if err != nil {
		entry.Status = types.SaveFailure
		entry.Error = err.Error()
		logger.WithError(err).Warn("Durable write failed, keeping in-memory state")
	} else {
		logger.Debug("Preferences saved")
	}

	st.history = append([]models.SaveHistoryEntry{entry}, st.history...)
	if len(st.history) > s.historyLimit {
		st.history = st.history[:s.historyLimit]
	}

	if s.archive != nil {
		if archErr := s.archive.Append(ctx, entry); archErr != nil {
			logger.WithError(archErr).Warn("Failed to archive save history entry")
		}
	}

	return entry
}

func resultFor(entry models.SaveHistoryEntry) *SaveResult {
	return &SaveResult{
		Persisted: entry.Status == types.SaveSuccess,
		Error:     entry.Error,
		HistoryID: entry.ID,
	}
}

// dispatchMirror pushes in the background. A push that outlives the
// timeout is abandoned.
func (s *PreferenceStore) dispatchMirror(snapshot models.PersistedPreferences) {
	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()

		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), s.mirrorTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- s.mirror.Push(ctx, snapshot)
		}()

		var err error
		select {
		case err = <-done:
		case <-ctx.Done():
			err = errors.NewMirrorUnreachableError("mirror", ctx.Err())
		}

		s.monitor.RecordMirror(time.Since(start), err)

		logger := s.logger.WithField("user", snapshot.User)
		if err != nil {
			logger.WithError(err).Warn("Mirror push failed")
			return
		}
		logger.Debug("Mirror push succeeded")
	}()
}

// NormalizeSettings validates settings and returns a cleaned copy:
// deduplicated tags, lowercase custom categories that don't shadow a
// default tag, and unique monitor URL IDs. Empty enum values take their
// defaults; unknown ones are rejected.
func NormalizeSettings(in models.UserSettings, now time.Time) (models.UserSettings, error) {
	out := in.Clone()

	if math.IsNaN(out.SearchRadius) || math.IsInf(out.SearchRadius, 0) || out.SearchRadius <= 0 {
		return models.UserSettings{}, errors.NewValidationError("searchRadius", "must be a positive number")
	}

	switch {
	case out.DistanceUnit == "":
		out.DistanceUnit = types.UnitKilometers
	case !out.DistanceUnit.Valid():
		return models.UserSettings{}, errors.NewValidationError("distanceUnit", "must be km or miles")
	}

	switch {
	case out.NotificationMethod == "":
		out.NotificationMethod = types.NotifyBoth
	case !out.NotificationMethod.Valid():
		return models.UserSettings{}, errors.NewValidationError("notificationMethod", "must be email, sms or both")
	}

	out.HomeAddress = strings.TrimSpace(out.HomeAddress)
	out.EmailAddress = strings.TrimSpace(out.EmailAddress)
	out.PhoneNumber = strings.TrimSpace(out.PhoneNumber)
	out.InterestTags = uniqueTrimmed(out.InterestTags, false)

	custom := make([]string, 0, len(out.CustomCategories))
	for _, c := range uniqueTrimmed(out.CustomCategories, true) {
		if !containsString(models.DefaultTags, c) {
			custom = append(custom, c)
		}
	}
	out.CustomCategories = custom

	urls := make([]models.MonitorURL, 0, len(out.MonitorURLs))
	for _, m := range out.MonitorURLs {
		m.URL = strings.TrimSpace(m.URL)
		if m.URL == "" {
			return models.UserSettings{}, errors.NewValidationError("monitorUrls", "url must not be empty")
		}
		if m.ID <= 0 || hasMonitorID(urls, m.ID) {
			m.ID = nextID(now.UnixMilli(), urls, out.MonitorURLs)
		}
		urls = append(urls, m)
	}
	out.MonitorURLs = urls

	return out, nil
}

// repairSettings fills fields of a stored snapshot that are missing or out
// of range with their defaults
func repairSettings(in models.UserSettings) models.UserSettings {
	defaults := models.DefaultUserSettings()
	out := in.Clone()

	if math.IsNaN(out.SearchRadius) || out.SearchRadius <= 0 {
		out.SearchRadius = defaults.SearchRadius
	}
	if !out.DistanceUnit.Valid() {
		out.DistanceUnit = defaults.DistanceUnit
	}
	if !out.NotificationMethod.Valid() {
		out.NotificationMethod = defaults.NotificationMethod
	}

	urls := make([]models.MonitorURL, 0, len(out.MonitorURLs))
	for _, m := range out.MonitorURLs {
		if m.URL == "" {
			continue
		}
		if m.ID <= 0 || hasMonitorID(urls, m.ID) {
			m.ID = nextID(1, urls, out.MonitorURLs)
		}
		urls = append(urls, m)
	}
	out.MonitorURLs = urls

	return out
}

// NormalizeKeywords trims, lowercases and drops empty keywords, keeping the
// first occurrence of each
func NormalizeKeywords(keywords []string) []string {
	return uniqueTrimmed(keywords, true)
}

// NextMonitorURLID returns the creation time in milliseconds, bumped past
// any existing ID it would collide with
func NextMonitorURLID(now time.Time, existing []models.MonitorURL) int64 {
	return nextID(now.UnixMilli(), existing)
}

func nextID(candidate int64, lists ...[]models.MonitorURL) int64 {
	for _, existing := range lists {
		for _, m := range existing {
			if m.ID >= candidate {
				candidate = m.ID + 1
			}
		}
	}
	if candidate <= 0 {
		candidate = 1
	}
	return candidate
}

// AllTags returns the default tags followed by the user's custom categories
func AllTags(settings models.UserSettings) []string {
	out := append([]string{}, models.DefaultTags...)
	for _, c := range settings.CustomCategories {
		if !containsString(out, c) {
			out = append(out, c)
		}
	}
	return out
}

func uniqueTrimmed(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" || containsString(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func removeString(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func hasMonitorID(urls []models.MonitorURL, id int64) bool {
	for _, m := range urls {
		if m.ID == id {
			return true
		}
	}
	return false
}
