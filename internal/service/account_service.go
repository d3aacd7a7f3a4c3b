package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/event-monitor/internal/errors"
	"github.com/event-monitor/internal/models"
	"github.com/event-monitor/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is used when AccountService is created without a TTL
const DefaultSessionTTL = 24 * time.Hour

const sessionIssuer = "event-monitor"

// credential is one row of the users table
type credential struct {
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// sessionClaims is the payload of a session token
type sessionClaims struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// RegisterInput represents input for creating an account
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Session   models.Session `json:"session"`
}

// AccountService registers users and issues signed session tokens.
// Credentials live under the namespace's users key.
type AccountService struct {
	kv     storage.KeyValueStore
	keys   storage.Keys
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu sync.Mutex
}

// NewAccountService creates a new account service
func NewAccountService(kv storage.KeyValueStore, keys storage.Keys, secret string, ttl time.Duration) *AccountService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AccountService{
		kv:     kv,
		keys:   keys,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *AccountService) readUsers(ctx context.Context) (map[string]credential, error) {
	raw, err := s.kv.Get(ctx, s.keys.Users())
	if stderrors.Is(err, storage.ErrKeyNotFound) {
		return map[string]credential{}, nil
	}
	if err != nil {
		return nil, errors.NewStorageUnavailableError("read users", err)
	}

	users := map[string]credential{}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, errors.NewMalformedDataError(s.keys.Users(), err)
	}
	return users, nil
}

// Register creates an account and returns a session for it
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, errors.NewValidationError("username", "must not be empty")
	}
	if in.Password == "" {
		return nil, errors.NewValidationError("password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects passwords longer than 72 bytes
		return nil, errors.NewValidationError("password", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := users[username]; exists {
		return nil, errors.NewConflictError("user already exists: " + username)
	}

	users[username] = credential{
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now().UTC(),
	}

	data, err := json.Marshal(users)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode users", err)
	}
	if err := s.kv.Set(ctx, s.keys.Users(), string(data)); err != nil {
		return nil, errors.NewStorageUnavailableError("register", err)
	}

	return s.issue(models.Session{UserID: username, Email: users[username].Email, Phone: users[username].Phone})
}

// Login checks a username and password and returns a session
func (s *AccountService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.NewValidationError("credentials", "username and password are required")
	}

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}

	cred, ok := users[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}

	return s.issue(models.Session{UserID: username, Email: cred.Email, Phone: cred.Phone})
}

// Account returns the stored account without its password hash
func (s *AccountService) Account(ctx context.Context, username string) (*models.Account, error) {
	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}
	cred, ok := users[username]
	if !ok {
		return nil, errors.NewNotFoundError("user", username)
	}
	return &models.Account{
		Username:  username,
		Email:     cred.Email,
		Phone:     cred.Phone,
		CreatedAt: cred.CreatedAt,
	}, nil
}

func (s *AccountService) issue(sess models.Session) (*AuthResult, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	claims := sessionClaims{
		Email: sess.Email,
		Phone: sess.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign session token", err)
	}

	return &AuthResult{Token: token, ExpiresAt: expires, Session: sess}, nil
}

// ParseSession validates a session token and returns the session it carries
func (s *AccountService) ParseSession(token string) (models.Session, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return models.Session{}, errors.NewUnauthorizedError("invalid or expired session")
	}
	if claims.Subject == "" {
		return models.Session{}, errors.NewUnauthorizedError("session has no subject")
	}

	return models.Session{UserID: claims.Subject, Email: claims.Email, Phone: claims.Phone}, nil
}
