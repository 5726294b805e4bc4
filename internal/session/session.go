// Package session gives each browser its own dashboard view. The browser holds
// a signed token naming its session; the views themselves stay in memory.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/gravadigital/hotelops-dashboard/internal/dashboard"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
)

const (
	CookieName = "hotelops_session"
	issuer     = "hotelops-dashboard"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrSessionLimit = errors.New("too many live sessions")
)

// ViewFactory builds a fresh, unmounted view
type ViewFactory func() *dashboard.View

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues session tokens and keeps one view per session
type Manager struct {
	secret  []byte
	ttl     time.Duration
	limit   int
	views   *cache.Cache
	newView ViewFactory
	log     *log.Logger
}

// NewManager creates a session manager holding at most limit live sessions
// (no cap when limit is not positive). An empty secret is replaced by a random
// one, which invalidates sessions on restart.
func NewManager(secret string, ttl time.Duration, limit int, newView ViewFactory) (*Manager, error) {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	m := &Manager{
		secret:  key,
		ttl:     ttl,
		limit:   limit,
		views:   cache.New(ttl, 10*time.Minute),
		newView: newView,
		log:     logger.Service("session"),
	}
	m.views.OnEvicted(func(sid string, value interface{}) {
		m.log.Debug("Session ended", "sid", sid)
		value.(*dashboard.View).Close(context.Background())
	})
	return m, nil
}

// TTL returns how long an idle session lives
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Sign issues a token for sid
func (m *Manager) Sign(sid string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the session id it names
func (m *Manager) Parse(tokenString string) (string, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(tokenString, c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.SessionID == "" {
		return "", ErrInvalidToken
	}
	return c.SessionID, nil
}

// Lookup returns the live view named by token and extends its lifetime
func (m *Manager) Lookup(tokenString string) (string, *dashboard.View, bool) {
	if tokenString == "" {
		return "", nil, false
	}
	sid, err := m.Parse(tokenString)
	if err != nil {
		m.log.Debug("Rejected session token", "error", err)
		return "", nil, false
	}
	value, ok := m.views.Get(sid)
	if !ok {
		return "", nil, false
	}
	m.views.Set(sid, value, m.ttl)
	return sid, value.(*dashboard.View), true
}

// Create starts a new session and mounts its view
func (m *Manager) Create(ctx context.Context) (string, *dashboard.View, error) {
	if m.limit > 0 && m.views.ItemCount() >= m.limit {
		m.views.DeleteExpired()
		if m.views.ItemCount() >= m.limit {
			m.log.Warn("Session limit reached", "limit", m.limit)
			return "", nil, ErrSessionLimit
		}
	}

	sid := uuid.NewString()
	view := m.newView()
	m.views.Set(sid, view, m.ttl)

	m.log.Info("Session started", "sid", sid)
	view.Mount(ctx)
	return sid, view, nil
}

// End drops a session and releases its view
func (m *Manager) End(sid string) {
	m.views.Delete(sid)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	return m.views.ItemCount()
}
