package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/hotelops-dashboard/internal/backend"
	"github.com/gravadigital/hotelops-dashboard/internal/dashboard"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
)

type stubBackend struct {
	listCalls int
}

func (s *stubBackend) Probe(context.Context) error { return nil }
func (s *stubBackend) ExtractDocument(context.Context, backend.Upload) (guest.OCRResult, error) {
	return guest.OCRResult{}, nil
}
func (s *stubBackend) CreateGuest(context.Context, guest.Draft) (any, error) { return nil, nil }
func (s *stubBackend) ListGuests(context.Context) ([]guest.Record, error) {
	s.listCalls++
	return []guest.Record{{ID: "1", FullName: "Anu"}}, nil
}
func (s *stubBackend) Notify(context.Context, notification.Request) (notification.Result, error) {
	return notification.Result{}, nil
}

func newTestManager(t *testing.T, secret string) (*Manager, *stubBackend, *storage.MemoryStore) {
	return newLimitedManager(t, secret, 0)
}

func newLimitedManager(t *testing.T, secret string, limit int) (*Manager, *stubBackend, *storage.MemoryStore) {
	t.Helper()
	b := &stubBackend{}
	previews := storage.NewMemoryStore(time.Minute)
	m, err := NewManager(secret, time.Hour, limit, func() *dashboard.View {
		return dashboard.NewView(b, previews)
	})
	require.NoError(t, err)
	return m, b, previews
}

func TestCreateMountsView(t *testing.T) {
	m, b, _ := newTestManager(t, "secret")

	sid, view, err := m.Create(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, sid)
	assert.Equal(t, 1, b.listCalls)
	assert.Len(t, view.State().Guests, 1)
	assert.Equal(t, 1, m.Count())
}

func TestSignAndLookup(t *testing.T) {
	m, _, _ := newTestManager(t, "secret")
	sid, view, err := m.Create(context.Background())
	require.NoError(t, err)

	token, err := m.Sign(sid)
	require.NoError(t, err)

	gotSID, gotView, ok := m.Lookup(token)
	require.True(t, ok)
	assert.Equal(t, sid, gotSID)
	assert.Same(t, view, gotView)
}

func TestLookupRejectsForeignTokens(t *testing.T) {
	m, _, _ := newTestManager(t, "secret")
	other, _, _ := newTestManager(t, "another-secret")
	sid, _, err := m.Create(context.Background())
	require.NoError(t, err)

	forged, err := other.Sign(sid)
	require.NoError(t, err)

	_, _, ok := m.Lookup(forged)
	assert.False(t, ok)

	_, _, ok = m.Lookup("not-a-token")
	assert.False(t, ok)

	_, _, ok = m.Lookup("")
	assert.False(t, ok)
}

func TestParseRejectsExpiredAndUnsignedTokens(t *testing.T) {
	m, _, _ := newTestManager(t, "secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: "abc",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, claims{SessionID: "abc", RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLookupUnknownSession(t *testing.T) {
	m, _, _ := newTestManager(t, "secret")

	token, err := m.Sign("never-created")
	require.NoError(t, err)

	_, _, ok := m.Lookup(token)
	assert.False(t, ok)
}

func TestEndReleasesPreview(t *testing.T) {
	m, _, previews := newTestManager(t, "")
	sid, view, err := m.Create(context.Background())
	require.NoError(t, err)
	_, err = view.UploadDocument(context.Background(), backend.Upload{Filename: "id.png", Data: []byte("x")})
	require.NoError(t, err)
	require.Equal(t, 1, previews.Len())

	m.End(sid)

	assert.Equal(t, 0, m.Count())
	assert.Equal(t, 0, previews.Len())
}

func TestCreateRespectsLimit(t *testing.T) {
	m, b, _ := newLimitedManager(t, "secret", 2)
	ctx := context.Background()

	first, _, err := m.Create(ctx)
	require.NoError(t, err)
	_, _, err = m.Create(ctx)
	require.NoError(t, err)

	_, view, err := m.Create(ctx)
	assert.ErrorIs(t, err, ErrSessionLimit)
	assert.Nil(t, view)
	assert.Equal(t, 2, b.listCalls, "a refused session is never mounted")

	m.End(first)
	_, _, err = m.Create(ctx)
	assert.NoError(t, err)
}
