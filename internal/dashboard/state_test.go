package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
)

func TestReduceIsPure(t *testing.T) {
	s := InitialState()

	next := Reduce(s, DraftEdited{Draft: guest.Draft{FullName: "Anu"}})

	assert.Empty(t, s.Draft.FullName)
	assert.Equal(t, "Anu", next.Draft.FullName)
}

func TestReduceGuestsLoadedReplacesWholesale(t *testing.T) {
	s := InitialState()
	s = Reduce(s, GuestsLoaded{Records: []guest.Record{{ID: "1"}, {ID: "2"}}})
	s = Reduce(s, GuestsLoaded{Records: []guest.Record{{ID: "3"}}})

	assert.Equal(t, []guest.Record{{ID: "3"}}, s.Guests)

	s = Reduce(s, GuestsLoaded{})
	assert.NotNil(t, s.Guests)
	assert.Empty(t, s.Guests)
}

func TestReduceNotificationDefaultsChannel(t *testing.T) {
	s := Reduce(InitialState(), NotificationEdited{Request: notification.Request{To: "+91"}})

	assert.Equal(t, notification.ChannelSMS, s.Notification.Channel)
}

func TestReduceSuccessClearsError(t *testing.T) {
	s := Reduce(InitialState(), RequestFailed{Message: "boom"})
	assert.Equal(t, "boom", s.Error)

	s = Reduce(s, NotificationSent{Result: notification.Result{Status: "queued"}})

	assert.Empty(t, s.Error)
	assert.Equal(t, "Notification queued", s.Toast)
}

func TestReducePreviewExpiredOnlyDropsCurrent(t *testing.T) {
	s := Reduce(InitialState(), PreviewSelected{Handle: storage.Handle{ID: "b", Filename: "id.png"}})

	s = Reduce(s, PreviewExpired{ID: "a"})
	assert.Equal(t, "b", s.Preview.ID)

	s = Reduce(s, PreviewExpired{ID: "b"})
	assert.True(t, s.Preview.IsZero())
}

func TestStoreDispatchIf(t *testing.T) {
	store := NewStore(InitialState())

	_, ok := store.DispatchIf(func(s State) bool { return !s.Saving }, SaveStarted{})
	assert.True(t, ok)

	_, ok = store.DispatchIf(func(s State) bool { return !s.Saving }, SaveStarted{})
	assert.False(t, ok)

	before, after := store.Transition(SaveFinished{})
	assert.True(t, before.Saving)
	assert.False(t, after.Saving)
}
