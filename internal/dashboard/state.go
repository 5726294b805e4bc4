package dashboard

import (
	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
)

const toastGuestSaved = "Guest saved"

// State is everything the dashboard page renders. It is only ever replaced
// through Reduce.
type State struct {
	Preview      storage.Handle       `json:"preview"`
	OCR          *guest.OCRResult     `json:"ocr,omitempty"`
	Draft        guest.Draft          `json:"draft"`
	Guests       []guest.Record       `json:"guests"`
	Notification notification.Request `json:"notification"`
	Toast        string               `json:"toast,omitempty"`
	Error        string               `json:"error,omitempty"`
	Saving       bool                 `json:"saving"`
}

// InitialState is the state of a freshly mounted dashboard
func InitialState() State {
	return State{
		Guests:       []guest.Record{},
		Notification: notification.NewRequest(),
	}
}

// Cards renders the guest list for display
func (s State) Cards() []guest.Card {
	cards := make([]guest.Card, 0, len(s.Guests))
	for _, r := range s.Guests {
		cards = append(cards, r.Card())
	}
	return cards
}

// Action describes a state change
type Action interface {
	isAction()
}

type (
	// DraftEdited replaces the guest draft with what staff typed
	DraftEdited struct{ Draft guest.Draft }
	// NotificationEdited replaces the notification draft
	NotificationEdited struct{ Request notification.Request }
	// PreviewSelected points the preview at a newly selected file
	PreviewSelected struct{ Handle storage.Handle }
	// PreviewExpired drops the preview when its stored file is gone
	PreviewExpired struct{ ID string }
	// OCRReceived records an OCR result and seeds the draft from it
	OCRReceived struct{ Result guest.OCRResult }
	// SaveStarted marks a guest save as in flight
	SaveStarted struct{}
	// SaveFinished clears the in-flight mark whatever the outcome
	SaveFinished struct{}
	// GuestSaved confirms a successful save
	GuestSaved struct{}
	// GuestsLoaded replaces the whole guest list
	GuestsLoaded struct{ Records []guest.Record }
	// NotificationSent shows the dispatch status
	NotificationSent struct{ Result notification.Result }
	// RequestFailed surfaces a failed backend call in the error banner
	RequestFailed struct{ Message string }
	// ToastDismissed clears the toast and the error banner
	ToastDismissed struct{}
)

func (DraftEdited) isAction()        {}
func (NotificationEdited) isAction() {}
func (PreviewSelected) isAction()    {}
func (PreviewExpired) isAction()     {}
func (OCRReceived) isAction()        {}
func (SaveStarted) isAction()        {}
func (SaveFinished) isAction()       {}
func (GuestSaved) isAction()         {}
func (GuestsLoaded) isAction()       {}
func (NotificationSent) isAction()   {}
func (RequestFailed) isAction()      {}
func (ToastDismissed) isAction()     {}

// Reduce returns the state that results from applying a to s
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case DraftEdited:
		s.Draft = a.Draft
	case NotificationEdited:
		s.Notification = a.Request
		if s.Notification.Channel == "" {
			s.Notification.Channel = notification.ChannelSMS
		}
	case PreviewSelected:
		s.Preview = a.Handle
	case PreviewExpired:
		if s.Preview.ID == a.ID {
			s.Preview = storage.Handle{}
		}
	case OCRReceived:
		result := a.Result
		s.OCR = &result
		s.Draft = guest.MergeOCR(s.Draft, result)
		s.Error = ""
	case SaveStarted:
		s.Saving = true
	case SaveFinished:
		s.Saving = false
	case GuestSaved:
		s.Toast = toastGuestSaved
		s.Error = ""
	case GuestsLoaded:
		s.Guests = a.Records
		if s.Guests == nil {
			s.Guests = []guest.Record{}
		}
	case NotificationSent:
		s.Toast = a.Result.Toast()
		s.Error = ""
	case RequestFailed:
		s.Error = a.Message
	case ToastDismissed:
		s.Toast = ""
		s.Error = ""
	}
	return s
}
