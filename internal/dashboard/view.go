// Package dashboard holds the front-desk view: its state, and the operations
// that turn staff actions into backend calls.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/hotelops-dashboard/internal/backend"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
	"github.com/gravadigital/hotelops-dashboard/internal/storage"
)

// ErrSaveInFlight is returned when a save is requested while another one is
// still waiting for the backend
var ErrSaveInFlight = errors.New("a guest save is already in progress")

const msgSaveInFlight = "Guest save already in progress"

// probeTimeout bounds the background connectivity check started by Mount
const probeTimeout = 30 * time.Second

// Backend is the subset of the backend client the view depends on
type Backend interface {
	Probe(ctx context.Context) error
	ExtractDocument(ctx context.Context, upload backend.Upload) (guest.OCRResult, error)
	CreateGuest(ctx context.Context, draft guest.Draft) (any, error)
	ListGuests(ctx context.Context) ([]guest.Record, error)
	Notify(ctx context.Context, request notification.Request) (notification.Result, error)
}

// View is one staff member's dashboard
type View struct {
	backend  Backend
	previews storage.PreviewStore
	store    *Store
	log      *log.Logger
}

// NewView creates a dashboard view in its initial state
func NewView(b Backend, previews storage.PreviewStore) *View {
	return &View{
		backend:  b,
		previews: previews,
		store:    NewStore(InitialState()),
		log:      logger.Service("dashboard"),
	}
}

// State returns the current view state
func (v *View) State() State {
	return v.store.State()
}

// Mount starts a background probe of the backend and loads the guest list.
// The guest list does not wait for the probe.
func (v *View) Mount(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), probeTimeout)
	go func() {
		defer cancel()
		v.ProbeBackend(probeCtx)
	}()

	_ = v.LoadGuests(ctx)
}

// ProbeBackend checks connectivity. The outcome has no effect on the view.
func (v *View) ProbeBackend(ctx context.Context) {
	if err := v.backend.Probe(ctx); err != nil {
		v.log.Debug("Backend probe failed", "error", err)
		return
	}
	v.log.Debug("Backend probe succeeded")
}

// ForgetPreview drops the current preview if it is id. Used once the stored
// file has expired.
func (v *View) ForgetPreview(id string) {
	v.store.Dispatch(PreviewExpired{ID: id})
}

// EditDraft replaces the guest draft
func (v *View) EditDraft(d guest.Draft) {
	v.store.Dispatch(DraftEdited{Draft: d})
}

// EditNotification replaces the notification draft
func (v *View) EditNotification(r notification.Request) {
	v.store.Dispatch(NotificationEdited{Request: r})
}

// ReportError shows msg in the error banner
func (v *View) ReportError(msg string) {
	v.store.Dispatch(RequestFailed{Message: msg})
}

// DismissToast clears the toast and the error banner
func (v *View) DismissToast() {
	v.store.Dispatch(ToastDismissed{})
}

// UploadDocument shows a preview of the file, sends it for OCR and seeds the
// draft from the result. The preview stays even when OCR fails.
func (v *View) UploadDocument(ctx context.Context, upload backend.Upload) (guest.OCRResult, error) {
	handle, err := v.previews.Put(ctx, upload.Filename, upload.ContentType, upload.Data)
	if err != nil {
		v.log.Error("Failed to store preview", "filename", upload.Filename, "error", err)
		v.store.Dispatch(RequestFailed{Message: "Could not store the selected file"})
		return guest.OCRResult{}, err
	}

	before, _ := v.store.Transition(PreviewSelected{Handle: handle})
	if !before.Preview.IsZero() {
		if err := v.previews.Revoke(ctx, before.Preview.ID); err != nil {
			v.log.Warn("Failed to revoke previous preview", "id", before.Preview.ID, "error", err)
		}
	}

	result, err := v.backend.ExtractDocument(ctx, upload)
	if err != nil {
		v.fail("OCR failed", err)
		return guest.OCRResult{}, err
	}

	v.store.Dispatch(OCRReceived{Result: result})
	v.log.Info("Document scanned", "id_type", result.IDType, "preview", handle.ID)
	return result, nil
}

// SaveGuest submits the draft and, once the backend accepts it, reloads the
// guest list. It returns whatever the backend answered.
func (v *View) SaveGuest(ctx context.Context) (any, error) {
	state, ok := v.store.DispatchIf(func(s State) bool { return !s.Saving }, SaveStarted{})
	if !ok {
		v.store.Dispatch(RequestFailed{Message: msgSaveInFlight})
		return nil, ErrSaveInFlight
	}
	defer v.store.Dispatch(SaveFinished{})

	created, err := v.backend.CreateGuest(ctx, state.Draft)
	if err != nil {
		v.fail("Guest save failed", err)
		return nil, err
	}

	v.store.Dispatch(GuestSaved{})
	v.log.Info("Guest saved", "full_name", state.Draft.FullName)

	_ = v.LoadGuests(ctx)
	return created, nil
}

// LoadGuests replaces the displayed list with the backend's full collection
func (v *View) LoadGuests(ctx context.Context) error {
	records, err := v.backend.ListGuests(ctx)
	if err != nil {
		v.fail("Loading guests failed", err)
		return err
	}
	v.store.Dispatch(GuestsLoaded{Records: records})
	return nil
}

// SendNotification dispatches the current notification draft
func (v *View) SendNotification(ctx context.Context) (notification.Result, error) {
	request := v.store.State().Notification

	result, err := v.backend.Notify(ctx, request)
	if err != nil {
		v.fail("Notification failed", err)
		return notification.Result{}, err
	}

	v.store.Dispatch(NotificationSent{Result: result})
	v.log.Info("Notification dispatched", "channel", request.Channel, "status", result.Status)
	return result, nil
}

// Close releases the resources held by the view
func (v *View) Close(ctx context.Context) {
	if preview := v.store.State().Preview; !preview.IsZero() {
		if err := v.previews.Revoke(ctx, preview.ID); err != nil {
			v.log.Warn("Failed to revoke preview", "id", preview.ID, "error", err)
		}
	}
}

func (v *View) fail(msg string, err error) {
	v.log.Warn(msg, "kind", backend.KindOf(err), "error", err)
	v.store.Dispatch(RequestFailed{Message: backend.Message(err)})
}
