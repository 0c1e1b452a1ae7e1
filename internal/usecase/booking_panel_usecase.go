package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/internal/converter"
	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/pkg/validator"
)

var (
	ErrPanelNotFound  = errors.New("panel not found")
	ErrFetchInFlight  = errors.New("a fetch is already in progress for this panel")
	ErrSaveInFlight   = errors.New("a save is already in progress for this panel")
	ErrNotViewMode    = errors.New("panel is not in view mode")
	ErrNotEditMode    = errors.New("panel is not in edit mode")
	ErrNotLoadError   = errors.New("panel has no failed load to retry")
	ErrUnsavedChanges = errors.New("panel has unsaved changes")
)

// DraftValidationError carries field-scoped schema failures; the draft
// never reaches the network when this is returned.
type DraftValidationError struct {
	Fields map[string]string
}

func (e *DraftValidationError) Error() string {
	return "draft validation failed"
}

// Panel phases. Edit and Saving both present the draft; Saving rejects
// further submissions until the outstanding save resolves.
const (
	PhaseLoading   = "Loading"
	PhaseLoadError = "LoadError"
	PhaseView      = "View"
	PhaseEdit      = "Edit"
	PhaseSaving    = "Saving"
)

// BookingGateway is the fetch/persist surface the panel drives through
// the relay.
type BookingGateway interface {
	FetchBooking(ctx context.Context, id entity.BookingIdentifier) (*dto.RawBookingPayload, error)
	SaveBooking(ctx context.Context, id entity.BookingIdentifier, payload map[string]interface{}) error
}

// CacheInvalidator marks dependent collection views stale after a save.
type CacheInvalidator interface {
	MarkStale(ctx context.Context, tags ...string) error
}

// EditRecorder persists an audit trail entry for a successful save.
type EditRecorder interface {
	RecordEdit(ctx context.Context, operatorID *uuid.UUID, id entity.BookingIdentifier, before, after *entity.BookingRecord) error
}

// RecordListener is notified with the post-save record so a list view
// can reflect the change without a refetch.
type RecordListener func(panelID uuid.UUID, record *entity.BookingRecord)

type BookingPanelUsecase interface {
	Open(ctx context.Context, id entity.BookingIdentifier) (*dto.PanelStateResponse, error)
	Get(panelID uuid.UUID) (*dto.PanelStateResponse, error)
	Retry(ctx context.Context, panelID uuid.UUID) (*dto.PanelStateResponse, error)
	EnterEdit(panelID uuid.UUID) (*dto.PanelStateResponse, error)
	Submit(ctx context.Context, panelID uuid.UUID, draft *dto.EditDraft, operatorID *uuid.UUID) (*dto.SubmitResult, error)
	Cancel(panelID uuid.UUID) (*dto.PanelStateResponse, error)
	Close(panelID uuid.UUID, force bool) error
}

// bookingPanel is the state of one open edit panel. Each panel owns its
// record copy; concurrent edits of the same booking from two panels
// resolve last-write-wins at the store, never client-side.
type bookingPanel struct {
	id         uuid.UUID
	identifier entity.BookingIdentifier
	phase      string
	record     *entity.BookingRecord
	seed       *dto.EditDraft
	draft      *dto.EditDraft
	lastError  string

	// generation discards fetch/save results that land after the panel
	// was closed or reopened.
	generation uint64
	inFlight   bool
}

type bookingPanelUsecase struct {
	log         *logrus.Logger
	gateway     BookingGateway
	invalidator CacheInvalidator
	recorder    EditRecorder
	listener    RecordListener
	validator   *validator.CustomValidator

	mu     sync.Mutex
	panels map[uuid.UUID]*bookingPanel
}

func NewBookingPanelUsecase(
	log *logrus.Logger,
	gateway BookingGateway,
	invalidator CacheInvalidator,
	recorder EditRecorder,
	listener RecordListener,
	customValidator *validator.CustomValidator,
) BookingPanelUsecase {
	return &bookingPanelUsecase{
		log:         log,
		gateway:     gateway,
		invalidator: invalidator,
		recorder:    recorder,
		listener:    listener,
		validator:   customValidator,
		panels:      make(map[uuid.UUID]*bookingPanel),
	}
}

// Open creates a panel for the identifier and fetches the booking. The
// panel lands in View on success or LoadError with a retry affordance on
// failure.
func (u *bookingPanelUsecase) Open(ctx context.Context, id entity.BookingIdentifier) (*dto.PanelStateResponse, error) {
	panel := &bookingPanel{
		id:         uuid.New(),
		identifier: id,
		phase:      PhaseLoading,
		generation: 1,
		inFlight:   true,
	}

	u.mu.Lock()
	u.panels[panel.id] = panel
	u.mu.Unlock()

	u.log.Infof("Panel %s: opening booking %q @ %q (%s)", panel.id, id.GuestName, id.HotelName, id.CheckIn)

	return u.fetch(ctx, panel, panel.generation)
}

// Retry re-runs the fetch with the panel's original identifier. Only
// legal after a failed load.
func (u *bookingPanelUsecase) Retry(ctx context.Context, panelID uuid.UUID) (*dto.PanelStateResponse, error) {
	u.mu.Lock()
	panel, ok := u.panels[panelID]
	if !ok {
		u.mu.Unlock()
		return nil, ErrPanelNotFound
	}
	if panel.inFlight {
		u.mu.Unlock()
		return nil, ErrFetchInFlight
	}
	if panel.phase != PhaseLoadError {
		u.mu.Unlock()
		return nil, ErrNotLoadError
	}
	panel.phase = PhaseLoading
	panel.inFlight = true
	panel.generation++
	gen := panel.generation
	u.mu.Unlock()

	return u.fetch(ctx, panel, gen)
}

// fetch runs the network call outside the lock and applies the result
// only when the panel generation still matches.
func (u *bookingPanelUsecase) fetch(ctx context.Context, panel *bookingPanel, gen uint64) (*dto.PanelStateResponse, error) {
	payload, err := u.gateway.FetchBooking(ctx, panel.identifier)

	u.mu.Lock()
	defer u.mu.Unlock()

	if current, ok := u.panels[panel.id]; !ok || current != panel || panel.generation != gen {
		// Panel closed or reopened while the fetch was in flight; the
		// state holder is gone, discard the result.
		return nil, ErrPanelNotFound
	}

	panel.inFlight = false
	if err != nil {
		panel.phase = PhaseLoadError
		panel.lastError = err.Error()
		u.log.Warnf("Panel %s: load failed: %+v", panel.id, err)
		return u.snapshot(panel), nil
	}

	panel.record = converter.LoadRecord(u.log, payload)
	panel.phase = PhaseView
	panel.lastError = ""
	u.log.Infof("Panel %s: loaded booking %q", panel.id, panel.record.GuestName)
	return u.snapshot(panel), nil
}

func (u *bookingPanelUsecase) Get(panelID uuid.UUID) (*dto.PanelStateResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	panel, ok := u.panels[panelID]
	if !ok {
		return nil, ErrPanelNotFound
	}
	return u.snapshot(panel), nil
}

// EnterEdit seeds a string-typed draft from the current record and
// switches the panel to edit mode. Only legal from view mode.
func (u *bookingPanelUsecase) EnterEdit(panelID uuid.UUID) (*dto.PanelStateResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	panel, ok := u.panels[panelID]
	if !ok {
		return nil, ErrPanelNotFound
	}
	if panel.phase != PhaseView {
		return nil, ErrNotViewMode
	}

	panel.seed = converter.RecordToDraft(panel.record)
	panel.draft = panel.seed
	panel.phase = PhaseEdit
	return u.snapshot(panel), nil
}

// Submit validates and persists a draft. An unchanged draft is a no-op
// that never touches the network; a failed save keeps the draft and edit
// mode intact.
func (u *bookingPanelUsecase) Submit(ctx context.Context, panelID uuid.UUID, draft *dto.EditDraft, operatorID *uuid.UUID) (*dto.SubmitResult, error) {
	u.mu.Lock()
	panel, ok := u.panels[panelID]
	if !ok {
		u.mu.Unlock()
		return nil, ErrPanelNotFound
	}
	if panel.phase == PhaseSaving {
		u.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	if panel.phase != PhaseEdit {
		u.mu.Unlock()
		return nil, ErrNotEditMode
	}

	if draft == nil || !draft.ChangedFrom(panel.seed) {
		panel.phase = PhaseView
		panel.seed = nil
		panel.draft = nil
		result := &dto.SubmitResult{
			NoChanges: true,
			Message:   "No changes to save",
			Panel:     u.snapshot(panel),
		}
		u.mu.Unlock()
		return result, nil
	}

	if err := u.validator.Validate(draft); err != nil {
		u.mu.Unlock()
		return nil, &DraftValidationError{Fields: u.validator.FormatValidationErrors(err)}
	}

	merged, err := converter.ApplyEdit(panel.record, draft)
	if err != nil {
		u.mu.Unlock()
		return nil, &DraftValidationError{Fields: map[string]string{"draft": err.Error()}}
	}

	payload, err := converter.BuildWritePayload(panel.identifier, draft, merged)
	if err != nil {
		u.mu.Unlock()
		return nil, &DraftValidationError{Fields: map[string]string{"draft": err.Error()}}
	}

	panel.phase = PhaseSaving
	panel.inFlight = true
	panel.draft = draft
	gen := panel.generation
	u.mu.Unlock()

	saveErr := u.gateway.SaveBooking(ctx, panel.identifier, payload)

	u.mu.Lock()
	defer u.mu.Unlock()

	if current, ok := u.panels[panelID]; !ok || current != panel || panel.generation != gen {
		return nil, ErrPanelNotFound
	}

	panel.inFlight = false
	if saveErr != nil {
		// Nothing is lost: the submitted draft stays on the panel and
		// edit mode is preserved for a manual retry.
		panel.phase = PhaseEdit
		panel.lastError = saveErr.Error()
		u.log.Warnf("Panel %s: save failed: %+v", panel.id, saveErr)
		return nil, fmt.Errorf("save booking: %w", saveErr)
	}

	before := panel.record
	panel.record = merged
	panel.phase = PhaseView
	panel.seed = nil
	panel.draft = nil
	panel.lastError = ""

	tags := staleTags(merged)
	u.log.Infof("Panel %s: saved booking %q, invalidating %v", panel.id, merged.GuestName, tags)

	if u.listener != nil {
		u.listener(panel.id, merged.Clone())
	}

	// Best-effort side effects on a detached context: neither the audit
	// row nor the staleness flags may fail the save.
	sideCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if u.recorder != nil {
		if err := u.recorder.RecordEdit(sideCtx, operatorID, panel.identifier, before, merged); err != nil {
			u.log.Warnf("Panel %s: audit record failed (non-fatal): %+v", panel.id, err)
		}
	}
	if err := u.invalidator.MarkStale(sideCtx, tags...); err != nil {
		u.log.Warnf("Panel %s: cache invalidation failed (non-fatal): %+v", panel.id, err)
	}

	return &dto.SubmitResult{
		Message:   "Booking saved",
		Panel:     u.snapshot(panel),
		StaleTags: tags,
	}, nil
}

// Cancel discards the draft and returns to view mode without saving.
func (u *bookingPanelUsecase) Cancel(panelID uuid.UUID) (*dto.PanelStateResponse, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	panel, ok := u.panels[panelID]
	if !ok {
		return nil, ErrPanelNotFound
	}
	if panel.phase == PhaseSaving {
		return nil, ErrSaveInFlight
	}
	if panel.phase != PhaseEdit {
		return nil, ErrNotEditMode
	}

	panel.seed = nil
	panel.draft = nil
	panel.phase = PhaseView
	return u.snapshot(panel), nil
}

// Close discards all panel state. Unsaved changes require force; an
// in-flight request is not aborted, its late result is discarded by the
// generation check.
func (u *bookingPanelUsecase) Close(panelID uuid.UUID, force bool) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	panel, ok := u.panels[panelID]
	if !ok {
		return ErrPanelNotFound
	}

	if !force && panel.phase == PhaseEdit && panel.draft != nil && panel.draft.ChangedFrom(panel.seed) {
		return ErrUnsavedChanges
	}

	panel.generation++
	delete(u.panels, panelID)
	u.log.Infof("Panel %s: closed", panelID)
	return nil
}

func (u *bookingPanelUsecase) snapshot(panel *bookingPanel) *dto.PanelStateResponse {
	resp := &dto.PanelStateResponse{
		PanelID: panel.id.String(),
		Phase:   panel.phase,
		Identifier: dto.OpenPanelRequest{
			GuestName: panel.identifier.GuestName,
			HotelName: panel.identifier.HotelName,
			CheckIn:   panel.identifier.CheckIn,
			SheetName: panel.identifier.SheetName,
		},
		LastError: panel.lastError,
	}
	if panel.record != nil {
		resp.Record = converter.RecordToView(panel.record)
	}
	if panel.phase == PhaseEdit || panel.phase == PhaseSaving {
		resp.Draft = panel.draft
	}
	return resp
}

// staleTags names the cached collections that logically contain this
// booking.
func staleTags(record *entity.BookingRecord) []string {
	tags := []string{"enquiries"}
	if record.HotelName != "" {
		tags = append(tags, strings.ToLower(record.HotelName)+"-bookings")
	}
	return tags
}
