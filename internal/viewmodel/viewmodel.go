package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/wichananm65/participant-registry/internal/participant"
)

// API is the participant backend the form talks to. *participant.Service
// satisfies it in process and *client.Client over HTTP.
type API interface {
	List(ctx context.Context) ([]participant.Participant, error)
	Get(ctx context.Context, id int64) (participant.Participant, bool, error)
	Create(ctx context.Context, p participant.Participant) (int64, error)
	Update(ctx context.Context, id int64, p participant.Participant) error
}

// View receives state changes for the page. A *TableView keeps them in
// memory; the web package turns them into DOM patches.
type View interface {
	PatchForm(f Form) error
	AppendRow(r Row) error
	ReplaceRow(r Row) error
	ClearTable() error
	// ReportError surfaces a failed request on the client console only.
	ReportError(err error) error
}

// Submit reads the form, resets it (publishing the reset before any call is
// made) and dispatches a create or an update depending on the hidden ID.
// Failures are logged and reported to the view; the table is left unchanged.
func Submit(ctx context.Context, form *Form, api API, view View) error {
	editing, id := form.EditMode(), form.ParticipantID
	record := form.Record()

	form.Reset()
	if err := view.PatchForm(*form); err != nil {
		slog.Warn("reset participant form", "error", err)
	}

	if !editing {
		return create(ctx, record, api, view)
	}
	return update(ctx, id, record, api, view)
}

func create(ctx context.Context, record participant.Participant, api API, view View) error {
	newID, err := api.Create(ctx, record)
	if err != nil {
		return fail(view, "adding participant", err)
	}
	slog.Info("participant added", "participant_id", newID)
	if newID == 0 {
		return nil
	}
	record.ID = newID
	return view.AppendRow(RowFor(record))
}

func update(ctx context.Context, rawID string, record participant.Participant, api API, view View) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fail(view, "updating participant", fmt.Errorf("invalid participant id %q", rawID))
	}
	if err := api.Update(ctx, id, record); err != nil {
		return fail(view, "updating participant", err)
	}
	slog.Info("participant updated", "participant_id", id)
	record.ID = id
	return view.ReplaceRow(RowFor(record))
}

// Load fetches the whole collection and appends one row per participant in
// response order.
func Load(ctx context.Context, api API, view View) error {
	participants, err := api.List(ctx)
	if err != nil {
		return fail(view, "fetching participants", err)
	}
	for _, p := range participants {
		if err := view.AppendRow(RowFor(p)); err != nil {
			return err
		}
	}
	return nil
}

// Refresh clears the table and loads it again.
func Refresh(ctx context.Context, api API, view View) error {
	if err := view.ClearTable(); err != nil {
		return err
	}
	return Load(ctx, api, view)
}

// ErrNotFound is reported when a row is edited after its participant was
// removed.
var ErrNotFound = errors.New("participant not found")

// Edit loads participant rawID into a fresh form and publishes it.
func Edit(ctx context.Context, rawID string, api API, view View) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fail(view, "loading participant", fmt.Errorf("invalid participant id %q", rawID))
	}
	p, found, err := api.Get(ctx, id)
	if err != nil {
		return fail(view, "loading participant", err)
	}
	if !found {
		return fail(view, "loading participant", fmt.Errorf("%w: %d", ErrNotFound, id))
	}
	form := NewForm()
	form.LoadForEdit(p)
	return view.PatchForm(form)
}

func fail(view View, action string, err error) error {
	err = fmt.Errorf("%s: %w", action, err)
	slog.Error("participant request failed", "error", err)
	if rerr := view.ReportError(err); rerr != nil {
		slog.Warn("report error to client", "error", rerr)
	}
	return err
}
