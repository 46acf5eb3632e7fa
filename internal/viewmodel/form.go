// Package viewmodel holds the participant form and table state driven by the
// browser UI. Nothing here touches the DOM or HTTP directly: state changes are
// published through a View, and data goes through an API.
package viewmodel

import (
	"strconv"

	"github.com/wichananm65/participant-registry/internal/participant"
)

const (
	AddLabel    = "Add Participant"
	UpdateLabel = "Update Participant"
)

// Form mirrors the participant form. ParticipantID is the hidden field: empty
// means the next submit creates a participant, anything else updates it.
// JSON names are the signal names used by the page.
type Form struct {
	ParticipantID string `json:"participantId"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Registration  string `json:"registration"`
	SubmitLabel   string `json:"submitLabel"`
}

// NewForm returns an empty form in create mode.
func NewForm() Form {
	return Form{SubmitLabel: AddLabel}
}

// EditMode reports whether a submit would update an existing participant.
func (f Form) EditMode() bool {
	return f.ParticipantID != ""
}

// Record builds the participant from the five visible fields.
func (f Form) Record() participant.Participant {
	return participant.Participant{
		Email:        f.Email,
		FirstName:    f.FirstName,
		LastName:     f.LastName,
		Phone:        f.Phone,
		Registration: f.Registration,
	}
}

// Reset clears every field, including the hidden ID, and restores the submit
// label.
func (f *Form) Reset() {
	*f = NewForm()
}

// LoadForEdit copies p, ID included, into the form and relabels the submit
// control.
func (f *Form) LoadForEdit(p participant.Participant) {
	*f = Form{
		ParticipantID: strconv.FormatInt(p.ID, 10),
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		Registration:  p.Registration,
		SubmitLabel:   UpdateLabel,
	}
}

// MaskPhone applies the phone input mask to the current phone value.
func (f *Form) MaskPhone() {
	f.Phone = MaskPhone(f.Phone)
}
