package viewmodel

import (
	"strconv"

	"github.com/wichananm65/participant-registry/internal/participant"
)

// Cell positions within a table row. Row matching relies on this layout.
const (
	CellEdit = iota
	CellID
	CellEmail
	CellFirstName
	CellLastName
	CellPhone
	CellRegistration

	cellCount
)

// EditLabel is the text of the edit control in the first cell.
const EditLabel = "Edit"

// Row is one rendered table row: edit control, ID, then the five fields.
type Row [cellCount]string

// RowFor renders p into a row.
func RowFor(p participant.Participant) Row {
	var r Row
	r[CellEdit] = EditLabel
	r[CellID] = strconv.FormatInt(p.ID, 10)
	r[CellEmail] = p.Email
	r[CellFirstName] = p.FirstName
	r[CellLastName] = p.LastName
	r[CellPhone] = p.Phone
	r[CellRegistration] = p.Registration
	return r
}

// ID is the displayed participant ID.
func (r Row) ID() string {
	return r[CellID]
}

// ElementID is the DOM id of the row element.
func (r Row) ElementID() string {
	return "participant-" + r[CellID]
}

// Fields returns the ID cell followed by the five field cells.
func (r Row) Fields() []string {
	return r[CellID:]
}

// Table is the ordered set of rows shown on the page. Rows are not
// deduplicated: appending a participant that is already shown adds a second
// row.
type Table struct {
	Rows []Row
}

func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Replace finds the first row whose ID cell matches r and overwrites its five
// field cells. It reports whether a row was found.
func (t *Table) Replace(r Row) bool {
	for i := range t.Rows {
		if t.Rows[i][CellID] == r[CellID] {
			copy(t.Rows[i][CellEmail:], r[CellEmail:])
			return true
		}
	}
	return false
}

func (t *Table) Clear() {
	t.Rows = nil
}
