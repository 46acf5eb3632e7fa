package web

import (
	"github.com/starfederation/datastar-go/datastar"

	"github.com/wichananm65/participant-registry/internal/viewmodel"
)

// sseView publishes view model changes as Datastar events.
type sseView struct {
	sse *datastar.ServerSentEventGenerator
}

var _ viewmodel.View = (*sseView)(nil)

func (v *sseView) PatchForm(f viewmodel.Form) error {
	return v.sse.MarshalAndPatchSignals(f)
}

func (v *sseView) AppendRow(r viewmodel.Row) error {
	return v.sse.PatchElementTempl(
		RowComponent(r),
		datastar.WithSelectorID(TableBodyID),
		datastar.WithModeAppend(),
	)
}

// ReplaceRow morphs the row with the same element id.
func (v *sseView) ReplaceRow(r viewmodel.Row) error {
	return v.sse.PatchElementTempl(RowComponent(r))
}

func (v *sseView) ClearTable() error {
	return v.sse.PatchElementTempl(TableBody())
}

func (v *sseView) ReportError(err error) error {
	return v.sse.ConsoleError(err)
}

func (v *sseView) patchPhone(phone string) error {
	return v.sse.MarshalAndPatchSignals(map[string]string{"phone": phone})
}
