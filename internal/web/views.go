// Package web serves the participants page and the Datastar endpoints that
// drive its form and table.
package web

import (
	"embed"
	"encoding/json"
	"html/template"

	"github.com/a-h/templ"

	"github.com/wichananm65/participant-registry/internal/viewmodel"
)

// DatastarURL is the client bundle the page loads.
const DatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// TableBodyID is the DOM id rows are appended to.
const TableBodyID = "participant-rows"

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	DatastarURL string
	Signals     string
	SubmitLabel string
}

// Page renders the full document with form seeded from form.
func Page(form viewmodel.Form) templ.Component {
	signals, _ := json.Marshal(form)
	return templ.FromGoHTML(templates.Lookup("page"), pageData{
		DatastarURL: DatastarURL,
		Signals:     string(signals),
		SubmitLabel: form.SubmitLabel,
	})
}

// RowComponent renders one table row.
func RowComponent(r viewmodel.Row) templ.Component {
	return templ.FromGoHTML(templates.Lookup("row"), r)
}

// TableBody renders the empty table body.
func TableBody() templ.Component {
	return templ.FromGoHTML(templates.Lookup("tbody"), nil)
}
