package web

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/wichananm65/participant-registry/internal/viewmodel"
)

type Handler struct {
	api viewmodel.API
}

func NewHandler(api viewmodel.API) *Handler {
	return &Handler{api: api}
}

func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.page)

	ui := app.Group("/ui")
	ui.Get("/participants", h.load)
	ui.Post("/participants/refresh", h.refresh)
	ui.Get("/participants/:id/edit", h.edit)
	ui.Post("/form/submit", h.submit)
	ui.Post("/form/phone", h.phone)
}

func (h *Handler) page(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return Page(viewmodel.NewForm()).Render(c.UserContext(), c)
}

// stream runs fn against a Datastar event stream for the current request.
// Each event is flushed as it is sent. Signals must be read from r before
// the first event.
func stream(c *fiber.Ctx, fn http.HandlerFunc) error {
	return adaptor.HTTPHandlerFunc(fn)(c)
}

func newView(w http.ResponseWriter, r *http.Request) *sseView {
	return &sseView{sse: datastar.NewSSE(w, r)}
}

func (h *Handler) load(c *fiber.Ctx) error {
	return stream(c, func(w http.ResponseWriter, r *http.Request) {
		_ = viewmodel.Load(r.Context(), h.api, newView(w, r))
	})
}

func (h *Handler) refresh(c *fiber.Ctx) error {
	return stream(c, func(w http.ResponseWriter, r *http.Request) {
		_ = viewmodel.Refresh(r.Context(), h.api, newView(w, r))
	})
}

func (h *Handler) edit(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	return stream(c, func(w http.ResponseWriter, r *http.Request) {
		_ = viewmodel.Edit(r.Context(), id, h.api, newView(w, r))
	})
}

func (h *Handler) submit(c *fiber.Ctx) error {
	return stream(c, func(w http.ResponseWriter, r *http.Request) {
		form := viewmodel.NewForm()
		err := datastar.ReadSignals(r, &form)
		view := newView(w, r)
		if err != nil {
			_ = view.ReportError(err)
			return
		}
		_ = viewmodel.Submit(r.Context(), &form, h.api, view)
	})
}

func (h *Handler) phone(c *fiber.Ctx) error {
	return stream(c, func(w http.ResponseWriter, r *http.Request) {
		var form viewmodel.Form
		err := datastar.ReadSignals(r, &form)
		view := newView(w, r)
		if err != nil {
			_ = view.ReportError(err)
			return
		}
		form.MaskPhone()
		_ = view.patchPhone(form.Phone)
	})
}
