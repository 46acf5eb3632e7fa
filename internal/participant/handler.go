package participant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the participants REST API. Every storage failure is
// answered with 500 and the driver's message; nothing else is distinguished.
type Handler struct {
	service *Service
}

// participantRequest is the body accepted by POST and PUT. It has no ID
// field, so a client-supplied participant_id is ignored.
type participantRequest struct {
	Email        columnValue `json:"email"`
	FirstName    columnValue `json:"first_name"`
	LastName     columnValue `json:"last_name"`
	Phone        columnValue `json:"phone"`
	Registration columnValue `json:"registration"`
}

func (r participantRequest) toParticipant() Participant {
	return Participant{
		Email:        string(r.Email),
		FirstName:    string(r.FirstName),
		LastName:     string(r.LastName),
		Phone:        string(r.Phone),
		Registration: string(r.Registration),
	}
}

// columnValue decodes any JSON value into the text a VARCHAR column would
// hold: strings as is, numbers and booleans by their literal, null as "".
type columnValue string

func (v *columnValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = columnValue(s)
	default:
		*v = columnValue(data)
	}
	return nil
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app fiber.Router) {
	api := app.Group("/api/participants")
	api.Get("/", h.getParticipants)
	api.Get("/:id", h.getParticipant)
	api.Post("/", h.createParticipant)
	api.Put("/:id", h.updateParticipant)
	api.Delete("/:id", h.deleteParticipant)
}

func storageError(c *fiber.Ctx, err error) error {
	slog.Error("participant storage call failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid participant id %q", raw)
	}
	return id, nil
}

// parseBody reads a JSON body. Requests that are not JSON, or carry no body,
// give an empty record; only malformed JSON is an error.
func parseBody(c *fiber.Ctx) (participantRequest, error) {
	var payload participantRequest
	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	if !strings.HasPrefix(ctype, fiber.MIMEApplicationJSON) || len(c.Body()) == 0 {
		return payload, nil
	}
	err := c.App().Config().JSONDecoder(c.Body(), &payload)
	return payload, err
}

func (h *Handler) getParticipants(c *fiber.Ctx) error {
	participants, err := h.service.List(c.UserContext())
	if err != nil {
		return storageError(c, err)
	}
	return c.JSON(participants)
}

// getParticipant answers 200 with an empty body when no row matches.
func (h *Handler) getParticipant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return storageError(c, err)
	}
	p, found, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return storageError(c, err)
	}
	if !found {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(fiber.StatusOK).Send(nil)
	}
	return c.JSON(p)
}

func (h *Handler) createParticipant(c *fiber.Ctx) error {
	payload, err := parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := h.service.Create(c.UserContext(), payload.toParticipant())
	if err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Participant added",
		"participant_id": id,
	})
}

// updateParticipant does not check that the row exists; a missing id still
// answers "Participant updated".
func (h *Handler) updateParticipant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return storageError(c, err)
	}
	payload, err := parseBody(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Update(c.UserContext(), id, payload.toParticipant()); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Participant updated"})
}

func (h *Handler) deleteParticipant(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return storageError(c, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return storageError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Participant deleted"})
}
