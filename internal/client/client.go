// Package client calls the participants REST API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/participant-registry/internal/participant"
)

const collectionPath = "/api/participants"

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("participants api: status %d", e.Code)
	}
	return fmt.Sprintf("participants api: status %d: %s", e.Code, e.Message)
}

// Client talks to a participants server at BaseURL. Requests are not retried.
type Client struct {
	baseURL string
	http    *fiber.Client
	timeout time.Duration
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fiber.Client{},
	}
}

// WithTimeout bounds each request. Zero means no client-side timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

type messageResponse struct {
	Message       string `json:"message"`
	Error         string `json:"error"`
	ParticipantID int64  `json:"participant_id"`
}

type participantRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Registration string `json:"registration"`
}

func toRequest(p participant.Participant) participantRequest {
	return participantRequest{
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		Registration: p.Registration,
	}
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + collectionPath + "/" + strconv.FormatInt(id, 10)
}

// do sends the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, a *fiber.Agent) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout == 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code < 200 || code > 299 {
		var msg messageResponse
		_ = json.Unmarshal(body, &msg)
		return nil, &StatusError{Code: code, Message: msg.Error}
	}
	return body, nil
}

func (c *Client) List(ctx context.Context) ([]participant.Participant, error) {
	body, err := c.do(ctx, c.http.Get(c.baseURL+collectionPath))
	if err != nil {
		return nil, err
	}
	var out []participant.Participant
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode participants: %w", err)
	}
	return out, nil
}

// Get reports found=false when the server answers with an empty body.
func (c *Client) Get(ctx context.Context, id int64) (participant.Participant, bool, error) {
	body, err := c.do(ctx, c.http.Get(c.itemURL(id)))
	if err != nil {
		return participant.Participant{}, false, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return participant.Participant{}, false, nil
	}
	var p participant.Participant
	if err := json.Unmarshal(body, &p); err != nil {
		return participant.Participant{}, false, fmt.Errorf("decode participant: %w", err)
	}
	return p, true, nil
}

func (c *Client) Create(ctx context.Context, p participant.Participant) (int64, error) {
	body, err := c.do(ctx, c.http.Post(c.baseURL+collectionPath).JSON(toRequest(p)))
	if err != nil {
		return 0, err
	}
	var res messageResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return 0, fmt.Errorf("decode create response: %w", err)
	}
	return res.ParticipantID, nil
}

func (c *Client) Update(ctx context.Context, id int64, p participant.Participant) error {
	_, err := c.do(ctx, c.http.Put(c.itemURL(id)).JSON(toRequest(p)))
	return err
}
