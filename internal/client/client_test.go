package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/participant-registry/internal/participant"
	"github.com/wichananm65/participant-registry/internal/viewmodel"
)

func startServer(t *testing.T, repo participant.Repository) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	participant.NewHandler(participant.NewService(repo)).RegisterRoutes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func TestClientRoundTrip(t *testing.T) {
	c := New(startServer(t, participant.NewInMemoryRepository(nil))).WithTimeout(5 * time.Second)
	ctx := context.Background()

	in := participant.Participant{Email: "a@b.com", FirstName: "A", LastName: "B", Phone: "1234567890", Registration: "2024"}
	id, err := c.Create(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, found, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	in.ID = id
	assert.Equal(t, in, got)

	upd := participant.Participant{Email: "c@d.com", FirstName: "C"}
	require.NoError(t, c.Update(ctx, id, upd))
	got, _, err = c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", got.Email)
	assert.Equal(t, "", got.Phone)

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, found, err = c.Get(ctx, id+1)
	require.NoError(t, err)
	assert.False(t, found)
}

type brokenRepository struct{}

func (brokenRepository) List(context.Context) ([]participant.Participant, error) {
	return nil, errors.New("database is closed")
}
func (brokenRepository) GetByID(context.Context, int64) (participant.Participant, bool, error) {
	return participant.Participant{}, false, errors.New("database is closed")
}
func (brokenRepository) Create(context.Context, participant.Participant) (int64, error) {
	return 0, errors.New("database is closed")
}
func (brokenRepository) Update(context.Context, int64, participant.Participant) error {
	return errors.New("database is closed")
}
func (brokenRepository) Delete(context.Context, int64) error {
	return errors.New("database is closed")
}

func TestClientSurfacesServerError(t *testing.T) {
	c := New(startServer(t, brokenRepository{}))

	_, err := c.List(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, fiber.StatusInternalServerError, se.Code)
	assert.Equal(t, "database is closed", se.Message)
}

func TestClientDrivesViewModel(t *testing.T) {
	c := New(startServer(t, participant.NewInMemoryRepository(nil)))
	view := viewmodel.NewTableView()

	form := viewmodel.Form{Email: "a@b.com", FirstName: "A", LastName: "B", Phone: "(123) 456-7890", Registration: "2024"}
	require.NoError(t, viewmodel.Submit(context.Background(), &form, c, view))
	require.Len(t, view.Table.Rows, 1)
	assert.Equal(t, "1", view.Table.Rows[0].ID())
	assert.Equal(t, viewmodel.NewForm(), view.Form)
}

func TestClientHonoursCancelledContext(t *testing.T) {
	c := New("http://127.0.0.1:1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
