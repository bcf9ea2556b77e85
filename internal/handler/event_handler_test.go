package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bookfast/bookfast/internal/dto"
	"github.com/bookfast/bookfast/internal/models"
	"github.com/bookfast/bookfast/internal/service"
	"github.com/bookfast/bookfast/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn func(ctx context.Context, event *models.Event) error
	getFn    func(ctx context.Context, id uint) (*models.Event, error)
	listFn   func(ctx context.Context, skip, limit int) ([]models.Event, error)
	updateFn func(ctx context.Context, id uint, update service.EventUpdate) (*models.Event, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) ListEvents(ctx context.Context, skip, limit int) ([]models.Event, error) {
	return m.listFn(ctx, skip, limit)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, id uint, update service.EventUpdate) (*models.Event, error) {
	return m.updateFn(ctx, id, update)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

func newEventContext(method, target, body, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramValue != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramValue)
	}
	return c, rec
}

// --- Tests ---

func TestCreateEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			return nil
		},
	}

	date := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"event_name":"Go Conference","date":%q,"ticket_price":50,"total_tickets":100}`, date)
	c, rec := newEventContext(http.MethodPost, "/api/v1/events", body, "")

	h := NewEventHandler(svc)
	err := h.CreateEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, 100, resp.TotalTickets)
	assert.Equal(t, 0, resp.TicketsSold)
}

func TestCreateEvent_Handler_ZeroCapacity(t *testing.T) {
	date := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"event_name":"Go Conference","date":%q,"ticket_price":50,"total_tickets":0}`, date)
	c, _ := newEventContext(http.MethodPost, "/api/v1/events", body, "")

	h := NewEventHandler(nil)
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateEvent_Handler_PastDate(t *testing.T) {
	date := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"event_name":"Go Conference","date":%q,"ticket_price":50,"total_tickets":100}`, date)
	c, _ := newEventContext(http.MethodPost, "/api/v1/events", body, "")

	h := NewEventHandler(nil)
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetEvent_Handler_NotFound(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, service.ErrEventNotFound
		},
	}

	c, _ := newEventContext(http.MethodGet, "/api/v1/events/999", "", "999")
	h := NewEventHandler(svc)
	err := h.GetEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestListEvents_Handler_Pagination(t *testing.T) {
	var capturedSkip, capturedLimit int
	svc := &mockEventService{
		listFn: func(ctx context.Context, skip, limit int) ([]models.Event, error) {
			capturedSkip, capturedLimit = skip, limit
			return []models.Event{}, nil
		},
	}

	c, rec := newEventContext(http.MethodGet, "/api/v1/events?skip=20&limit=5", "", "")
	h := NewEventHandler(svc)
	err := h.ListEvents(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20, capturedSkip)
	assert.Equal(t, 5, capturedLimit)
}

func TestListEvents_Handler_Defaults(t *testing.T) {
	var capturedSkip, capturedLimit int
	svc := &mockEventService{
		listFn: func(ctx context.Context, skip, limit int) ([]models.Event, error) {
			capturedSkip, capturedLimit = skip, limit
			return []models.Event{}, nil
		},
	}

	c, _ := newEventContext(http.MethodGet, "/api/v1/events", "", "")
	h := NewEventHandler(svc)
	err := h.ListEvents(c)

	assert.NoError(t, err)
	assert.Equal(t, 0, capturedSkip)
	assert.Equal(t, defaultListLimit, capturedLimit)
}

func TestUpdateEvent_Handler_CapacityBelowSold(t *testing.T) {
	svc := &mockEventService{
		updateFn: func(ctx context.Context, id uint, update service.EventUpdate) (*models.Event, error) {
			return nil, service.ErrCapacityBelowSold
		},
	}

	c, _ := newEventContext(http.MethodPatch, "/api/v1/events/1", `{"total_tickets":1}`, "1")
	h := NewEventHandler(svc)
	err := h.UpdateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateEvent_Handler_PartialUpdate(t *testing.T) {
	var captured service.EventUpdate
	svc := &mockEventService{
		updateFn: func(ctx context.Context, id uint, update service.EventUpdate) (*models.Event, error) {
			captured = update
			return &models.Event{ID: id, Name: "Updated Event", TotalTickets: 100}, nil
		},
	}

	c, rec := newEventContext(http.MethodPatch, "/api/v1/events/1", `{"event_name":"Updated Event"}`, "1")
	h := NewEventHandler(svc)
	err := h.UpdateEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.NotNil(t, captured.Name) {
		assert.Equal(t, "Updated Event", *captured.Name)
	}
	assert.Nil(t, captured.TotalTickets)
	assert.Nil(t, captured.TicketPrice)
}

func TestDeleteEvent_Handler_HasSales(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, id uint) error {
			return service.ErrEventHasSales
		},
	}

	c, _ := newEventContext(http.MethodDelete, "/api/v1/events/1", "", "1")
	h := NewEventHandler(svc)
	err := h.DeleteEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, id uint) error {
			return nil
		},
	}

	c, rec := newEventContext(http.MethodDelete, "/api/v1/events/1", "", "1")
	h := NewEventHandler(svc)
	err := h.DeleteEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
