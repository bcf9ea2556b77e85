//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/bookfast/bookfast/internal/models"
	"github.com/bookfast/bookfast/internal/repository"
	"github.com/bookfast/bookfast/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventService() service.EventService {
	return service.NewEventService(repository.NewEventRepository(testDB), nil)
}

func TestUpdateEvent_CapacityBelowSoldRejected(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Test Festival", 10)
	bookingSvc := newBookingService()
	eventSvc := newEventService()

	for i := 0; i < 3; i++ {
		_, err := bookingSvc.ReserveTicket(context.Background(), event.ID, uint(i+1))
		require.NoError(t, err)
	}

	lower := 2
	_, err := eventSvc.UpdateEvent(context.Background(), event.ID, service.EventUpdate{TotalTickets: &lower})
	assert.ErrorIs(t, err, service.ErrCapacityBelowSold)
	assert.Equal(t, 10, reloadEvent(t, event.ID).TotalTickets)

	// shrinking down to exactly the sold count is allowed
	exact := 3
	updated, err := eventSvc.UpdateEvent(context.Background(), event.ID, service.EventUpdate{TotalTickets: &exact})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.TotalTickets)
	checkInvariant(t, event.ID)
}

func TestUpdateEvent_PartialFields(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Test Festival", 10)
	eventSvc := newEventService()

	name := "Updated Event"
	price := 75.0
	updated, err := eventSvc.UpdateEvent(context.Background(), event.ID, service.EventUpdate{
		Name:        &name,
		TicketPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated Event", updated.Name)
	assert.Equal(t, 75.0, updated.TicketPrice)
	assert.Equal(t, 10, updated.TotalTickets)
}

func TestDeleteEvent_WithSalesRejected(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Test Festival", 10)
	bookingSvc := newBookingService()
	eventSvc := newEventService()

	ticket, err := bookingSvc.ReserveTicket(context.Background(), event.ID, 1)
	require.NoError(t, err)

	err = eventSvc.DeleteEvent(context.Background(), event.ID)
	assert.ErrorIs(t, err, service.ErrEventHasSales)

	// once the sale is reversed the event can go
	_, err = bookingSvc.CancelTicket(context.Background(), ticket.ID, 1)
	require.NoError(t, err)

	require.NoError(t, eventSvc.DeleteEvent(context.Background(), event.ID))
	_, err = eventSvc.GetEvent(context.Background(), event.ID)
	assert.ErrorIs(t, err, service.ErrEventNotFound)

	// the cancelled ticket rows go with the event
	var remaining int64
	testDB.Model(&models.Ticket{}).Where("event_id = ?", event.ID).Count(&remaining)
	assert.Equal(t, int64(0), remaining)
}

func TestListEvents_Pagination(t *testing.T) {
	cleanTables()
	eventSvc := newEventService()

	for i := 0; i < 15; i++ {
		require.NoError(t, testDB.Create(&models.Event{
			Name:         "Event",
			Date:         time.Now().Add(24 * time.Hour),
			TicketPrice:  10.0,
			TotalTickets: 5,
		}).Error)
	}

	first, err := eventSvc.ListEvents(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Len(t, first, 10)

	rest, err := eventSvc.ListEvents(context.Background(), 10, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 5)
}
