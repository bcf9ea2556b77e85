package dto

import (
	"time"

	"github.com/bookfast/bookfast/internal/models"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type EventResponse struct {
	ID           uint      `json:"id"`
	EventName    string    `json:"event_name"`
	Date         time.Time `json:"date"`
	TicketPrice  float64   `json:"ticket_price"`
	TotalTickets int       `json:"total_tickets"`
	TicketsSold  int       `json:"tickets_sold"`
}

type TicketResponse struct {
	ID           uint                `json:"id"`
	EventID      uint                `json:"event_id"`
	UserID       uint                `json:"user_id"`
	Status       models.TicketStatus `json:"status"`
	PurchaseDate time.Time           `json:"purchase_date"`

	Event *EventResponse `json:"event,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		EventName:    e.Name,
		Date:         e.Date,
		TicketPrice:  e.TicketPrice,
		TotalTickets: e.TotalTickets,
		TicketsSold:  e.TicketsSold,
	}
}

func ToTicketResponse(t *models.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           t.ID,
		EventID:      t.EventID,
		UserID:       t.UserID,
		Status:       t.Status,
		PurchaseDate: t.PurchaseDate,
	}
	if t.Event != nil {
		event := ToEventResponse(t.Event)
		resp.Event = &event
	}
	return resp
}
