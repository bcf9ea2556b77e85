package dto

import "time"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=14"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateEventRequest struct {
	EventName    string    `json:"event_name" validate:"required,min=1"`
	Date         time.Time `json:"date" validate:"required,gt"`
	TicketPrice  float64   `json:"ticket_price" validate:"required,gt=0"`
	TotalTickets int       `json:"total_tickets" validate:"required,gt=0"`
}

type UpdateEventRequest struct {
	EventName    *string    `json:"event_name" validate:"omitempty,min=1"`
	Date         *time.Time `json:"date" validate:"omitempty,gt"`
	TicketPrice  *float64   `json:"ticket_price" validate:"omitempty,gt=0"`
	TotalTickets *int       `json:"total_tickets" validate:"omitempty,gt=0"`
}
