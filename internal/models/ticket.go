package models

import "time"

type TicketStatus string

const (
	StatusBooked    TicketStatus = "booked"
	StatusCancelled TicketStatus = "cancelled"
)

// Ticket is created only by a successful reservation; cancellation is the
// single legal status transition (booked to cancelled). Ticket rows are
// removed only when their event is deleted, which requires zero active
// sales, so the cascade can only ever drop cancelled tickets.
type Ticket struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	EventID      uint         `gorm:"not null;index" json:"event_id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	Status       TicketStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	PurchaseDate time.Time    `gorm:"not null" json:"purchase_date"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}
