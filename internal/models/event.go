package models

import "time"

// Event carries the inventory counters for one scheduled event.
// TicketsSold is only ever mutated under the event row lock; the
// invariant 0 <= tickets_sold <= total_tickets is also enforced by a
// CHECK constraint at the database.
type Event struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"event_name"`
	Date         time.Time `gorm:"not null" json:"date"`
	TicketPrice  float64   `gorm:"not null" json:"ticket_price"`
	TotalTickets int       `gorm:"not null" json:"total_tickets"`
	TicketsSold  int       `gorm:"not null;default:0" json:"tickets_sold"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
