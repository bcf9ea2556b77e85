package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bookfast/bookfast/internal/models"
	"github.com/bookfast/bookfast/internal/repository"
	"github.com/bookfast/bookfast/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrCapacityBelowSold = errors.New("cannot reduce capacity below sold tickets")
	ErrEventHasSales     = errors.New("cannot delete event with active ticket sales")
)

// EventUpdate carries the optional fields of a partial event update.
type EventUpdate struct {
	Name         *string
	Date         *time.Time
	TicketPrice  *float64
	TotalTickets *int
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, skip, limit int) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uint, update EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type eventService struct {
	repo      repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(repo repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.repo.Create(ctx, event); err != nil {
		return err
	}
	s.publish(rabbitmq.KeyEventCreated, event)
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, skip, limit int) ([]models.Event, error) {
	return s.repo.FindAll(ctx, skip, limit)
}

// UpdateEvent applies a partial update. TotalTickets participates in the
// inventory invariant, so the update runs under the same event row lock as
// reservations: a concurrent claim cannot slip between the capacity check
// and the write.
func (s *eventService) UpdateEvent(ctx context.Context, id uint, update EventUpdate) (*models.Event, error) {
	var result *models.Event

	err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if update.Name != nil {
			event.Name = *update.Name
		}
		if update.Date != nil {
			event.Date = *update.Date
		}
		if update.TicketPrice != nil {
			event.TicketPrice = *update.TicketPrice
		}
		if update.TotalTickets != nil {
			if *update.TotalTickets < event.TicketsSold {
				return ErrCapacityBelowSold
			}
			event.TotalTickets = *update.TotalTickets
		}

		if err := s.repo.Save(ctx, tx, event); err != nil {
			return err
		}

		result = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyEventUpdated, result)
	return result, nil
}

// DeleteEvent removes an event with no active sales. The check runs under
// the event row lock so a concurrent reservation cannot land between the
// check and the delete.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	var deleted *models.Event

	err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if event.TicketsSold > 0 {
			return ErrEventHasSales
		}

		if err := s.repo.Delete(ctx, tx, event); err != nil {
			return err
		}

		deleted = event
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(rabbitmq.KeyEventDeleted, deleted)
	return nil
}

func (s *eventService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[RabbitMQ] publish %s failed: %v", routingKey, err)
	}
}
