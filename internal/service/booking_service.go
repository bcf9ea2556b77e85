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
	ErrEventNotFound          = errors.New("event not found")
	ErrSoldOut                = errors.New("sold out")
	ErrTicketNotFound         = errors.New("ticket not found")
	ErrNotTicketOwner         = errors.New("not authorized to cancel this ticket")
	ErrTicketAlreadyCancelled = errors.New("ticket is already cancelled")
)

type BookingService interface {
	ReserveTicket(ctx context.Context, eventID, userID uint) (*models.Ticket, error)
	CancelTicket(ctx context.Context, ticketID, userID uint) (*models.Ticket, error)
	GetTicket(ctx context.Context, ticketID, userID uint) (*models.Ticket, error)
	ListTickets(ctx context.Context, userID uint) ([]models.Ticket, error)
}

type bookingService struct {
	ticketRepo repository.TicketRepository
	eventRepo  repository.EventRepository
	publisher  *rabbitmq.Publisher
	txTimeout  time.Duration
}

func NewBookingService(ticketRepo repository.TicketRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher, txTimeout time.Duration) BookingService {
	return &bookingService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
		publisher:  publisher,
		txTimeout:  txTimeout,
	}
}

// ReserveTicket claims one unit of capacity and issues a booked ticket.
// The capacity check and the sold-count increment happen under the event
// row lock inside a single transaction, so concurrent reservations can
// never oversell the event.
func (s *bookingService) ReserveTicket(ctx context.Context, eventID, userID uint) (*models.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var result *models.Ticket

	err := s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row, serializing concurrent claims
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		// 2. Capacity check under the lock
		if event.TicketsSold >= event.TotalTickets {
			return ErrSoldOut
		}

		// 3. Consume one unit and issue the ticket atomically
		event.TicketsSold++
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		ticket := &models.Ticket{
			EventID:      event.ID,
			UserID:       userID,
			Status:       models.StatusBooked,
			PurchaseDate: time.Now(),
		}
		if err := s.ticketRepo.Create(ctx, tx, ticket); err != nil {
			return err
		}

		ticket.Event = event
		result = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyTicketBooked, result)
	return result, nil
}

// CancelTicket reverses a booked ticket and returns its unit of capacity.
// The ticket is pre-read without a lock only to learn the owning event;
// the event row lock is then taken first (same order as ReserveTicket)
// and every decision is re-validated on the ticket re-read under lock.
func (s *bookingService) CancelTicket(ctx context.Context, ticketID, userID uint) (*models.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	var result *models.Ticket

	err = s.ticketRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, ticket.EventID)
		if err != nil {
			return err
		}

		locked, err := s.ticketRepo.FindByIDForUpdate(ctx, tx, ticketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if locked.UserID != userID {
			return ErrNotTicketOwner
		}
		if locked.Status == models.StatusCancelled {
			return ErrTicketAlreadyCancelled
		}

		locked.Status = models.StatusCancelled
		if err := s.ticketRepo.Save(ctx, tx, locked); err != nil {
			return err
		}

		event.TicketsSold--
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		locked.Event = event
		result = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(rabbitmq.KeyTicketCancelled, result)
	return result, nil
}

func (s *bookingService) GetTicket(ctx context.Context, ticketID, userID uint) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrNotTicketOwner
	}
	return ticket, nil
}

func (s *bookingService) ListTickets(ctx context.Context, userID uint) ([]models.Ticket, error) {
	return s.ticketRepo.FindByUserID(ctx, userID)
}

// publish is best-effort: a broker failure never affects a committed
// transaction.
func (s *bookingService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Printf("[RabbitMQ] publish %s failed: %v", routingKey, err)
	}
}
