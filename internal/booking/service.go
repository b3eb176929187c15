package booking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/condo-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/condo-backend/internal/pkg/metrics"
)

type CreateRequest struct {
	UserID      string
	ServiceType ServiceType
	SlotNumber  string
	Date        time.Time
	EndDate     *time.Time
	StartTime   Clock
	EndTime     Clock
	Notes       *string
}

type Service interface {
	// Create confirms the booking unless it overlaps a confirmed booking of the same slot.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	// ListMine returns the user's bookings, newest first.
	ListMine(ctx context.Context, userID string) ([]*Booking, error)
	// ListByDate returns confirmed bookings of a service that cover the given day.
	ListByDate(ctx context.Context, filter Filter) ([]*Booking, error)
}

type service struct {
	repo    Repository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(repo Repository, logger *slog.Logger, m *metrics.Metrics) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:    repo,
		logger:  logger.With("module", "booking"),
		metrics: m,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate input
	req.SlotNumber = strings.TrimSpace(req.SlotNumber)
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	b := &Booking{
		UserID:      req.UserID,
		ServiceType: req.ServiceType,
		SlotNumber:  req.SlotNumber,
		Date:        day(req.Date),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      StatusConfirmed, // Accepted requests are confirmed immediately
		Notes:       req.Notes,
	}
	if req.EndDate != nil {
		end := day(*req.EndDate)
		b.EndDate = &end
	}

	// 2. Check and insert while holding the slot lock
	err := s.repo.WithSlotLock(ctx, b.ServiceType, b.SlotNumber, func(repo Repository) error {
		existing, err := repo.ListConfirmedBySlot(ctx, b.ServiceType, b.SlotNumber)
		if err != nil {
			return err
		}
		want := b.Window()
		for _, e := range existing {
			if e.Window().Overlaps(want) {
				return apperror.Wrapf(ErrSlotTaken, http.StatusConflict,
					"slot %s is already booked for this time", b.SlotNumber)
			}
		}
		return repo.Create(ctx, b)
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.IncBookingConflict(string(b.ServiceType))
			s.logger.InfoContext(ctx, "booking rejected",
				"service_type", b.ServiceType,
				"slot", b.SlotNumber,
				"date", b.Date.Format(DateLayout),
			)
		}
		return nil, err
	}

	s.metrics.IncBookingCreated(string(b.ServiceType))
	s.logger.InfoContext(ctx, "booking confirmed",
		"id", b.ID,
		"user_id", b.UserID,
		"service_type", b.ServiceType,
		"slot", b.SlotNumber,
		"date", b.Date.Format(DateLayout),
	)
	return b, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]*Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListByDate(ctx context.Context, filter Filter) ([]*Booking, error) {
	if !filter.ServiceType.Valid() {
		return nil, ErrInvalidServiceType
	}
	filter.Date = day(filter.Date)
	filter.SlotNumber = strings.TrimSpace(filter.SlotNumber)
	return s.repo.ListConfirmed(ctx, filter)
}

func validateCreate(req CreateRequest) error {
	if req.UserID == "" {
		return ErrInvalidInput
	}
	if !req.ServiceType.Valid() {
		return ErrInvalidServiceType
	}
	if req.SlotNumber == "" {
		return ErrSlotRequired
	}
	if req.Date.IsZero() {
		return ErrInvalidInput
	}
	if req.EndDate != nil {
		// Range bookings block whole days, so only the day order matters.
		if day(*req.EndDate).Before(day(req.Date)) {
			return ErrInvalidDateRange
		}
		return nil
	}
	if req.EndTime <= req.StartTime {
		return ErrInvalidTimeRange
	}
	return nil
}
