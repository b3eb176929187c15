package bill

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/condo-backend/internal/apartment"
	"github.com/nekogravitycat/condo-backend/internal/pkg/metrics"
)

// ApartmentFinder resolves the apartment a resident owns.
type ApartmentFinder interface {
	GetMine(ctx context.Context, userID string) (*apartment.Apartment, error)
}

type Service interface {
	List(ctx context.Context, userID string, filter Filter) ([]*Bill, int, error)
	// Upcoming returns pending bills due between today and today+window.
	Upcoming(ctx context.Context, userID string) ([]*Bill, error)
	Get(ctx context.Context, userID, billID string) (*Bill, error)
	MarkPaid(ctx context.Context, userID, billID string, req PaymentRequest) (*Receipt, error)
}

type Options struct {
	UpcomingWindow time.Duration
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Now            func() time.Time
}

type service struct {
	repo       Repository
	apartments ApartmentFinder
	window     time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(repo Repository, apartments ApartmentFinder, opts Options) Service {
	s := &service{
		repo:       repo,
		apartments: apartments,
		window:     opts.UpcomingWindow,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
	if s.window <= 0 {
		s.window = 7 * 24 * time.Hour
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("module", "bill")
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) List(ctx context.Context, userID string, filter Filter) ([]*Bill, int, error) {
	switch filter.Status {
	case "", StatusAll, string(StatusPending), string(StatusPaid), string(StatusOverdue):
	default:
		return nil, 0, ErrInvalidStatus
	}

	apt, err := s.apartments.GetMine(ctx, userID)
	if err != nil {
		if errors.Is(err, apartment.ErrNotFound) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	filter.ApartmentID = apt.ID

	var (
		bills []*Bill
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bills, err = s.repo.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return bills, total, nil
}

func (s *service) Upcoming(ctx context.Context, userID string) ([]*Bill, error) {
	apt, err := s.apartments.GetMine(ctx, userID)
	if err != nil {
		if errors.Is(err, apartment.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.repo.ListDue(ctx, apt.ID, today, today.Add(s.window))
}

func (s *service) Get(ctx context.Context, userID, billID string) (*Bill, error) {
	// A resident without an apartment has no bills at all.
	apt, err := s.apartments.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if b.ApartmentID != apt.ID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *service) MarkPaid(ctx context.Context, userID, billID string, req PaymentRequest) (*Receipt, error) {
	req.Method = strings.TrimSpace(req.Method)
	if req.Method == "" {
		return nil, ErrMethodMissing
	}

	b, err := s.Get(ctx, userID, billID)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}

	receipt, err := s.repo.MarkPaid(ctx, b.ID, userID, req)
	if err != nil {
		return nil, err
	}

	s.metrics.IncBillPaid()
	s.logger.InfoContext(ctx, "bill paid",
		"bill_id", receipt.BillID,
		"user_id", userID,
		"transaction_id", receipt.TransactionID,
		"amount", receipt.Amount,
		"method", receipt.Method,
	)
	return receipt, nil
}
