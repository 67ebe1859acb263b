package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pistas/internal/court"
	"pistas/internal/metrics"
)

// Notifier receives lifecycle events. Delivery is fire-and-forget; a failed
// notification never fails the booking.
type Notifier interface {
	ReservationCreated(ctx context.Context, res *ReservationWithCourt)
	ReservationPaid(ctx context.Context, res *ReservationWithCourt)
	ReservationCancelled(ctx context.Context, res *ReservationWithCourt)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ReservationWithCourt, error)
	MarkPaid(ctx context.Context, id int64) (*ReservationWithCourt, error)
	Cancel(ctx context.Context, requesterDNI string, id int64) (*ReservationWithCourt, error)
	Delete(ctx context.Context, id int64) (*DeleteSummary, error)
	List(ctx context.Context, f Filter) ([]ReservationWithCourt, error)
}

type service struct {
	repo         Repository
	courts       court.Repository
	notifier     Notifier
	storeTimeout time.Duration
}

func NewService(repo Repository, courts court.Repository, notifier Notifier, storeTimeout time.Duration) Service {
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &service{
		repo:         repo,
		courts:       courts,
		notifier:     notifier,
		storeTimeout: storeTimeout,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ReservationWithCourt, error) {
	if req.RequesterID == "" || req.RequesterName == "" || req.CourtID <= 0 ||
		req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, ErrMissingFields
	}
	if !ValidDate(req.Date) {
		return nil, ErrBadDate
	}

	tr, err := NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	crt, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, storeError(err)
	}
	if crt.InMaintenance {
		metrics.RecordReservationRejected("maintenance")
		return nil, ErrCourtUnavailable
	}

	res, err := s.repo.Create(ctx, CreateParams{
		RequesterID:   req.RequesterID,
		RequesterName: req.RequesterName,
		CourtID:       req.CourtID,
		Date:          req.Date,
		Range:         tr,
		Childcare:     req.Childcare,
		PriceCents:    TotalPriceCents(crt.PriceCents, tr),
	})
	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			metrics.RecordReservationRejected("conflict")
		}
		if errors.Is(err, ErrCourtUnavailable) {
			metrics.RecordReservationRejected("maintenance")
		}
		return nil, storeError(err)
	}

	metrics.RecordReservationCreated(res.CourtName)
	if s.notifier != nil {
		s.notifier.ReservationCreated(ctx, res)
	}

	return res, nil
}

func (s *service) MarkPaid(ctx context.Context, id int64) (*ReservationWithCourt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	res, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	metrics.RecordReservationPaid()
	if s.notifier != nil {
		s.notifier.ReservationPaid(ctx, res)
	}

	return res, nil
}

func (s *service) Cancel(ctx context.Context, requesterDNI string, id int64) (*ReservationWithCourt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if existing.RequesterID != requesterDNI {
		return nil, ErrNotOwner
	}

	res, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	metrics.RecordReservationCancelled()
	if s.notifier != nil {
		s.notifier.ReservationCancelled(ctx, res)
	}

	return res, nil
}

func (s *service) Delete(ctx context.Context, id int64) (*DeleteSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	summary, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	return summary, nil
}

func (s *service) List(ctx context.Context, f Filter) ([]ReservationWithCourt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	reservations, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}

	return reservations, nil
}

// storeError keeps the caller-facing taxonomy stable: domain errors pass
// through, anything else from the storage layer becomes ErrStoreUnavailable.
func storeError(err error) error {
	switch {
	case errors.Is(err, ErrCourtNotFound),
		errors.Is(err, ErrCourtUnavailable),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrReservationNotFound),
		errors.Is(err, ErrInvalidStateTransition),
		errors.Is(err, ErrNotOwner):
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
