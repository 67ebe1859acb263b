package reservation

import "context"

// CreateParams is a validated, priced booking ready to be persisted.
type CreateParams struct {
	RequesterID   string
	RequesterName string
	CourtID       int64
	Date          string
	Range         TimeRange
	Childcare     bool
	PriceCents    int64
}

type Repository interface {
	// Create runs the conflict check and the insert as one atomic unit with
	// respect to other writes on the same court.
	Create(ctx context.Context, p CreateParams) (*ReservationWithCourt, error)
	GetByID(ctx context.Context, id int64) (*ReservationWithCourt, error)
	MarkPaid(ctx context.Context, id int64) (*ReservationWithCourt, error)
	Cancel(ctx context.Context, id int64) (*ReservationWithCourt, error)
	Delete(ctx context.Context, id int64) (*DeleteSummary, error)
	List(ctx context.Context, f Filter) ([]ReservationWithCourt, error)
	HasOverlap(ctx context.Context, courtID int64, date string, r TimeRange) (bool, error)
}
