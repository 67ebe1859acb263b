package reservation

import "errors"

// The error taxonomy surfaced to callers. Storage failures are wrapped into
// ErrStoreUnavailable and never leaked verbatim; creation is all-or-nothing,
// so every one of these is safe to report without partial state.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrBadDate          = errors.New("invalid date, expected YYYY-MM-DD")
	ErrBadTime          = errors.New("invalid time, expected HH:MM")
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	ErrCourtNotFound       = errors.New("court not found")
	ErrCourtUnavailable    = errors.New("court is under maintenance")
	ErrSlotUnavailable     = errors.New("slot overlaps an existing reservation")
	ErrReservationNotFound = errors.New("reservation not found")

	ErrInvalidStateTransition = errors.New("reservation state forbids this transition")
	ErrNotOwner               = errors.New("reservation belongs to another requester")

	ErrStoreUnavailable = errors.New("reservation store unavailable")
)
