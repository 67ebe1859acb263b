package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectWithCourt = `
	SELECT
		r.id,
		r.pista,
		r.dni_usuario,
		r.nombre_usuario,
		r.fecha::text AS fecha,
		to_char(r.hora_inicio, 'HH24:MI') AS hora_inicio,
		to_char(r.hora_fin, 'HH24:MI') AS hora_fin,
		r.ludoteca,
		r.estado,
		r.precio_cents,
		r.fecha_creacion,
		p.nombre AS nombre_pista,
		p.tipo AS tipo_pista
	FROM reservas r
	JOIN pistas p ON r.pista = p.id
`

const overlapQuery = `
	SELECT EXISTS(
		SELECT 1 FROM reservas
		WHERE pista = $1
		  AND fecha = $2
		  AND estado = ANY($3::text[])
		  AND hora_inicio < $5
		  AND $4 < hora_fin
	)
`

func (r *repository) Create(ctx context.Context, p CreateParams) (*ReservationWithCourt, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the court row so concurrent bookings for the same court serialize
	// on the conflict check. Other courts keep proceeding in parallel.
	var inMaintenance bool
	err = tx.GetContext(ctx, &inMaintenance,
		`SELECT en_mantenimiento FROM pistas WHERE id = $1 FOR UPDATE`, p.CourtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if inMaintenance {
		return nil, ErrCourtUnavailable
	}

	conflict, err := hasOverlap(ctx, tx, p.CourtID, p.Date, p.Range)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotUnavailable
	}

	var id int64
	err = tx.GetContext(ctx, &id, `
		INSERT INTO reservas (dni_usuario, nombre_usuario, pista, fecha, hora_inicio, hora_fin, ludoteca, estado, precio_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.RequesterID, p.RequesterName, p.CourtID, p.Date,
		p.Range.StartClock(), p.Range.EndClock(), p.Childcare, StatusPending, p.PriceCents)
	if err != nil {
		return nil, err
	}

	var res ReservationWithCourt
	if err := tx.GetContext(ctx, &res, selectWithCourt+` WHERE r.id = $1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*ReservationWithCourt, error) {
	var res ReservationWithCourt
	err := r.db.GetContext(ctx, &res, selectWithCourt+` WHERE r.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return &res, nil
}

func (r *repository) MarkPaid(ctx context.Context, id int64) (*ReservationWithCourt, error) {
	return r.transition(ctx, id, StatusPaid, []string{StatusPending})
}

func (r *repository) Cancel(ctx context.Context, id int64) (*ReservationWithCourt, error) {
	return r.transition(ctx, id, StatusCancelled, activeStates)
}

// transition is the guarded state change: a single conditional UPDATE whose
// WHERE clause names the states the transition is legal from. Zero rows
// affected means the reservation is missing or in a forbidden state.
func (r *repository) transition(ctx context.Context, id int64, to string, from []string) (*ReservationWithCourt, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservas
		SET estado = $1
		WHERE id = $2 AND estado = ANY($3::text[])
	`, to, id, pq.Array(from))
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	if rowsAffected == 0 {
		var estado string
		err := r.db.GetContext(ctx, &estado, `SELECT estado FROM reservas WHERE id = $1`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrInvalidStateTransition
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id int64) (*DeleteSummary, error) {
	var summary DeleteSummary
	err := r.db.GetContext(ctx, &summary, `
		SELECT r.id, p.nombre AS nombre_pista, r.fecha::text AS fecha, r.precio_cents, r.estado
		FROM reservas r
		JOIN pistas p ON r.pista = p.id
		WHERE r.id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM reservas WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrReservationNotFound
	}

	return &summary, nil
}

func (r *repository) List(ctx context.Context, f Filter) ([]ReservationWithCourt, error) {
	query := selectWithCourt + ` WHERE 1=1`
	args := []interface{}{}

	if f.RequesterID != "" {
		args = append(args, f.RequesterID)
		query += fmt.Sprintf(" AND r.dni_usuario = $%d", len(args))
	}
	if f.CourtID != 0 {
		args = append(args, f.CourtID)
		query += fmt.Sprintf(" AND r.pista = $%d", len(args))
	}

	query += ` ORDER BY r.fecha_creacion DESC`

	reservations := []ReservationWithCourt{}
	if err := r.db.SelectContext(ctx, &reservations, query, args...); err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *repository) HasOverlap(ctx context.Context, courtID int64, date string, tr TimeRange) (bool, error) {
	return hasOverlap(ctx, r.db, courtID, date, tr)
}

func hasOverlap(ctx context.Context, q sqlx.QueryerContext, courtID int64, date string, tr TimeRange) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, overlapQuery,
		courtID, date, pq.Array(activeStates), tr.StartClock(), tr.EndClock())
	if err != nil {
		return false, err
	}
	return exists, nil
}
