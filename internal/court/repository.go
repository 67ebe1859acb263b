package court

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("court not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Court, error) {
	query := `
		SELECT id, nombre, tipo, precio_cents, en_mantenimiento, fecha_creacion
		FROM pistas
		WHERE id = $1
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, nombre, tipo, precio_cents, en_mantenimiento, fecha_creacion
		FROM pistas
		ORDER BY id
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query)
	if err != nil {
		return nil, err
	}

	return courts, nil
}
