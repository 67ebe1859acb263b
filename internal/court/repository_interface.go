package court

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Court, error)
	List(ctx context.Context) ([]Court, error)
}
