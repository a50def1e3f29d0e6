package historia

import (
	"context"
)

// Repository is the row-store contract for historias clínicas. Absence is
// an explicit nil result, never an error: FindByID and Update return
// (nil, nil) when no row matches, Delete reports whether a row existed.
type Repository interface {
	FindAll(ctx context.Context) ([]*Historia, error)
	FindByID(ctx context.Context, id int64) (*Historia, error)
	FindByCedula(ctx context.Context, cedula string) ([]*Historia, error)
	Create(ctx context.Context, h *Historia) (*Historia, error)
	Update(ctx context.Context, id int64, h *Historia) (*Historia, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
