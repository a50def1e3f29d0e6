package curso

import (
	"context"
)

// Repository is the row-store contract for cursos. FindByID and Update
// return (nil, nil) when no row matches; Delete reports whether a row
// existed.
type Repository interface {
	FindAll(ctx context.Context) ([]*Curso, error)
	FindByID(ctx context.Context, id int64) (*Curso, error)
	Create(ctx context.Context, c *Curso) (*Curso, error)
	Update(ctx context.Context, id int64, c *Curso) (*Curso, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
