package curso

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/historias/internal/domain/errs"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the PostgreSQL-backed Repository.
func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cursoCols = `id, nombre, descripcion, duracion_horas, profesor, created_at, updated_at`

func scanRow(row pgx.Row) (*Curso, error) {
	var c Curso
	err := row.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.DuracionHoras,
		&c.Profesor, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *repoPG) FindAll(ctx context.Context) ([]*Curso, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+cursoCols+` FROM cursos ORDER BY id DESC`)
	if err != nil {
		return nil, errs.Store("curso.FindAll", err)
	}
	defer rows.Close()
	items := []*Curso{}
	for rows.Next() {
		c, err := scanRow(rows)
		if err != nil {
			return nil, errs.Store("curso.FindAll", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("curso.FindAll", err)
	}
	return items, nil
}

func (r *repoPG) FindByID(ctx context.Context, id int64) (*Curso, error) {
	c, err := scanRow(r.pool.QueryRow(ctx, `SELECT `+cursoCols+` FROM cursos WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Store("curso.FindByID", err)
	}
	return c, nil
}

func (r *repoPG) Create(ctx context.Context, c *Curso) (*Curso, error) {
	created, err := scanRow(r.pool.QueryRow(ctx, `
		INSERT INTO cursos (nombre, descripcion, duracion_horas, profesor)
		VALUES ($1, $2, $3, $4)
		RETURNING `+cursoCols,
		c.Nombre, c.Descripcion, c.DuracionHoras, c.Profesor))
	if err != nil {
		return nil, errs.Store("curso.Create", err)
	}
	return created, nil
}

func (r *repoPG) Update(ctx context.Context, id int64, c *Curso) (*Curso, error) {
	updated, err := scanRow(r.pool.QueryRow(ctx, `
		UPDATE cursos
		SET nombre = $2, descripcion = $3, duracion_horas = $4, profesor = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+cursoCols,
		id, c.Nombre, c.Descripcion, c.DuracionHoras, c.Profesor))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Store("curso.Update", err)
	}
	return updated, nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cursos WHERE id = $1`, id)
	if err != nil {
		return false, errs.Store("curso.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}
