package historia

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

// fecha_consulta is a DATE column; to_char keeps the wire form YYYY-MM-DD.
const hcCols = `id, paciente_nombre, paciente_edad, paciente_cedula,
	to_char(fecha_consulta, 'YYYY-MM-DD'), sintomas, diagnostico,
	tratamiento, medico, observaciones, created_at, updated_at`

func scanRow(row pgx.Row) (*Historia, error) {
	var h Historia
	err := row.Scan(&h.ID, &h.PacienteNombre, &h.PacienteEdad, &h.PacienteCedula,
		&h.FechaConsulta, &h.Sintomas, &h.Diagnostico,
		&h.Tratamiento, &h.Medico, &h.Observaciones, &h.CreatedAt, &h.UpdatedAt)
	return &h, err
}

func collectRows(rows pgx.Rows) ([]*Historia, error) {
	defer rows.Close()
	items := []*Historia{}
	for rows.Next() {
		h, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (r *repoPG) FindAll(ctx context.Context) ([]*Historia, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+hcCols+` FROM historias_clinicas
		ORDER BY fecha_consulta DESC, id DESC`)
	if err != nil {
		return nil, errs.Store("historia.FindAll", err)
	}
	items, err := collectRows(rows)
	if err != nil {
		return nil, errs.Store("historia.FindAll", err)
	}
	return items, nil
}

func (r *repoPG) FindByID(ctx context.Context, id int64) (*Historia, error) {
	h, err := scanRow(r.pool.QueryRow(ctx, `SELECT `+hcCols+` FROM historias_clinicas WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Store("historia.FindByID", err)
	}
	return h, nil
}

func (r *repoPG) FindByCedula(ctx context.Context, cedula string) ([]*Historia, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+hcCols+` FROM historias_clinicas
		WHERE paciente_cedula = $1 ORDER BY fecha_consulta DESC`, cedula)
	if err != nil {
		return nil, errs.Store("historia.FindByCedula", err)
	}
	items, err := collectRows(rows)
	if err != nil {
		return nil, errs.Store("historia.FindByCedula", err)
	}
	return items, nil
}

func (r *repoPG) Create(ctx context.Context, h *Historia) (*Historia, error) {
	created, err := scanRow(r.pool.QueryRow(ctx, `
		INSERT INTO historias_clinicas (paciente_nombre, paciente_edad, paciente_cedula,
			fecha_consulta, sintomas, diagnostico, tratamiento, medico, observaciones)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8, $9)
		RETURNING `+hcCols,
		h.PacienteNombre, h.PacienteEdad, h.PacienteCedula,
		h.FechaConsulta, h.Sintomas, h.Diagnostico, h.Tratamiento, h.Medico, h.Observaciones))
	if err != nil {
		return nil, errs.Store("historia.Create", err)
	}
	return created, nil
}

func (r *repoPG) Update(ctx context.Context, id int64, h *Historia) (*Historia, error) {
	updated, err := scanRow(r.pool.QueryRow(ctx, `
		UPDATE historias_clinicas
		SET paciente_nombre = $2, paciente_edad = $3, paciente_cedula = $4,
			fecha_consulta = $5::date, sintomas = $6, diagnostico = $7,
			tratamiento = $8, medico = $9, observaciones = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+hcCols,
		id, h.PacienteNombre, h.PacienteEdad, h.PacienteCedula,
		h.FechaConsulta, h.Sintomas, h.Diagnostico, h.Tratamiento, h.Medico, h.Observaciones))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Store("historia.Update", err)
	}
	return updated, nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM historias_clinicas WHERE id = $1`, id)
	if err != nil {
		return false, errs.Store("historia.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}
