package curso

import (
	"time"
)

// Curso maps to the cursos table.
type Curso struct {
	ID            int64     `db:"id" json:"id"`
	Nombre        string    `db:"nombre" json:"nombre"`
	Descripcion   *string   `db:"descripcion" json:"descripcion"`
	DuracionHoras int       `db:"duracion_horas" json:"duracion_horas"`
	Profesor      string    `db:"profesor" json:"profesor"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
