package historia

import (
	"time"
)

// Historia maps to the historias_clinicas table. Optional fields are
// pointers so that an absent value round-trips as JSON null, never as "".
type Historia struct {
	ID             int64     `db:"id" json:"id"`
	PacienteNombre string    `db:"paciente_nombre" json:"paciente_nombre"`
	PacienteEdad   int       `db:"paciente_edad" json:"paciente_edad"`
	PacienteCedula string    `db:"paciente_cedula" json:"paciente_cedula"`
	FechaConsulta  string    `db:"fecha_consulta" json:"fecha_consulta"`
	Sintomas       *string   `db:"sintomas" json:"sintomas"`
	Diagnostico    string    `db:"diagnostico" json:"diagnostico"`
	Tratamiento    string    `db:"tratamiento" json:"tratamiento"`
	Medico         string    `db:"medico" json:"medico"`
	Observaciones  *string   `db:"observaciones" json:"observaciones"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
