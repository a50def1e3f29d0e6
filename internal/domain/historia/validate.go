package historia

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/clinica/historias/internal/domain/errs"
)

var fechaPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks an untyped input record and returns the normalized
// Historia. Rules are evaluated non-short-circuiting so the caller sees
// every violation at once. String fields are trimmed; optional fields
// that are blank after trim become nil.
//
// paciente_edad = 0 is valid: presence means the key is supplied with a
// numeric value, and the documented range is 0-150 inclusive.
func Validate(input map[string]interface{}) (*Historia, error) {
	var errors []string

	nombre, nombreOK := stringField(input, "paciente_nombre")
	if !nombreOK || nombre == "" {
		errors = append(errors, "El nombre del paciente es requerido y debe ser una cadena de texto")
	}
	if len([]rune(nombre)) > 200 {
		errors = append(errors, "El nombre del paciente no puede exceder 200 caracteres")
	}

	edad, edadOK := intField(input, "paciente_edad")
	if !edadOK {
		errors = append(errors, "La edad del paciente es requerida y debe ser un número")
	}
	if edadOK && (edad < 0 || edad > 150) {
		errors = append(errors, "La edad debe estar entre 0 y 150 años")
	}

	cedula, cedulaOK := stringField(input, "paciente_cedula")
	if !cedulaOK || cedula == "" {
		errors = append(errors, "La cédula del paciente es requerida")
	}
	if len([]rune(cedula)) > 50 {
		errors = append(errors, "La cédula no puede exceder 50 caracteres")
	}

	fecha, fechaOK := stringField(input, "fecha_consulta")
	if !fechaOK || fecha == "" {
		errors = append(errors, "La fecha de consulta es requerida y debe tener formato YYYY-MM-DD")
	}
	if fecha != "" {
		if !fechaPattern.MatchString(fecha) {
			errors = append(errors, "La fecha de consulta debe tener formato YYYY-MM-DD")
		} else if _, err := time.Parse("2006-01-02", fecha); err != nil {
			errors = append(errors, "La fecha de consulta no es válida")
		}
	}

	diagnostico, diagOK := stringField(input, "diagnostico")
	if !diagOK || diagnostico == "" {
		errors = append(errors, "El diagnóstico es requerido y debe ser una cadena de texto")
	}
	if len([]rune(diagnostico)) > 500 {
		errors = append(errors, "El diagnóstico no puede exceder 500 caracteres")
	}

	tratamiento, tratOK := stringField(input, "tratamiento")
	if !tratOK || tratamiento == "" {
		errors = append(errors, "El tratamiento es requerido y debe ser una cadena de texto")
	}
	if len([]rune(tratamiento)) > 1000 {
		errors = append(errors, "El tratamiento no puede exceder 1000 caracteres")
	}

	medico, medicoOK := stringField(input, "medico")
	if !medicoOK || medico == "" {
		errors = append(errors, "El nombre del médico es requerido y debe ser una cadena de texto")
	}
	if len([]rune(medico)) > 200 {
		errors = append(errors, "El nombre del médico no puede exceder 200 caracteres")
	}

	sintomas, sintomasErrs := optionalField(input, "sintomas", 1000,
		"Los síntomas deben ser una cadena de texto",
		"Los síntomas no pueden exceder 1000 caracteres")
	errors = append(errors, sintomasErrs...)

	observaciones, obsErrs := optionalField(input, "observaciones", 1000,
		"Las observaciones deben ser una cadena de texto",
		"Las observaciones no pueden exceder 1000 caracteres")
	errors = append(errors, obsErrs...)

	if len(errors) > 0 {
		return nil, &errs.ValidationError{Messages: errors}
	}

	return &Historia{
		PacienteNombre: nombre,
		PacienteEdad:   edad,
		PacienteCedula: cedula,
		FechaConsulta:  fecha,
		Sintomas:       sintomas,
		Diagnostico:    diagnostico,
		Tratamiento:    tratamiento,
		Medico:         medico,
		Observaciones:  observaciones,
	}, nil
}

// stringField returns the trimmed value and whether the key held a string.
func stringField(input map[string]interface{}, key string) (string, bool) {
	v, ok := input[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// intField returns the value and whether the key held a whole number.
// JSON numbers decode as float64, so integrality is checked explicitly.
func intField(input map[string]interface{}, key string) (int, bool) {
	v, ok := input[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

// optionalField validates an optional string. Absence never fails; a
// non-string value or an over-length string does. Blank after trim
// normalizes to nil.
func optionalField(input map[string]interface{}, key string, max int, typeMsg, lenMsg string) (*string, []string) {
	v, ok := input[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, []string{typeMsg}
	}
	trimmed := strings.TrimSpace(s)
	if len([]rune(trimmed)) > max {
		return nil, []string{lenMsg}
	}
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}
