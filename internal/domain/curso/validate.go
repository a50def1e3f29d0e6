package curso

import (
	"math"
	"strings"

	"github.com/clinica/historias/internal/domain/errs"
)

// Validate checks an untyped input record and returns the normalized
// Curso. All violations are collected before failing.
func Validate(input map[string]interface{}) (*Curso, error) {
	var errors []string

	nombre, nombreOK := stringField(input, "nombre")
	if !nombreOK || nombre == "" {
		errors = append(errors, "El nombre del curso es requerido y debe ser una cadena de texto")
	}
	if len([]rune(nombre)) > 200 {
		errors = append(errors, "El nombre del curso no puede exceder 200 caracteres")
	}

	var descripcion *string
	if v, ok := input["descripcion"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			errors = append(errors, "La descripción debe ser una cadena de texto")
		} else if trimmed := strings.TrimSpace(s); trimmed != "" {
			descripcion = &trimmed
		}
	}

	duracion, duracionOK := intField(input, "duracion_horas")
	if !duracionOK {
		errors = append(errors, "La duración en horas es requerida y debe ser un número")
	}
	if duracionOK && (duracion < 1 || duracion > 1000) {
		errors = append(errors, "La duración en horas debe estar entre 1 y 1000")
	}

	profesor, profesorOK := stringField(input, "profesor")
	if !profesorOK || profesor == "" {
		errors = append(errors, "El nombre del profesor es requerido y debe ser una cadena de texto")
	}
	if len([]rune(profesor)) > 200 {
		errors = append(errors, "El nombre del profesor no puede exceder 200 caracteres")
	}

	if len(errors) > 0 {
		return nil, &errs.ValidationError{Messages: errors}
	}

	return &Curso{
		Nombre:        nombre,
		Descripcion:   descripcion,
		DuracionHoras: duracion,
		Profesor:      profesor,
	}, nil
}

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
