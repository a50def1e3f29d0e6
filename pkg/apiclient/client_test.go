package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, body map[string]interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}

	historia := map[string]interface{}{
		"id": 1, "paciente_nombre": "Ana Pérez", "paciente_edad": 34,
		"paciente_cedula": "1234567890", "fecha_consulta": "2024-05-10",
		"sintomas": "Fiebre", "diagnostico": "Gripe", "tratamiento": "Reposo",
		"medico": "Dr. Ruiz", "observaciones": nil,
		"created_at": "2024-05-10T12:00:00Z", "updated_at": "2024-05-10T12:00:00Z",
	}

	mux.HandleFunc("/historias-clinicas", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true, "count": 1, "data": []interface{}{historia},
			})
		case http.MethodPost:
			var in map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{
					"success": false, "message": "Error al crear la historia clínica",
				})
				return
			}
			if in["paciente_nombre"] == "" {
				writeJSON(w, http.StatusBadRequest, map[string]interface{}{
					"success": false,
					"message": "Error al crear la historia clínica",
					"error":   "El nombre del paciente es requerido y debe ser una cadena de texto",
				})
				return
			}
			writeJSON(w, http.StatusCreated, map[string]interface{}{
				"success": true, "message": "Historia clínica creada exitosamente", "data": historia,
			})
		}
	})
	mux.HandleFunc("/historias-clinicas/1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodPut:
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": historia})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"success": true, "message": "Historia clínica eliminada exitosamente",
			})
		}
	})
	mux.HandleFunc("/historias-clinicas/99", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false, "message": "Historia clínica no encontrada",
		})
	})
	mux.HandleFunc("/historias-clinicas/cedula/1234567890", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "count": 1, "data": []interface{}{historia},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListHistorias(t *testing.T) {
	c := New(testServer(t).URL)

	historias, err := c.ListHistorias(context.Background())
	if err != nil {
		t.Fatalf("ListHistorias: %v", err)
	}
	if len(historias) != 1 {
		t.Fatalf("got %d historias, want 1", len(historias))
	}
	if historias[0].PacienteNombre != "Ana Pérez" {
		t.Errorf("paciente_nombre = %q", historias[0].PacienteNombre)
	}
	if historias[0].Observaciones != nil {
		t.Errorf("observaciones = %v, want nil", *historias[0].Observaciones)
	}
}

func TestGetHistoria(t *testing.T) {
	c := New(testServer(t).URL)

	h, err := c.GetHistoria(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetHistoria: %v", err)
	}
	if h.ID != 1 || h.FechaConsulta != "2024-05-10" {
		t.Errorf("unexpected historia: %+v", h)
	}
}

func TestGetHistoriaNotFound(t *testing.T) {
	c := New(testServer(t).URL)

	_, err := c.GetHistoria(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error for missing historia")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
	apiErr := err.(*APIError)
	if apiErr.Message != "Historia clínica no encontrada" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestSearchHistoriasByCedula(t *testing.T) {
	c := New(testServer(t).URL)

	historias, err := c.SearchHistoriasByCedula(context.Background(), "1234567890")
	if err != nil {
		t.Fatalf("SearchHistoriasByCedula: %v", err)
	}
	if len(historias) != 1 {
		t.Fatalf("got %d historias, want 1", len(historias))
	}
}

func TestCreateHistoria(t *testing.T) {
	c := New(testServer(t).URL)

	sintomas := "Fiebre"
	h, err := c.CreateHistoria(context.Background(), HistoriaInput{
		PacienteNombre: "Ana Pérez",
		PacienteEdad:   34,
		PacienteCedula: "1234567890",
		FechaConsulta:  "2024-05-10",
		Sintomas:       &sintomas,
		Diagnostico:    "Gripe",
		Tratamiento:    "Reposo",
		Medico:         "Dr. Ruiz",
	})
	if err != nil {
		t.Fatalf("CreateHistoria: %v", err)
	}
	if h.ID != 1 {
		t.Errorf("id = %d, want 1", h.ID)
	}
}

func TestCreateHistoriaValidationError(t *testing.T) {
	c := New(testServer(t).URL)

	_, err := c.CreateHistoria(context.Background(), HistoriaInput{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Detail == "" {
		t.Error("expected violation detail in error")
	}
}

func TestDeleteHistoria(t *testing.T) {
	c := New(testServer(t).URL)

	if err := c.DeleteHistoria(context.Background(), 1); err != nil {
		t.Fatalf("DeleteHistoria: %v", err)
	}
}
