package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestHTTPErrorHandler_UnknownRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/no-existe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["message"] != "Ruta no encontrada" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHTTPErrorHandler_MethodNotAllowed(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler(zerolog.Nop())
	e.GET("/solo-get", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/solo-get", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestHTTPErrorHandler_GenericError(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler(zerolog.Nop())
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError, "falló") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestNewDocsGenerator(t *testing.T) {
	spec := newDocsGenerator().GenerateSpec()

	paths := spec["paths"].(map[string]interface{})
	for _, p := range []string{"/historias-clinicas", "/historias-clinicas/cedula/{cedula}", "/cursos"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("missing documented path %s", p)
		}
	}
	info := spec["info"].(map[string]interface{})
	if info["version"] != version {
		t.Errorf("documented version = %v, want %s", info["version"], version)
	}

	schemas := spec["components"].(map[string]interface{})["schemas"].(map[string]interface{})
	props := schemas["HistoriaClinica"].(map[string]interface{})["properties"].(map[string]interface{})
	cedula := props["paciente_cedula"].(map[string]interface{})
	if cedula["maxLength"] != 50 {
		t.Errorf("documented paciente_cedula maxLength = %v, want 50", cedula["maxLength"])
	}
}
