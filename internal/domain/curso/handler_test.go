package curso

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func jsonRequest(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	c, rec := jsonRequest(e, http.MethodPost,
		`{"nombre":"Anatomía I","duracion_horas":40,"profesor":"Dra. Gómez"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Curso creado exitosamente" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	data := body["data"].(map[string]interface{})
	if data["descripcion"] != nil {
		t.Errorf("expected descripcion null, got %v", data["descripcion"])
	}
}

func TestHandler_Create_Validation(t *testing.T) {
	h, e := newTestHandler()
	c, rec := jsonRequest(e, http.MethodPost, `{"nombre":"Anatomía I"}`)
	h.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	detail, _ := body["error"].(string)
	if !strings.Contains(detail, "La duración en horas es requerida") {
		t.Errorf("expected violations in error field, got %q", detail)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c, rec := jsonRequest(e, http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	h.Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Curso no encontrado" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestHandler_Get_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	for _, raw := range []string{"abc", "-1", "0"} {
		c, rec := jsonRequest(e, http.MethodGet, "")
		c.SetParamNames("id")
		c.SetParamValues(raw)
		h.Get(c)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", raw, rec.Code)
		}
	}
}

func TestHandler_ListAndDelete(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validInput())

	c, rec := jsonRequest(e, http.MethodGet, "")
	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := decodeEnvelope(t, rec)
	if body["count"] != float64(1) {
		t.Errorf("expected count 1, got %v", body["count"])
	}

	c, rec = jsonRequest(e, http.MethodDelete, "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env["message"] != "Curso eliminado exitosamente" {
		t.Errorf("unexpected message: %v", env["message"])
	}
}

func TestHandler_Update(t *testing.T) {
	h, e := newTestHandler()
	h.svc.Create(context.Background(), validInput())

	c, rec := jsonRequest(e, http.MethodPut,
		`{"nombre":"Anatomía II","duracion_horas":60,"profesor":"Dra. Gómez","descripcion":"segundo nivel"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	if data["nombre"] != "Anatomía II" {
		t.Errorf("expected replaced nombre, got %v", data["nombre"])
	}
	if data["descripcion"] != "segundo nivel" {
		t.Errorf("expected descripcion set, got %v", data["descripcion"])
	}
}
