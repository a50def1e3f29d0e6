// Package apiclient provides a Go client for the historias clínicas REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Historia is a patient visit record as returned by the API.
type Historia struct {
	ID             int64   `json:"id"`
	PacienteNombre string  `json:"paciente_nombre"`
	PacienteEdad   int     `json:"paciente_edad"`
	PacienteCedula string  `json:"paciente_cedula"`
	FechaConsulta  string  `json:"fecha_consulta"`
	Sintomas       *string `json:"sintomas"`
	Diagnostico    string  `json:"diagnostico"`
	Tratamiento    string  `json:"tratamiento"`
	Medico         string  `json:"medico"`
	Observaciones  *string `json:"observaciones"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// HistoriaInput is the payload for creating or updating a historia clínica.
type HistoriaInput struct {
	PacienteNombre string  `json:"paciente_nombre"`
	PacienteEdad   int     `json:"paciente_edad"`
	PacienteCedula string  `json:"paciente_cedula"`
	FechaConsulta  string  `json:"fecha_consulta"`
	Sintomas       *string `json:"sintomas,omitempty"`
	Diagnostico    string  `json:"diagnostico"`
	Tratamiento    string  `json:"tratamiento"`
	Medico         string  `json:"medico"`
	Observaciones  *string `json:"observaciones,omitempty"`
}

// Curso is a course record as returned by the API.
type Curso struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	Descripcion   *string `json:"descripcion"`
	DuracionHoras int     `json:"duracion_horas"`
	Profesor      string  `json:"profesor"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// CursoInput is the payload for creating or updating a curso.
type CursoInput struct {
	Nombre        string  `json:"nombre"`
	Descripcion   *string `json:"descripcion,omitempty"`
	DuracionHoras int     `json:"duracion_horas"`
	Profesor      string  `json:"profesor"`
}

// APIError carries the error envelope of a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to a historias clínicas API server.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Detail:     env.Error,
		}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

// ListHistorias returns all historias clínicas, newest consultation first.
func (c *Client) ListHistorias(ctx context.Context) ([]Historia, error) {
	var out []Historia
	if err := c.do(ctx, http.MethodGet, "/historias-clinicas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHistoria returns the historia clínica with the given id.
func (c *Client) GetHistoria(ctx context.Context, id int64) (*Historia, error) {
	var out Historia
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/historias-clinicas/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchHistoriasByCedula returns the historias for a patient cédula.
func (c *Client) SearchHistoriasByCedula(ctx context.Context, cedula string) ([]Historia, error) {
	var out []Historia
	path := "/historias-clinicas/cedula/" + url.PathEscape(cedula)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateHistoria creates a historia clínica and returns the stored record.
func (c *Client) CreateHistoria(ctx context.Context, input HistoriaInput) (*Historia, error) {
	var out Historia
	if err := c.do(ctx, http.MethodPost, "/historias-clinicas", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHistoria replaces the historia clínica with the given id.
func (c *Client) UpdateHistoria(ctx context.Context, id int64, input HistoriaInput) (*Historia, error) {
	var out Historia
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/historias-clinicas/%d", id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteHistoria removes the historia clínica with the given id.
func (c *Client) DeleteHistoria(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/historias-clinicas/%d", id), nil, nil)
}

// ListCursos returns all cursos.
func (c *Client) ListCursos(ctx context.Context) ([]Curso, error) {
	var out []Curso
	if err := c.do(ctx, http.MethodGet, "/cursos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCurso returns the curso with the given id.
func (c *Client) GetCurso(ctx context.Context, id int64) (*Curso, error) {
	var out Curso
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cursos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCurso creates a curso and returns the stored record.
func (c *Client) CreateCurso(ctx context.Context, input CursoInput) (*Curso, error) {
	var out Curso
	if err := c.do(ctx, http.MethodPost, "/cursos", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCurso replaces the curso with the given id.
func (c *Client) UpdateCurso(ctx context.Context, id int64, input CursoInput) (*Curso, error) {
	var out Curso
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cursos/%d", id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCurso removes the curso with the given id.
func (c *Client) DeleteCurso(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cursos/%d", id), nil, nil)
}
