package historia

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinica/historias/internal/domain/errs"
	"github.com/clinica/historias/pkg/respond"
)

var idPattern = regexp.MustCompile(`^[0-9]+$`)

const invalidIDMsg = "ID inválido. Debe ser un número entero positivo"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/cedula/:cedula", h.GetByCedula)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// parseID accepts only positive decimal integers; anything else is a 400
// before the store is touched.
func parseID(c echo.Context) (int64, bool) {
	raw := c.Param("id")
	if !idPattern.MatchString(raw) {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c echo.Context) error {
	historias, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respond.FailWith(c, http.StatusInternalServerError,
			"Error al obtener las historias clínicas", err.Error())
	}
	return respond.List(c, historias, len(historias))
}

func (h *Handler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, invalidIDMsg)
	}

	historia, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return respond.Fail(c, http.StatusNotFound, nf.Message)
		}
		return respond.FailWith(c, http.StatusInternalServerError,
			"Error al obtener la historia clínica", err.Error())
	}
	return respond.OK(c, historia)
}

func (h *Handler) GetByCedula(c echo.Context) error {
	cedula := strings.TrimSpace(c.Param("cedula"))
	if cedula == "" {
		return respond.Fail(c, http.StatusBadRequest, "La cédula es requerida")
	}

	historias, err := h.svc.GetByCedula(c.Request().Context(), cedula)
	if err != nil {
		return respond.FailWith(c, http.StatusInternalServerError,
			"Error al buscar las historias clínicas", err.Error())
	}
	return respond.List(c, historias, len(historias))
}

func (h *Handler) Create(c echo.Context) error {
	var input map[string]interface{}
	if err := c.Bind(&input); err != nil {
		return respond.FailWith(c, http.StatusBadRequest,
			"Error al crear la historia clínica", "el cuerpo de la petición no es JSON válido")
	}

	historia, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			return respond.FailWith(c, http.StatusBadRequest,
				"Error al crear la historia clínica", ve.Error())
		}
		return respond.FailWith(c, http.StatusInternalServerError,
			"Error al crear la historia clínica", err.Error())
	}
	return respond.Created(c, "Historia clínica creada exitosamente", historia)
}

func (h *Handler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, invalidIDMsg)
	}

	var input map[string]interface{}
	if err := c.Bind(&input); err != nil {
		return respond.FailWith(c, http.StatusBadRequest,
			"Error al actualizar la historia clínica", "el cuerpo de la petición no es JSON válido")
	}

	historia, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return respond.Fail(c, http.StatusNotFound, nf.Message)
		}
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			return respond.FailWith(c, http.StatusBadRequest,
				"Error al actualizar la historia clínica", ve.Error())
		}
		return respond.FailWith(c, http.StatusInternalServerError,
			"Error al actualizar la historia clínica", err.Error())
	}
	return respond.Updated(c, "Historia clínica actualizada exitosamente", historia)
}

func (h *Handler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, invalidIDMsg)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return respond.Fail(c, http.StatusNotFound, nf.Message)
		}
		return respond.FailWith(c, http.StatusInternalServerError,
			"Error al eliminar la historia clínica", err.Error())
	}
	return respond.Deleted(c, "Historia clínica eliminada exitosamente")
}
