// Package openapi builds the OpenAPI 3.0 document for the REST surface
// and serves it together with a Swagger UI page.
package openapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Field describes one schema property of a resource.
type Field struct {
	Name     string
	Type     string // "string", "integer", "date"
	Required bool
	Nullable bool
	MaxLen   int
	Min      *int
	Max      *int
}

// Resource describes one CRUD resource exposed by the API.
type Resource struct {
	Name         string // schema name, e.g. "HistoriaClinica"
	Path         string // base path, e.g. "/historias-clinicas"
	Title        string // singular display name used in summaries
	Fields       []Field
	SecondaryKey string // optional lookup path segment, e.g. "cedula"
}

// Generator builds the OpenAPI 3.0 spec from registered resources.
type Generator struct {
	title     string
	version   string
	resources []Resource
}

func NewGenerator(title, version string) *Generator {
	return &Generator{title: title, version: version}
}

func (g *Generator) AddResource(r Resource) {
	g.resources = append(g.resources, r)
}

// GenerateSpec produces the OpenAPI 3.0 document as a map.
func (g *Generator) GenerateSpec() map[string]interface{} {
	paths := make(map[string]interface{})
	schemas := map[string]interface{}{
		"Envelope": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"success": map[string]string{"type": "boolean"},
				"message": map[string]string{"type": "string"},
				"error":   map[string]string{"type": "string"},
				"count":   map[string]string{"type": "integer"},
			},
		},
	}

	for _, res := range g.resources {
		schemas[res.Name] = g.buildSchema(res)

		paths[res.Path] = map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Listar " + res.Title,
				"operationId": "list" + res.Name,
				"tags":        []string{res.Name},
				"responses": map[string]interface{}{
					"200": g.envelopeResponse("Listado", res.Name, true),
					"500": g.errorResponse("Error interno"),
				},
			},
			"post": map[string]interface{}{
				"summary":     "Crear " + res.Title,
				"operationId": "create" + res.Name,
				"tags":        []string{res.Name},
				"requestBody": g.requestBody(res.Name),
				"responses": map[string]interface{}{
					"201": g.envelopeResponse("Creado", res.Name, false),
					"400": g.errorResponse("Datos inválidos"),
					"500": g.errorResponse("Error interno"),
				},
			},
		}

		paths[res.Path+"/{id}"] = map[string]interface{}{
			"get": map[string]interface{}{
				"summary":     "Obtener " + res.Title + " por ID",
				"operationId": "get" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  idParam(),
				"responses": map[string]interface{}{
					"200": g.envelopeResponse("Encontrado", res.Name, false),
					"400": g.errorResponse("ID inválido"),
					"404": g.errorResponse("No encontrado"),
					"500": g.errorResponse("Error interno"),
				},
			},
			"put": map[string]interface{}{
				"summary":     "Actualizar " + res.Title,
				"operationId": "update" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  idParam(),
				"requestBody": g.requestBody(res.Name),
				"responses": map[string]interface{}{
					"200": g.envelopeResponse("Actualizado", res.Name, false),
					"400": g.errorResponse("Datos inválidos"),
					"404": g.errorResponse("No encontrado"),
					"500": g.errorResponse("Error interno"),
				},
			},
			"delete": map[string]interface{}{
				"summary":     "Eliminar " + res.Title,
				"operationId": "delete" + res.Name,
				"tags":        []string{res.Name},
				"parameters":  idParam(),
				"responses": map[string]interface{}{
					"200": g.errorResponse("Eliminado"),
					"400": g.errorResponse("ID inválido"),
					"404": g.errorResponse("No encontrado"),
					"500": g.errorResponse("Error interno"),
				},
			},
		}

		if res.SecondaryKey != "" {
			paths[res.Path+"/"+res.SecondaryKey+"/{"+res.SecondaryKey+"}"] = map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Buscar " + res.Title + " por " + res.SecondaryKey,
					"operationId": "search" + res.Name,
					"tags":        []string{res.Name},
					"parameters": []map[string]interface{}{
						{"name": res.SecondaryKey, "in": "path", "required": true,
							"schema": map[string]string{"type": "string"}},
					},
					"responses": map[string]interface{}{
						"200": g.envelopeResponse("Listado", res.Name, true),
						"400": g.errorResponse("Parámetro inválido"),
						"500": g.errorResponse("Error interno"),
					},
				},
			}
		}
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":   g.title,
			"version": g.version,
		},
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": schemas,
		},
	}
}

func (g *Generator) buildSchema(res Resource) map[string]interface{} {
	properties := map[string]interface{}{
		"id":         map[string]string{"type": "integer"},
		"created_at": map[string]string{"type": "string", "format": "date-time"},
		"updated_at": map[string]string{"type": "string", "format": "date-time"},
	}
	var required []string
	for _, f := range res.Fields {
		prop := map[string]interface{}{}
		switch f.Type {
		case "date":
			prop["type"] = "string"
			prop["format"] = "date"
		default:
			prop["type"] = f.Type
		}
		if f.Nullable {
			prop["nullable"] = true
		}
		if f.MaxLen > 0 {
			prop["maxLength"] = f.MaxLen
		}
		if f.Min != nil {
			prop["minimum"] = *f.Min
		}
		if f.Max != nil {
			prop["maximum"] = *f.Max
		}
		properties[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (g *Generator) requestBody(schema string) map[string]interface{} {
	return map[string]interface{}{
		"required": true,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]string{"$ref": "#/components/schemas/" + schema},
			},
		},
	}
}

func (g *Generator) envelopeResponse(description, schema string, list bool) map[string]interface{} {
	var data interface{} = map[string]string{"$ref": "#/components/schemas/" + schema}
	if list {
		data = map[string]interface{}{
			"type":  "array",
			"items": map[string]string{"$ref": "#/components/schemas/" + schema},
		}
	}
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{
					"allOf": []interface{}{
						map[string]string{"$ref": "#/components/schemas/Envelope"},
						map[string]interface{}{
							"type":       "object",
							"properties": map[string]interface{}{"data": data},
						},
					},
				},
			},
		},
	}
}

func (g *Generator) errorResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]string{"$ref": "#/components/schemas/Envelope"},
			},
		},
	}
}

func idParam() []map[string]interface{} {
	return []map[string]interface{}{
		{"name": "id", "in": "path", "required": true,
			"schema": map[string]interface{}{"type": "integer", "minimum": 1}},
	}
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>API Historias Clínicas - Documentación</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "/api-docs/openapi.json",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis],
      layout: "BaseLayout"
    })
  </script>
</body>
</html>`

// RegisterRoutes registers the documentation endpoints on the group.
func (g *Generator) RegisterRoutes(docs *echo.Group) {
	docs.GET("", func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
	docs.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.GenerateSpec())
	})
}
