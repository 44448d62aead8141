package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"
)

const (
	apiTitle       = "Export goods pre-classification API"
	apiDescription = "Looks up every HS code that has been declared for a good name, with the number of times each code was used."
	apiVersion     = "1.0"
)

var swaggerPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - Swagger UI</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: {{.SpecURL}}, dom_id: "#swagger-ui"});
</script>
</body>
</html>
`))

var redocPage = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - ReDoc</title>
<meta charset="utf-8"/>
</head>
<body>
<redoc spec-url="{{.SpecURL}}"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>
`))

type DocsHandler struct {
	prefix string
	spec   []byte
}

func NewDocsHandler(prefix string) (*DocsHandler, error) {
	spec, err := json.Marshal(openAPIDocument(prefix))
	if err != nil {
		return nil, err
	}
	return &DocsHandler{prefix: prefix, spec: spec}, nil
}

func (h *DocsHandler) HandleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(h.spec)
}

func (h *DocsHandler) HandleSwaggerUI(w http.ResponseWriter, r *http.Request) {
	h.render(w, swaggerPage)
}

func (h *DocsHandler) HandleReDoc(w http.ResponseWriter, r *http.Request) {
	h.render(w, redocPage)
}

func (h *DocsHandler) render(w http.ResponseWriter, page *template.Template) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, map[string]string{
		"Title":   apiTitle,
		"SpecURL": h.prefix + "openapi.json",
	}); err != nil {
		logger.Error.Printf("Failed to render docs page: %v", err)
	}
}

func openAPIDocument(prefix string) map[string]any {
	record := map[string]any{
		"type":     "object",
		"required": []string{"count"},
		"properties": map[string]any{
			"goodName": map[string]any{"type": "string", "title": "Good name"},
			"hsCode":   map[string]any{"type": "string", "title": "HS code"},
			"count":    map[string]any{"type": "integer", "exclusiveMinimum": 0, "title": "Times used"},
		},
	}

	result := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success": map[string]any{"type": "boolean", "title": "Whether any declaration was found"},
			"msg":     map[string]any{"type": "string", "title": "Description or failure reason"},
			"expire":  map[string]any{"type": "string", "title": "Token expiry, seconds or \"permanent\""},
			"data": map[string]any{
				"type":  "array",
				"title": "HS codes used for the good",
				"items": map[string]any{"$ref": "#/components/schemas/HsCode"},
			},
		},
	}

	resultResponse := func(description string) map[string]any {
		return map[string]any{
			"description": description,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Result"},
				},
			},
		}
	}

	return map[string]any{
		"openapi": "3.0.2",
		"info": map[string]any{
			"title":       apiTitle,
			"description": apiDescription,
			"version":     apiVersion,
		},
		"paths": map[string]any{
			prefix + "getHsCode": map[string]any{
				"post": map[string]any{
					"summary":     "Get pre-classification for a good name",
					"description": "Provide an access token (apply for one if you have none) and a good name to see which HS codes were declared for it and how often.",
					"operationId": "getHsCode",
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/x-www-form-urlencoded": map[string]any{
								"schema": map[string]any{
									"type":     "object",
									"required": []string{"goodName", "token"},
									"properties": map[string]any{
										"goodName": map[string]any{"type": "string", "title": "Good name", "example": "3D massager"},
										"token":    map[string]any{"type": "string", "title": "Access token", "example": "aa7aa8a8fa604c60866413f52563b70c"},
									},
								},
							},
						},
					},
					"responses": map[string]any{
						"200": resultResponse("Lookup finished, see success and msg"),
						"422": resultResponse("Missing goodName or token"),
						"503": resultResponse("Token store or database unavailable"),
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"HsCode": record,
				"Result": result,
			},
		},
	}
}
