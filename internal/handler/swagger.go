package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dompet-app/dompet-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document the API publishes
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// OpenAPIServers are advertised in /openapi.json
var OpenAPIServers = []Server{
	{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
	{URL: "https://api.dompet.app/api/v1", Description: "Production"},
}

const jsonMediaType = "application/json"

// ServeOpenAPI3Spec serves the generated Swagger 2.0 document as OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read swagger doc")
		return NewInternalError(c, "Failed to read API documentation")
	}

	spec, err := convertSwagger2([]byte(doc))
	if err != nil {
		log.Error().Err(err).Msg("Failed to convert swagger doc")
		return NewInternalError(c, "Failed to convert API documentation")
	}
	return c.JSON(http.StatusOK, spec)
}

// convertSwagger2 rewrites a Swagger 2.0 document: definitions become
// components/schemas, body parameters become request bodies and response
// schemas move under a JSON media type
func convertSwagger2(doc []byte) (*OpenAPI3Spec, error) {
	var swagger2 struct {
		Info                map[string]interface{} `json:"info"`
		Paths               map[string]interface{} `json:"paths"`
		Definitions         map[string]interface{} `json:"definitions"`
		SecurityDefinitions map[string]interface{} `json:"securityDefinitions"`
	}
	if err := json.Unmarshal(doc, &swagger2); err != nil {
		return nil, err
	}

	paths := make(map[string]interface{}, len(swagger2.Paths))
	for path, item := range swagger2.Paths {
		methods, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		converted := make(map[string]interface{}, len(methods))
		for method, op := range methods {
			if operation, ok := op.(map[string]interface{}); ok {
				converted[method] = convertOperation(operation)
			}
		}
		paths[path] = converted
	}

	components := make(map[string]interface{})
	if len(swagger2.Definitions) > 0 {
		components["schemas"] = rewriteRefs(swagger2.Definitions)
	}
	if len(swagger2.SecurityDefinitions) > 0 {
		components["securitySchemes"] = swagger2.SecurityDefinitions
	}

	return &OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       swagger2.Info,
		Servers:    OpenAPIServers,
		Paths:      paths,
		Components: components,
	}, nil
}

func convertOperation(op map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "parameters", "responses", "consumes", "produces":
		default:
			result[key] = rewriteRefs(value)
		}
	}

	if params, ok := op["parameters"].([]interface{}); ok {
		var converted []interface{}
		for _, p := range params {
			param, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			if param["in"] == "body" {
				result["requestBody"] = map[string]interface{}{
					"description": param["description"],
					"required":    param["required"] == true,
					"content":     jsonContent(param["schema"]),
				}
				continue
			}
			converted = append(converted, convertParameter(param))
		}
		if len(converted) > 0 {
			result["parameters"] = converted
		}
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		converted := make(map[string]interface{}, len(responses))
		for status, r := range responses {
			resp, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			out := map[string]interface{}{"description": resp["description"]}
			if schema, ok := resp["schema"]; ok {
				out["content"] = jsonContent(schema)
			}
			converted[status] = out
		}
		result["responses"] = converted
	}
	return result
}

// convertParameter moves a query or path parameter's type fields into a schema
func convertParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = rewriteRefs(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

func jsonContent(schema interface{}) map[string]interface{} {
	return map[string]interface{}{
		jsonMediaType: map[string]interface{}{"schema": rewriteRefs(schema)},
	}
}

// rewriteRefs points every $ref at components/schemas
func rewriteRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = rewriteRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = rewriteRefs(item)
		}
		return result
	default:
		return data
	}
}
