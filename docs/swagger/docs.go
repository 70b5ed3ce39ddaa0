// Package swagger registers the OpenAPI document served under /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/reconcile": {
            "post": {
                "description": "Matches the records of input_a and input_b by key and writes the reconciled file to output.\nLocations are local paths or s3://bucket/key objects.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "Reconcile two record files",
                "parameters": [
                    {
                        "description": "Reconciliation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/reconcile.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "Run report", "schema": {"$ref": "#/definitions/reconcile.Report"}},
                    "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "Malformed record", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reconcile/runs": {
            "get": {
                "description": "Returns recorded runs, most recent first.",
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "List reconciliation runs",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum number of runs (default 20, max 500)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "Runs", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Run"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Run history not configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/reconcile/runs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reconcile"],
                "summary": "Get a reconciliation run",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Run ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "Run", "schema": {"$ref": "#/definitions/models.Run"}},
                    "404": {"description": "Run not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Run history not configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "reconcile.Request": {
            "type": "object",
            "properties": {
                "input_a": {"type": "string", "example": "s3://records/a.csv"},
                "input_b": {"type": "string", "example": "s3://records/b.csv"},
                "output": {"type": "string", "example": "s3://records/out.csv"},
                "chunk_size": {"type": "integer", "example": 1000},
                "workers": {"type": "integer", "example": 4},
                "timeout_seconds": {"type": "integer"},
                "delimiter": {"type": "string", "example": ","},
                "pairing": {"type": "string", "example": "positional"},
                "field_policy": {"type": "string", "example": "strict"}
            }
        },
        "reconcile.Report": {
            "type": "object",
            "properties": {
                "run": {"$ref": "#/definitions/models.Run"},
                "summary": {"$ref": "#/definitions/reconcile.Summary"}
            }
        },
        "reconcile.Summary": {
            "type": "object",
            "properties": {
                "pairs": {"type": "integer"},
                "chunks_a": {"type": "integer"},
                "chunks_b": {"type": "integer"},
                "records_a": {"type": "integer"},
                "records_b": {"type": "integer"},
                "output": {"type": "integer"},
                "matched": {"type": "integer"},
                "only_a": {"type": "integer"},
                "only_b": {"type": "integer"},
                "conflicts": {"type": "integer"},
                "duplicate_keys_a": {"type": "integer"},
                "duplicate_keys_b": {"type": "integer"},
                "dropped_chunks_a": {"type": "integer"},
                "dropped_chunks_b": {"type": "integer"},
                "dropped_records_a": {"type": "integer"},
                "dropped_records_b": {"type": "integer"},
                "duration": {"type": "integer"}
            }
        },
        "models.Run": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "input_a": {"type": "string"},
                "input_b": {"type": "string"},
                "output": {"type": "string"},
                "chunk_size": {"type": "integer"},
                "workers": {"type": "integer"},
                "pairing": {"type": "string"},
                "field_policy": {"type": "string"},
                "status": {"type": "string"},
                "error": {"type": "string"},
                "cached": {"type": "boolean"},
                "pairs": {"type": "integer"},
                "records_a": {"type": "integer"},
                "records_b": {"type": "integer"},
                "written": {"type": "integer"},
                "matched": {"type": "integer"},
                "only_a": {"type": "integer"},
                "only_b": {"type": "integer"},
                "conflicts": {"type": "integer"},
                "duplicate_keys_a": {"type": "integer"},
                "duplicate_keys_b": {"type": "integer"},
                "dropped_records_a": {"type": "integer"},
                "dropped_records_b": {"type": "integer"},
                "duration_ms": {"type": "integer"},
                "created_at": {"type": "string"},
                "finished_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Record Reconciler API",
	Description:      "API for reconciling key-value record files.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
