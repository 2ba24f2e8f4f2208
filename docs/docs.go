// Package docs holds the generated OpenAPI specification registered with the
// swag runtime. Regenerate with:
//
//	swag init -g cmd/server/main.go -o docs
package docs

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
    "paths": {
        "/chat": {
            "post": {
                "description": "Runs the chat pipeline for a tenant: classifies the message against the tenant's categories, retrieves grounding knowledge, and generates an answer.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Ask the support assistant a question",
                "operationId": "postChat",
                "parameters": [
                    {
                        "description": "Chat request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ChatRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Generated answer",
                        "schema": {"$ref": "#/definitions/handlers.ChatResponse"}
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "429": {
                        "description": "Rate limited",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    },
                    "500": {
                        "description": "Answer generation failed",
                        "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ChatRequest": {
            "type": "object",
            "required": ["message", "tenant_id"],
            "properties": {
                "history": {"type": "array", "items": {"type": "object"}},
                "message": {"type": "string", "example": "How do I reset my password?"},
                "tenant_id": {"type": "string", "example": "t1"}
            }
        },
        "handlers.ChatResponse": {
            "type": "object",
            "properties": {
                "detected_category_ids": {"type": "array", "items": {"type": "string"}},
                "response": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "bad_request"},
                "message": {"type": "string", "example": "missing tenant_id"},
                "request_id": {"type": "string", "example": "7f8d1c2e-..."}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Smart Q&A Widget Backend API",
	Description:      "Multi-tenant support-chat widget backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
