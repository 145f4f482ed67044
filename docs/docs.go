// Package docs registers the gateway's OpenAPI document with swag.
// Regenerate with: swag init -g cmd/gateway/main.go -o docs
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
        "/": {
            "get": {
                "tags": ["pages"],
                "summary": "Entry point",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/signin": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign-in page model",
                "parameters": [
                    {"type": "string", "description": "Page to return to after sign-in", "name": "next", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.formState"}}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign in",
                "parameters": [
                    {"type": "string", "description": "Username or email", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Remember me (on/true)", "name": "remember", "in": "formData"},
                    {"type": "string", "description": "Page to return to", "name": "next", "in": "formData"}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.formState"}}
                }
            }
        },
        "/signout": {
            "post": {
                "tags": ["session"],
                "summary": "Sign out",
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/signup": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign-up page model",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.formState"}}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Sign up",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Email", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "student, doctor or assistant", "name": "role", "in": "formData", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.formState"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.formState"}}
                }
            }
        },
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Current session summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.APIError": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["validation", "auth", "server", "network"]},
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "doctor_name": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "doctor", "assistant", "admin"]}
            }
        },
        "handler.formState": {
            "type": "object",
            "properties": {
                "page": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "next": {"type": "string"},
                "remember": {"type": "boolean"},
                "online": {"type": "boolean"},
                "focus": {"type": "string"},
                "error": {"$ref": "#/definitions/domain.APIError"}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "role": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"},
                "remember": {"type": "boolean"},
                "landing": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DentEdu Web Gateway",
	Description:      "Session, sign-in and route guard gateway for the dental education platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
