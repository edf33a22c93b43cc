// Package docs registers the timerd OpenAPI document with swag.
// Regenerate with: swag init -g cmd/main.go -o internal/docs
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
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers that whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List audit events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range; date-only means end of day", "name": "to", "in": "query"},
                    {"enum": ["START", "STOP", "RESET", "COUNTDOWN", "SET"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/presets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "List presets",
                "responses": {
                    "200": {"description": "presets", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/presets/{name}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Loads a named preset as the new start value and resets the clock to it.",
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Apply preset",
                "parameters": [
                    {"type": "string", "description": "Preset name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/reset": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Sets the clock back to its start value without stopping it.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Reset timer",
                "parameters": [
                    {"description": "Reset options", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handlers.ResetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/reset-and-start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Reset and start timer",
                "parameters": [
                    {"description": "Optional fast-forward", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handlers.FastForwardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/set": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Applies the given fields, then runs or schedules the action relative to last_event_time.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Set timer fields",
                "parameters": [
                    {"description": "Fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "No-op while the timer is running.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Start timer",
                "parameters": [
                    {"description": "Optional fast-forward", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/handlers.FastForwardRequest"}}
                ],
                "responses": {
                    "200": {"description": "status, state", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Get timer state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TimerState"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/timer/stop": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Stop timer",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "description": "Returns a bearer token for /api/v1.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register an operator",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket pushing {\"type\":\"state\",\"data\":TimerState} every interval. encoding=cbor sends binary CBOR frames with integer envelope keys.",
                "tags": ["timer"],
                "summary": "Display stream",
                "parameters": [
                    {"type": "string", "example": "250ms", "description": "Push period as a Go duration (10ms..10s)", "name": "interval", "in": "query"},
                    {"type": "integer", "example": 250, "description": "Push period in milliseconds", "name": "interval_ms", "in": "query"},
                    {"enum": ["json", "cbor"], "type": "string", "description": "Frame encoding", "name": "encoding", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.FastForwardRequest": {
            "type": "object",
            "properties": {
                "fast_forward_ms": {"description": "Milliseconds added to the clock before it starts; may be negative.", "type": "integer", "example": 2000}
            }
        },
        "handlers.ResetRequest": {
            "type": "object",
            "properties": {
                "prevent_callback": {"description": "Skip the reset callback (no RESET audit event).", "type": "boolean", "example": false}
            }
        },
        "handlers.SetRequest": {
            "type": "object",
            "properties": {
                "action": {"description": "start | stop | reset | resetAndStart", "type": "string", "example": "start"},
                "compensate": {"type": "boolean", "example": true},
                "count_down": {"type": "boolean", "example": true},
                "delay_action_ms": {"type": "integer", "example": 3000},
                "last_event_time": {"description": "Anchor of the action as RFC3339; last_event_time_ms (Unix ms) wins when both are set.", "type": "string", "example": "2025-08-27T15:04:05Z"},
                "last_event_time_ms": {"type": "integer", "example": 1756307045000},
                "running": {"description": "running=true with no action resumes the timer.", "type": "boolean"},
                "start_at_ms": {"type": "integer", "example": 60000},
                "time_ms": {"type": "integer", "example": 30000}
            }
        },
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "models.Display": {
            "type": "object",
            "properties": {
                "hours": {"type": "integer"},
                "minutes": {"type": "integer"},
                "seconds": {"type": "integer"},
                "sign": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "models.TimerState": {
            "type": "object",
            "properties": {
                "count_down": {"type": "boolean"},
                "decreasing": {"type": "boolean"},
                "display": {"$ref": "#/definitions/models.Display"},
                "last_event_time": {"type": "string"},
                "running": {"type": "boolean"},
                "start_at_ms": {"type": "integer"},
                "time_ms": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the token from /auth/sign-in.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "timerd API",
	Description:      "Countdown and elapsed-time timer with scheduled actions, audit log and a live display stream.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
