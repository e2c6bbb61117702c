// Package docs is generated by swag init from the handler annotations.
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
        "/protection/check": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Protection"],
                "summary": "Check whether a device may submit feedback",
                "parameters": [
                    {
                        "description": "Fingerprint and optional subject",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request_models.ProtectionCheckRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response_models.ProtectionCheckResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response_models.ProtectionCheckResponse"}}
                }
            }
        },
        "/protection/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Protection"],
                "summary": "Read the protection toggle",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response_models.ProtectionStatusResponse"}}
                }
            }
        },
        "/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Feedback"],
                "summary": "Submit exhibition feedback",
                "parameters": [
                    {
                        "description": "Feedback payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request_models.SubmitFeedbackRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Administrator login",
                "parameters": [
                    {
                        "description": "Login payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request_models.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/admin/settings/protection": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Read the protection toggle (admin)",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Turn duplicate-submission protection on or off",
                "parameters": [
                    {
                        "description": "New toggle value",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request_models.SetProtectionRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/admin/submission-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["SubmissionLogs"],
                "summary": "List submission logs",
                "parameters": [
                    {"type": "integer", "default": 50, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"},
                    {"type": "boolean", "name": "blocked", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["SubmissionLogs"],
                "summary": "Delete submission logs",
                "parameters": [
                    {
                        "description": "Selection",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/request_models.DeleteSubmissionLogsRequest"}
                    }
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/admin/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Get dashboard report",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        }
    },
    "definitions": {
        "request_models.ProtectionCheckRequest": {
            "type": "object",
            "properties": {
                "fingerprint": {"type": "string"},
                "subject": {"type": "string"}
            }
        },
        "request_models.SubmitFeedbackRequest": {
            "type": "object",
            "required": ["subject", "user_role"],
            "properties": {
                "user_role": {"type": "string"},
                "subject": {"type": "string"},
                "q1": {"type": "integer"},
                "q2": {"type": "integer"},
                "q3": {"type": "integer"},
                "q4": {"type": "integer"},
                "q5": {"type": "integer"},
                "q6": {"type": "integer"},
                "comment": {"type": "string"},
                "fingerprint": {"type": "string"}
            }
        },
        "request_models.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "request_models.SetProtectionRequest": {
            "type": "object",
            "required": ["enabled"],
            "properties": {"enabled": {"type": "boolean"}}
        },
        "request_models.DeleteSubmissionLogsRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}},
                "all": {"type": "boolean"},
                "older_than_days": {"type": "integer"}
            }
        },
        "response_models.ProtectionCheckResponse": {
            "type": "object",
            "properties": {
                "allowed": {"type": "boolean"},
                "reason": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "response_models.ProtectionStatusResponse": {
            "type": "object",
            "properties": {"enabled": {"type": "boolean"}}
        },
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "error": {"type": "string"},
                "trace_id": {"type": "string"},
                "data": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Exhibition Feedback API",
	Description:      "Visitor feedback collection with duplicate-submission protection.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
