package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Survey Intake API",
        "description": "Accepts survey submissions, anonymizes PII and appends records to a durable log",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "System", "description": "Health and diagnostics"},
        {"name": "Survey", "description": "Survey submission intake"}
    ],
    "paths": {
        "/ping": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/v1/survey": {
            "post": {
                "tags": ["Survey"],
                "summary": "Submit a survey response",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SurveySubmission"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SubmissionAccepted"}},
                    "400": {"description": "Invalid JSON body"},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ValidationFailure"}}
                }
            }
        }
    },
    "definitions": {
        "SurveySubmission": {
            "type": "object",
            "required": ["name", "email", "age", "consent", "rating"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string", "format": "email"},
                "age": {"type": "integer", "minimum": 13, "maximum": 120},
                "consent": {"type": "boolean"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5},
                "comments": {"type": "string", "maxLength": 1000},
                "user_agent": {"type": "string"},
                "submission_id": {"type": "string"}
            }
        },
        "SubmissionAccepted": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "submission_id": {"type": "string"}
            }
        },
        "ValidationFailure": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "detail": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/FieldError"}
                }
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "constraint": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
