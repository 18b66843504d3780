// Package api registers the OpenAPI document served at /swagger/. The spec
// is maintained by hand alongside the handler annotations in
// internal/loan/http.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/v1/checkout": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Start a loan application checkout",
                "description": "Validates the application form, parks it, and opens a MonCash payment for the analysis fee. If the payment provider is unreachable the application is submitted immediately with the fee left pending (degraded=true).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.CheckoutStartRequest"}}
                ],
                "responses": {
                    "200": {"description": "Order opened, or degraded submission", "schema": {"$ref": "#/definitions/loansdk.CheckoutStartResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/loansdk.ValidationErrorResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/checkout/complete": {
            "post": {
                "tags": ["Checkout"],
                "summary": "Complete a loan application checkout",
                "description": "Asks MonCash for its verdict on the transaction. SUCCESSFUL persists the parked application as paid; PENDING means keep polling; FAILED leaves the form parked for a payment retry.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.CheckoutCompleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "Provider verdict", "schema": {"$ref": "#/definitions/loansdk.CheckoutCompleteResponse"}},
                    "201": {"description": "Payment confirmed, application persisted", "schema": {"$ref": "#/definitions/loansdk.CheckoutCompleteResponse"}},
                    "404": {"description": "No pending application for this order", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}},
                    "409": {"description": "Transaction settled a different order", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}},
                    "502": {"description": "Payment provider unavailable", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/setup": {
            "post": {
                "tags": ["Setup"],
                "summary": "Create the first administrator",
                "description": "Only available while the admin table is empty and a setup token is configured.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Setup-Token", "in": "header", "type": "string", "required": true, "description": "Deploy-time setup token"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.SetupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Admin account created", "schema": {"$ref": "#/definitions/loansdk.SetupResponse"}},
                    "401": {"description": "Invalid token or setup already completed", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token, or MFA challenge", "schema": {"$ref": "#/definitions/loansdk.LoginResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/password": {
            "put": {
                "tags": ["Auth"],
                "summary": "Change the admin password",
                "consumes": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.PasswordChangeRequest"}}
                ],
                "responses": {
                    "204": {"description": "Password changed"},
                    "400": {"description": "Invalid request body or weak password", "schema": {"$ref": "#/definitions/loansdk.ValidationErrorResponse"}},
                    "401": {"description": "Wrong current password", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/mfa/verify": {
            "post": {
                "tags": ["Auth"],
                "summary": "Verify an MFA challenge",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.MFAVerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session token", "schema": {"$ref": "#/definitions/loansdk.LoginResponse"}},
                    "401": {"description": "Invalid challenge or code", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/mfa/totp/enroll": {
            "post": {
                "tags": ["Auth"],
                "summary": "Enroll a TOTP second factor",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Secret and otpauth URL", "schema": {"$ref": "#/definitions/loansdk.MFAEnrollResponse"}},
                    "401": {"description": "Missing or invalid session", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/mfa/totp/activate": {
            "post": {
                "tags": ["Auth"],
                "summary": "Activate the enrolled TOTP secret",
                "consumes": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.MFACodeRequest"}}
                ],
                "responses": {
                    "204": {"description": "MFA activated"},
                    "401": {"description": "Invalid code", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}},
                    "409": {"description": "No secret enrolled", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/admin/mfa/totp": {
            "delete": {
                "tags": ["Auth"],
                "summary": "Disable the TOTP second factor",
                "consumes": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.MFACodeRequest"}}
                ],
                "responses": {
                    "204": {"description": "MFA disabled"},
                    "401": {"description": "Invalid code", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}},
                    "409": {"description": "MFA is not enabled", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/applications": {
            "get": {
                "tags": ["Applications"],
                "summary": "List loan applications",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Applications, newest first", "schema": {"$ref": "#/definitions/loansdk.ApplicationListResponse"}},
                    "401": {"description": "Missing or invalid session", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/applications/{id}": {
            "get": {
                "tags": ["Applications"],
                "summary": "Get a loan application",
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true, "description": "Application ID"}
                ],
                "responses": {
                    "200": {"description": "The application", "schema": {"$ref": "#/definitions/loansdk.Application"}},
                    "404": {"description": "No such application", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Applications"],
                "summary": "Delete a loan application",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true, "description": "Application ID"}
                ],
                "responses": {
                    "204": {"description": "Application deleted"},
                    "404": {"description": "No such application", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/applications/{id}/status": {
            "patch": {
                "tags": ["Applications"],
                "summary": "Update review status",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true, "description": "Application ID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.StatusUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated application", "schema": {"$ref": "#/definitions/loansdk.Application"}},
                    "404": {"description": "No such application", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}},
                    "409": {"description": "Transition not allowed", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/v1/applications/{id}/payment-status": {
            "patch": {
                "tags": ["Applications"],
                "summary": "Update payment status",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true, "description": "Application ID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/loansdk.PaymentStatusUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated application", "schema": {"$ref": "#/definitions/loansdk.Application"}},
                    "404": {"description": "No such application", "schema": {"$ref": "#/definitions/loansdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/loansdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "service ready", "schema": {"$ref": "#/definitions/loansdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/loansdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "loansdk.Application": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "full_name": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "employment": {"type": "string"},
                "employer_name": {"type": "string"},
                "employer_phone": {"type": "string"},
                "employer_address": {"type": "string"},
                "reference_name": {"type": "string"},
                "reference_phone": {"type": "string"},
                "reference_address": {"type": "string"},
                "amount": {"type": "integer", "description": "HTG"},
                "duration_months": {"type": "integer"},
                "interest_rate": {"type": "integer", "description": "percent, 3-10"},
                "reason": {"type": "string"},
                "signature_full_name": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "reviewing", "approved", "rejected"]},
                "payment_status": {"type": "string", "enum": ["pending", "paid"]},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "loansdk.ApplicationListResponse": {
            "type": "object",
            "properties": {
                "applications": {"type": "array", "items": {"$ref": "#/definitions/loansdk.Application"}},
                "total": {"type": "integer"}
            }
        },
        "loansdk.CheckoutStartRequest": {
            "type": "object",
            "required": ["full_name", "address", "phone", "email", "employment", "amount", "duration_months", "reason", "signature_full_name"],
            "properties": {
                "full_name": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "employment": {"type": "string"},
                "employer_name": {"type": "string"},
                "employer_phone": {"type": "string"},
                "employer_address": {"type": "string"},
                "reference_name": {"type": "string"},
                "reference_phone": {"type": "string"},
                "reference_address": {"type": "string"},
                "amount": {"type": "integer", "minimum": 10000, "maximum": 500000},
                "duration_months": {"type": "integer", "minimum": 3, "maximum": 36},
                "reason": {"type": "string"},
                "signature_full_name": {"type": "string"}
            }
        },
        "loansdk.CheckoutStartResponse": {
            "type": "object",
            "properties": {
                "order_id": {"type": "string"},
                "redirect_url": {"type": "string"},
                "degraded": {"type": "boolean"},
                "application": {"$ref": "#/definitions/loansdk.Application"}
            }
        },
        "loansdk.CheckoutCompleteRequest": {
            "type": "object",
            "required": ["order_id", "transaction_id"],
            "properties": {
                "order_id": {"type": "string"},
                "transaction_id": {"type": "string"}
            }
        },
        "loansdk.CheckoutCompleteResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["PENDING", "SUCCESSFUL", "FAILED"]},
                "application": {"$ref": "#/definitions/loansdk.Application"}
            }
        },
        "loansdk.SetupRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 12}
            }
        },
        "loansdk.SetupResponse": {
            "type": "object",
            "properties": {
                "admin_id": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "loansdk.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "loansdk.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "token_type": {"type": "string"},
                "mfa_required": {"type": "boolean"},
                "challenge_token": {"type": "string"}
            }
        },
        "loansdk.PasswordChangeRequest": {
            "type": "object",
            "required": ["current_password", "new_password"],
            "properties": {
                "current_password": {"type": "string"},
                "new_password": {"type": "string"}
            }
        },
        "loansdk.MFAVerifyRequest": {
            "type": "object",
            "required": ["challenge_token", "code"],
            "properties": {
                "challenge_token": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "loansdk.MFAEnrollResponse": {
            "type": "object",
            "properties": {
                "secret": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "loansdk.MFACodeRequest": {
            "type": "object",
            "required": ["code"],
            "properties": {
                "code": {"type": "string"}
            }
        },
        "loansdk.StatusUpdateRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["pending", "reviewing", "approved", "rejected"]}
            }
        },
        "loansdk.PaymentStatusUpdateRequest": {
            "type": "object",
            "required": ["payment_status"],
            "properties": {
                "payment_status": {"type": "string", "enum": ["pending", "paid", "unpaid"]}
            }
        },
        "loansdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/loansdk.HealthChecks"}
            }
        },
        "loansdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "intents": {"type": "string"}
            }
        },
        "loansdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "loansdk.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Admin session token. Format: \"Bearer {token}\"."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Loandesk API",
	Description:      "Loan origination backend: applicants submit applications and pay the analysis fee through MonCash; administrators review, decide, and reconcile payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
