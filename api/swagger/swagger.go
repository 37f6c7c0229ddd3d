package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Wholesome Uganda API",
        "description": "Backend for the Wholesome Uganda website and admin panel",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Auth", "description": "Admin authentication and sessions"},
        {"name": "Blogs", "description": "Blog posts"},
        {"name": "Gallery", "description": "Gallery images"},
        {"name": "Services", "description": "Offered services"},
        {"name": "Team", "description": "Team members"},
        {"name": "Heroes", "description": "Hero banners"},
        {"name": "Contact", "description": "Contact form submissions"},
        {"name": "Newsletter", "description": "Newsletter subscriptions"},
        {"name": "Dashboard", "description": "Admin dashboard and exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check, reports database and session store state",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"},
                    "429": {"description": "Too many attempts"}
                }
            }
        },
        "/api/auth/refresh-token": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Refresh token invalid or revoked"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the current session",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/auth/logout-all": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke every session of the current user",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Get the current admin profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/profile": {
            "patch": {
                "tags": ["Auth"],
                "summary": "Update name, email or profile image",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "name", "in": "formData", "type": "string"},
                    {"name": "email", "in": "formData", "type": "string"},
                    {"name": "profileImage", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change password, requires the current one",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/auth/forgot-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Request a password reset code by email",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OTP sent"},
                    "429": {"description": "Too many requests"}
                }
            }
        },
        "/api/auth/verify-otp": {
            "post": {
                "tags": ["Auth"],
                "summary": "Verify a password reset code",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/VerifyOTPRequest"}}
                ],
                "responses": {
                    "200": {"description": "OTP verified"},
                    "401": {"description": "Wrong or expired code"}
                }
            }
        },
        "/api/auth/reset-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Set a new password after OTP verification",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password reset"}
                }
            }
        },
        "/api/blogs": {
            "get": {
                "tags": ["Blogs"],
                "summary": "List published blogs",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Blogs"],
                "summary": "Create a blog post",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slug already in use"}
                }
            }
        },
        "/api/blogs/admin": {
            "get": {
                "tags": ["Blogs"],
                "summary": "List all blogs including drafts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/blogs/{slug}": {
            "get": {
                "tags": ["Blogs"],
                "summary": "Get a blog by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/blogs/{id}": {
            "patch": {
                "tags": ["Blogs"],
                "summary": "Update a blog",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Blogs"],
                "summary": "Delete a blog",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted"}
                }
            }
        },
        "/api/gallery": {
            "get": {
                "tags": ["Gallery"],
                "summary": "List published gallery images",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Gallery"],
                "summary": "Add a gallery image",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/services": {
            "get": {
                "tags": ["Services"],
                "summary": "List published services",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Services"],
                "summary": "Create a service",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/team": {
            "get": {
                "tags": ["Team"],
                "summary": "List published team members",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Team"],
                "summary": "Add a team member",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/heroes": {
            "get": {
                "tags": ["Heroes"],
                "summary": "List active hero banners",
                "parameters": [
                    {"name": "displayType", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Heroes"],
                "summary": "Create a hero banner",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/api/contact": {
            "post": {
                "tags": ["Contact"],
                "summary": "Submit the contact form",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactRequest"}}
                ],
                "responses": {
                    "201": {"description": "Received"},
                    "429": {"description": "Too many submissions"}
                }
            },
            "get": {
                "tags": ["Contact"],
                "summary": "List contact submissions",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/newsletter/subscribe": {
            "post": {
                "tags": ["Newsletter"],
                "summary": "Subscribe an email address",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubscribeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Subscribed"},
                    "409": {"description": "Already subscribed"}
                }
            }
        },
        "/api/newsletter/unsubscribe": {
            "post": {
                "tags": ["Newsletter"],
                "summary": "Unsubscribe an email address",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubscribeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Unsubscribed"}
                }
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregated counts, trends and recent activity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/dashboard/export/contacts": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Download contacts as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/api/dashboard/export/subscribers": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Download subscribers as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshRequest": {
            "type": "object",
            "properties": {
                "refreshToken": {"type": "string"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "currentPassword": {"type": "string"},
                "newPassword": {"type": "string"}
            },
            "required": ["currentPassword", "newPassword"]
        },
        "ForgotPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "VerifyOTPRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "otp": {"type": "string"}
            },
            "required": ["email", "otp"]
        },
        "ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "newPassword": {"type": "string"}
            },
            "required": ["email", "newPassword"]
        },
        "ContactRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["name", "email", "message"]
        },
        "SubscribeRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            },
            "required": ["email"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "retryAfter": {"type": "integer"}
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
