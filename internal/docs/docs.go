// Package docs holds the swagger description of the spendly API served at
// /swagger/index.html. Regenerate with `swag init -g internal/server/server.go -o internal/docs`.
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
        "/auth/registration/": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.Registration"}}],
                "responses": {
                    "201": {"description": "User registered", "schema": {"$ref": "#/definitions/handlers.TokenResponse"}},
                    "400": {"description": "Field errors"}
                }
            }
        },
        "/auth/login/": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "User authenticated", "schema": {"$ref": "#/definitions/handlers.TokenResponse"}},
                    "400": {"description": "Field errors"}
                }
            }
        },
        "/auth/logout/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout user",
                "responses": {"200": {"description": "Logged out"}}
            }
        },
        "/auth/user/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Get user profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "User profile", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/transactions/categories/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "List categories",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "List of categories", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CategoryInput"}}],
                "responses": {
                    "201": {"description": "Category created", "schema": {"$ref": "#/definitions/models.Category"}},
                    "400": {"description": "Field errors"}
                }
            }
        },
        "/transactions/categories/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Get category by ID",
                "parameters": [{"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Category details", "schema": {"$ref": "#/definitions/models.Category"}},
                    "404": {"description": "Category not found"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Update category",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.CategoryInput"}}
                ],
                "responses": {
                    "200": {"description": "Updated category", "schema": {"$ref": "#/definitions/models.Category"}},
                    "400": {"description": "Field errors"},
                    "404": {"description": "Category not found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Delete category",
                "parameters": [{"type": "integer", "description": "Category ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Category deleted"},
                    "404": {"description": "Category not found"}
                }
            }
        },
        "/transactions/spendings/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["spendings"],
                "summary": "List spendings",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Spendings",
                        "headers": {"X-Total-Count": {"type": "integer", "description": "Total number of spendings"}},
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Spending"}}
                    }
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["spendings"],
                "summary": "Create a spending",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SpendingInput"}}],
                "responses": {
                    "201": {"description": "Spending created", "schema": {"$ref": "#/definitions/models.Spending"}},
                    "400": {"description": "Field errors"}
                }
            }
        },
        "/transactions/spendings/{id}/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["spendings"],
                "summary": "Get spending by ID",
                "parameters": [{"type": "integer", "description": "Spending ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Spending details", "schema": {"$ref": "#/definitions/models.Spending"}},
                    "404": {"description": "Spending not found"}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["spendings"],
                "summary": "Update spending",
                "parameters": [
                    {"type": "integer", "description": "Spending ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.SpendingInput"}}
                ],
                "responses": {
                    "200": {"description": "Updated spending", "schema": {"$ref": "#/definitions/models.Spending"}},
                    "400": {"description": "Field errors"},
                    "404": {"description": "Spending not found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["spendings"],
                "summary": "Delete spending",
                "parameters": [{"type": "integer", "description": "Spending ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Spending deleted"},
                    "404": {"description": "Spending not found"}
                }
            }
        },
        "/transactions/upload-receipt/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["receipts"],
                "summary": "Upload a receipt",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "description": "Receipt image", "name": "image", "in": "formData", "required": true}],
                "responses": {
                    "201": {"description": "Receipt stored"},
                    "400": {"description": "Invalid image"}
                }
            }
        },
        "/transactions/gpt-query/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assistant"],
                "summary": "Ask about spendings",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.QueryRequest"}}],
                "responses": {
                    "200": {"description": "Answer", "schema": {"$ref": "#/definitions/handlers.QueryResponse"}},
                    "501": {"description": "Assistant not configured"}
                }
            }
        }
    },
    "definitions": {
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"password": {"type": "string"}, "username": {"type": "string"}}
        },
        "handlers.TokenResponse": {
            "type": "object",
            "properties": {"key": {"type": "string"}}
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "handlers.QueryRequest": {
            "type": "object",
            "required": ["prompt"],
            "properties": {"prompt": {"type": "string"}}
        },
        "handlers.QueryResponse": {
            "type": "object",
            "properties": {"result": {"type": "string"}}
        },
        "models.Registration": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "maxLength": 30},
                "email": {"type": "string"},
                "first_name": {"type": "string", "maxLength": 30},
                "last_name": {"type": "string", "maxLength": 30},
                "password1": {"type": "string", "minLength": 8},
                "password2": {"type": "string"}
            }
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "parent": {"type": "integer"},
                "parent_name": {"type": "string"},
                "user": {"type": "integer"}
            }
        },
        "models.CategoryInput": {
            "type": "object",
            "properties": {"name": {"type": "string", "maxLength": 100}, "parent": {"type": "integer"}}
        },
        "models.Spending": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "description": {"type": "string"},
                "name": {"type": "string"},
                "amount": {"type": "string", "example": "12.50"},
                "date": {"type": "string", "example": "2024-01-05"},
                "category": {"type": "integer"},
                "category_name": {"type": "string"},
                "user": {"type": "integer"}
            }
        },
        "models.SpendingInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "description": {"type": "string", "maxLength": 100},
                "amount": {"type": "string", "example": "12.50"},
                "date": {"type": "string", "example": "2024-01-05"},
                "category": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the key returned at login.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Spendly API",
	Description:      "Spendly tracks personal spendings organised in two-level categories.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
