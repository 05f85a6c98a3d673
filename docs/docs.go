// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/reports/vat": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "VAT report",
                "parameters": [
                    {"type": "string", "description": "First day (YYYY-MM-DD), tenant time zone", "name": "from", "in": "query"},
                    {"type": "string", "description": "Last day (YYYY-MM-DD), inclusive", "name": "to", "in": "query"},
                    {"enum": ["all", "online", "in_restaurant"], "type": "string", "description": "Order source", "name": "source", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Length of each best-seller list", "name": "top", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/reports/vat/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["reports"],
                "summary": "Download VAT report",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["all", "online", "in_restaurant"], "type": "string", "name": "source", "in": "query"},
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/reports/vat/archive": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Archive VAT report",
                "parameters": [
                    {"type": "string", "name": "from", "in": "query"},
                    {"type": "string", "name": "to", "in": "query"},
                    {"enum": ["all", "online", "in_restaurant"], "type": "string", "name": "source", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/orders/{id}/vat": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Order VAT breakdown",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/orders/{id}/confirmation": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Email order confirmation",
                "parameters": [{"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/menu-items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu-items"],
                "summary": "List menu items",
                "parameters": [
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menu-items"],
                "summary": "Create menu item",
                "parameters": [{"description": "Menu item", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateMenuItemRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.APIResponse"}}
                }
            }
        },
        "/menu-items/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu-items"],
                "summary": "Get menu item",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["menu-items"],
                "summary": "Update menu item",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateMenuItemRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu-items"],
                "summary": "Delete menu item",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}}}
            }
        },
        "/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get display settings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Update display settings",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateSettingsRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}}}
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/handler.APIError"},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {"limit": {"type": "integer"}, "offset": {"type": "integer"}, "total": {"type": "integer"}}
        },
        "handler.ComponentRequest": {
            "type": "object",
            "properties": {
                "gross_amount": {"type": "string", "example": "15.00"},
                "is_vat_exempt": {"type": "boolean"},
                "label": {"type": "string", "example": "Hot Food"},
                "vat_rate": {"type": "string", "example": "20"}
            }
        },
        "handler.CreateMenuItemRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "components": {"type": "array", "items": {"$ref": "#/definitions/handler.ComponentRequest"}},
                "is_vat_exempt": {"type": "boolean"},
                "name": {"type": "string", "example": "Chicken Biryani Meal"},
                "price": {"type": "string", "example": "20.00"},
                "vat_rate": {"type": "string", "example": "20"},
                "vat_type": {"type": "string", "enum": ["simple", "mixed"]}
            }
        },
        "handler.UpdateMenuItemRequest": {
            "type": "object",
            "properties": {
                "components": {"type": "array", "items": {"$ref": "#/definitions/handler.ComponentRequest"}},
                "is_vat_exempt": {"type": "boolean"},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "vat_rate": {"type": "string"},
                "vat_type": {"type": "string", "enum": ["simple", "mixed"]}
            }
        },
        "handler.UpdateSettingsRequest": {
            "type": "object",
            "properties": {
                "currency_symbol": {"type": "string", "example": "£"},
                "timezone": {"type": "string", "example": "Europe/London"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "vatledger API",
	Description:      "VAT computation and reporting for restaurant orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
