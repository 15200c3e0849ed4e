// Package docs registers the OpenAPI description served under /swagger/.
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
                "description": "All pins newest first, optionally filtered by a case-insensitive search on title, description and tags",
                "produces": ["application/json"],
                "tags": ["Pins"],
                "summary": "Pin feed",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "query", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/pin/{id}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Pins"],
                "summary": "Pin detail",
                "parameters": [
                    {"type": "string", "description": "Pin ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["Pins"],
                "summary": "Add a comment",
                "parameters": [
                    {"type": "string", "description": "Pin ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Comment text", "name": "text", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/pin/create/": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Pins"],
                "summary": "Create a pin",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "file", "description": "Image", "name": "image", "in": "formData", "required": true},
                    {"type": "string", "description": "Source URL", "name": "source_url", "in": "formData"},
                    {"type": "string", "description": "Board ID", "name": "board", "in": "formData"},
                    {"type": "string", "description": "Comma separated tags", "name": "tags", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/pin/{id}/like/": {
            "post": {
                "description": "Adds the requester to the pin's likes, or removes them if already present",
                "produces": ["application/json"],
                "tags": ["Pins"],
                "summary": "Toggle like",
                "parameters": [
                    {"type": "string", "description": "Pin ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LikeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/boards/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Boards"],
                "summary": "Public boards",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/board/{slug}/": {
            "get": {
                "description": "A private board is only shown to its owner; everyone else is redirected home.",
                "produces": ["application/json"],
                "tags": ["Boards"],
                "summary": "Board detail",
                "parameters": [
                    {"type": "string", "description": "Board slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/user/{username}/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "User profile",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/login/": {
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["Users"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "Password", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "description": "Where to go after login", "name": "next", "in": "query"}
                ],
                "responses": {
                    "302": {"description": "Found"},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/logout/": {
            "get": {
                "tags": ["Users"],
                "summary": "Log out",
                "responses": {"302": {"description": "Found"}}
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.LikeResponse": {
            "type": "object",
            "properties": {
                "like_count": {"type": "integer"},
                "liked": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the session token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Pinboard API",
	Description:      "Pin images, collect them on boards, comment and like.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
