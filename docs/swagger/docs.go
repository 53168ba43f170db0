// Package swagger provides API documentation
package swagger

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
        "/v1/councils": {
            "get": {
                "produces": ["application/json"],
                "tags": ["councils"],
                "summary": "List the user's councils",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["councils"],
                "summary": "Create a custom council",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/v1/councils/{council_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["councils"],
                "summary": "Fetch one council with its advisors",
                "parameters": [
                    {"type": "string", "name": "council_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/v1/council/quick": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["councils"],
                "summary": "Auto-build a council from a question",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/v1/council/debate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["councils"],
                "summary": "Run a council debate as an SSE stream",
                "responses": {
                    "200": {"description": "SSE event stream"},
                    "400": {"description": "Bad Request"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/v1/boardroom/boards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["boardroom"],
                "summary": "List the preset boards",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/boardroom/debate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["boardroom"],
                "summary": "Run a preset-board debate as an SSE stream",
                "responses": {
                    "200": {"description": "SSE event stream"},
                    "400": {"description": "Bad Request"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/v1/debates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["debates"],
                "summary": "List the user's past debates",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/debates/{debate_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["debates"],
                "summary": "Fetch one debate with its transcript",
                "parameters": [
                    {"type": "string", "name": "debate_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
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
	Title:            "Council API",
	Description:      "Multi-advisor debate orchestration service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
