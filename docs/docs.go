// Package docs registra la documentación OpenAPI servida en /swagger.
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
        "/health": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "ok"}}
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "List pets",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Create a pet",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/pets.createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Get a pet",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Delete a pet",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/feed": {
            "post": {
                "produces": ["application/json"],
                "tags": ["actions"],
                "summary": "Feed a pet",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/play": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["actions"],
                "summary": "Play with a pet",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/pets.minutesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/rest": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["actions"],
                "summary": "Let a pet rest",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/pets.minutesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/work": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["actions"],
                "summary": "Send a pet to work",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/pets.minutesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/buy": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["actions"],
                "summary": "Buy a shop item for a pet",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/pets.buyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/daily": {
            "post": {
                "produces": ["application/json"],
                "tags": ["actions"],
                "summary": "Claim the daily reward",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/pets.outcomeResponse"}}
                }
            }
        },
        "/pets/{name}/activity": {
            "get": {
                "produces": ["application/json"],
                "tags": ["activity"],
                "summary": "List recent activity of a pet",
                "parameters": [
                    {"type": "string", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "kinds", "in": "query", "description": "comma separated"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/activity.entryResponse"}}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/shop": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List shop items",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/species": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List species",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "pets.createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string", "enum": ["cat", "dog", "dragon"]}
            }
        },
        "pets.minutesRequest": {
            "type": "object",
            "properties": {"minutes": {"type": "integer"}}
        },
        "pets.buyRequest": {
            "type": "object",
            "properties": {"item": {"type": "string", "enum": ["food", "toy", "energy_drink"]}}
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "display_form": {"type": "string"},
                "hunger": {"type": "number"},
                "happiness": {"type": "number"},
                "energy": {"type": "number"},
                "max_energy": {"type": "number"},
                "level": {"type": "integer"},
                "xp": {"type": "integer"},
                "coins": {"type": "integer"},
                "evolved": {"type": "boolean"},
                "last_updated": {"type": "string"},
                "gift_message": {"type": "string"},
                "last_daily_claim": {"type": "string"}
            }
        },
        "pets.outcomeResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "message": {"type": "string"},
                "reason": {"type": "string"},
                "pet": {"$ref": "#/definitions/pets.petResponse"}
            }
        },
        "activity.entryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pet_name": {"type": "string"},
                "kind": {"type": "string"},
                "message": {"type": "string"},
                "occurred_at": {"type": "string"}
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
	Title:            "petverse API",
	Description:      "Virtual pet world: care actions, economy, leveling and evolution.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
