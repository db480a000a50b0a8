package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Wayplan API",
        "description": "Trip itinerary planning, scheduling and budget service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Trips", "description": "Trip lifecycle"},
        {"name": "Itinerary", "description": "Day and item editing"},
        {"name": "Schedule", "description": "Conflicts, optimization and time assignment"},
        {"name": "Budget", "description": "Spend summaries"},
        {"name": "Calendar", "description": "Calendar projections"},
        {"name": "Exports", "description": "Export artifacts and signed downloads"}
    ],
    "paths": {
        "/trips": {
            "get": {
                "tags": ["Trips"],
                "summary": "List trips",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Trips"],
                "summary": "Create trip",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTripRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}": {
            "get": {
                "tags": ["Trips"],
                "summary": "Get trip by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "patch": {
                "tags": ["Trips"],
                "summary": "Update trip metadata",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTripRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Trips"],
                "summary": "Delete trip",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/trips/{id}/days": {
            "get": {
                "tags": ["Itinerary"],
                "summary": "Get the day-by-day itinerary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Itinerary"],
                "summary": "Append a day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/days/{day}": {
            "delete": {
                "tags": ["Itinerary"],
                "summary": "Remove a day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/items": {
            "post": {
                "tags": ["Itinerary"],
                "summary": "Add an item to a day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/days/{day}/items/{itemId}": {
            "patch": {
                "tags": ["Itinerary"],
                "summary": "Update an item",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateItemRequest"}}
                ],
                "responses": {
                    "204": {"description": "Updated"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Itinerary"],
                "summary": "Delete an item",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/days/{day}/items/{itemId}/move": {
            "post": {
                "tags": ["Itinerary"],
                "summary": "Move an item to another day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"},
                    {"name": "itemId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveItemRequest"}}
                ],
                "responses": {
                    "204": {"description": "Moved"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/schedule/conflicts": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List overlapping scheduled items",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/schedule/optimize": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Reorder each day's items by proximity",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/schedule/days/{day}/auto": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Assign sequential times to one day's items",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/schedule/days/{day}/state": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Report the scheduling state of a day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/schedule/days/{day}/gaps": {
            "get": {
                "tags": ["Schedule"],
                "summary": "List free windows in a day",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"},
                    {"name": "minGap", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/schedule/days/{day}/route": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Estimate travel effort across a day's located items",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "day", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/budget": {
            "get": {
                "tags": ["Budget"],
                "summary": "Budget summary for a trip",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/budget/export": {
            "get": {
                "tags": ["Budget"],
                "summary": "Export the budget breakdown",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/trips/{id}/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Flatten the itinerary into dated calendar events",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/trips/{id}/calendar.ics": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Download the itinerary as an iCalendar file",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/trips/{id}/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Render a trip export and return a signed download link",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "ics"]}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export by signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateTripRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "startDate": {"type": "string", "example": "2025-06-01"},
                "travelers": {"type": "integer"},
                "budget": {"type": "number"},
                "days": {"type": "integer"}
            },
            "required": ["name", "startDate"]
        },
        "UpdateTripRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "startDate": {"type": "string"},
                "travelers": {"type": "integer"},
                "budget": {"type": "number"}
            }
        },
        "AddItemRequest": {
            "type": "object",
            "properties": {
                "day": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string", "enum": ["logistics", "food", "activity", "stay"]},
                "time": {"type": "string", "example": "10:00 AM"},
                "duration": {"type": "string", "example": "2h"},
                "cost": {"type": "number"},
                "status": {"type": "string", "enum": ["planned", "booked", "confirmed"]},
                "location_lat": {"type": "number"},
                "location_lng": {"type": "number"},
                "notes": {"type": "string"}
            },
            "required": ["day", "title", "type"]
        },
        "UpdateItemRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "type": {"type": "string"},
                "time": {"type": "string"},
                "duration": {"type": "string"},
                "cost": {"type": "number"},
                "status": {"type": "string"},
                "location_lat": {"type": "number"},
                "location_lng": {"type": "number"},
                "notes": {"type": "string"}
            }
        },
        "MoveItemRequest": {
            "type": "object",
            "properties": {
                "toDay": {"type": "integer"}
            },
            "required": ["toDay"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
