// Package docs registers the OpenAPI document served at /swagger/*. It mirrors
// the godoc annotations on the handlers; keep both in sync when editing.
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
        "/events": {
            "get": {
                "description": "Filters are combined with AND; start and end are inclusive RFC3339 timestamps",
                "produces": ["application/json"],
                "tags": ["Audit"],
                "summary": "Query audit events",
                "parameters": [
                    {"type": "string", "description": "Event name", "name": "name", "in": "query"},
                    {"type": "string", "description": "Start date (RFC3339)", "name": "start", "in": "query"},
                    {"type": "string", "description": "End date (RFC3339)", "name": "end", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetEventsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rate": {
            "get": {
                "description": "Last successfully fetched rate together with its freshness",
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Get cached BTC/USD rate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetCurrentRateResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rate/poller": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Rates"],
                "summary": "Get poller state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PollerStateResponse"}}
                }
            }
        },
        "/rate/poller/start": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "description": "Starts the polling loop; a no-op when it is already running",
                "tags": ["Rates"],
                "summary": "Start rate polling",
                "parameters": [
                    {"description": "Polling interval", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.StartPollerRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.PollerStateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/rate/poller/stop": {
            "post": {
                "produces": ["application/json"],
                "description": "Stops the polling loop after the in-flight fetch, if any, completes",
                "tags": ["Rates"],
                "summary": "Stop rate polling",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.PollerStateResponse"}}
                }
            }
        },
        "/wallet": {
            "get": {
                "produces": ["application/json"],
                "description": "Balance in BTC, the last cached BTC/USD rate and when it was stored",
                "tags": ["Wallet"],
                "summary": "Get wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetWalletResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/wallet/categories": {
            "get": {
                "description": "Categories accepted by POST /wallet/expenses",
                "produces": ["application/json"],
                "tags": ["Wallet"],
                "summary": "List expense categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GetCategoriesResponse"}}
                }
            }
        },
        "/wallet/deposits": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Wallet"],
                "summary": "Top up wallet",
                "parameters": [
                    {"description": "Deposit", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DepositRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TransactionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/wallet/expenses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "description": "Subtracts amount from the balance; overdraft is not prevented",
                "tags": ["Wallet"],
                "summary": "Record an expense",
                "parameters": [
                    {"description": "Expense", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ExpenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.TransactionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/wallet/transactions": {
            "get": {
                "produces": ["application/json"],
                "description": "Newest first; group=day groups them by calendar day (UTC)",
                "tags": ["Wallet"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "description": "Set to 'day' to group by day", "name": "group", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListTransactionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.GetCurrentRateResponse": {
            "type": "object",
            "properties": {
                "rate": {"type": "number", "example": 65000.1234},
                "observed_at": {"type": "string", "example": "2025-01-20T15:04:05Z"},
                "age_seconds": {"type": "integer", "example": 42},
                "stale": {"type": "boolean", "example": false}
            }
        },
        "handler.StartPollerRequest": {
            "type": "object",
            "properties": {"interval_sec": {"type": "integer", "example": 60}}
        },
        "handler.PollerStateResponse": {
            "type": "object",
            "properties": {"state": {"type": "string", "enum": ["idle", "running", "stopping"], "example": "running"}}
        },
        "handler.EventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string", "example": "bitcoin_rate_update"},
                "parameters": {"type": "object", "additionalProperties": {"type": "string"}},
                "occurred_at": {"type": "string"}
            }
        },
        "handler.GetEventsResponse": {
            "type": "object",
            "properties": {"events": {"type": "array", "items": {"$ref": "#/definitions/handler.EventResponse"}}}
        },
        "handler.GetWalletResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "number", "example": 0.5},
                "cached_rate": {"type": "number", "example": 65000.1234},
                "balance_usd": {"type": "number", "example": 32500.0617},
                "last_updated": {"type": "string"}
            }
        },
        "handler.GetCategoriesResponse": {
            "type": "object",
            "properties": {"categories": {"type": "array", "items": {"type": "string"}, "example": ["Electronics", "Groceries", "Other", "Restaurant", "Taxi"]}}
        },
        "handler.DepositRequest": {
            "type": "object",
            "properties": {"amount": {"type": "number", "example": 0.5}}
        },
        "handler.ExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 0.01},
                "category": {"type": "string", "enum": ["Groceries", "Taxi", "Electronics", "Restaurant", "Other"]}
            }
        },
        "handler.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "handler.ListTransactionsResponse": {
            "type": "object",
            "properties": {"transactions": {"type": "array", "items": {"$ref": "#/definitions/handler.TransactionResponse"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BTC Wallet API",
	Description:      "Bitcoin wallet with a periodically refreshed BTC/USD rate and an audit log.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
