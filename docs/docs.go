// Package docs holds the swagger document served under /swagger. It is kept
// in step with the handler annotations in cmd/admin-service by hand; running
// go generate in that directory replaces it with swag output.
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
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders for the dashboard",
                "parameters": [
                    {"type": "string", "description": "all, daily, monthly, yearly or custom", "name": "filter", "in": "query"},
                    {"type": "integer", "description": "year for the yearly filter", "name": "year", "in": "query"},
                    {"type": "string", "description": "custom range start (YYYY-MM-DD)", "name": "start", "in": "query"},
                    {"type": "string", "description": "custom range end (YYYY-MM-DD)", "name": "end", "in": "query"},
                    {"type": "string", "description": "single day for the custom filter (YYYY-MM-DD)", "name": "date", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "restrict to these statuses", "name": "status", "in": "query"},
                    {"type": "integer", "description": "page size inside the filter window (default 200, max 500)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "rows to skip inside the filter window", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.ListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/statuses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Configured order statuses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.StatusesResponse"}}
                }
            }
        },
        "/orders/years": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Years offered by the yearly filter",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.YearsResponse"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get one order with its items",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.View"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            },
            "delete": {
                "description": "Proofs are removed one by one (blob, then row); failures are reported per proof. The order row is removed last.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete an order and its payment proofs",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.deleteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.deleteResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/main.deleteResponse"}}
                }
            }
        },
        "/orders/{id}/proofs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["proofs"],
                "summary": "Payment proofs attached to an order",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/proof.Proof"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        },
        "/orders/{id}/status": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change the status of an order",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "new status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.UpdateStatusRequest"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpx.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "cleanup.ProofOutcome": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "file_url": {"type": "string"},
                "path": {"type": "string"},
                "proof_id": {"type": "integer"},
                "result": {"type": "string", "enum": ["ok", "invalid_path", "storage_delete_failed", "record_delete_failed"]}
            }
        },
        "cleanup.Report": {
            "type": "object",
            "properties": {
                "order_deleted": {"type": "boolean"},
                "order_id": {"type": "integer"},
                "proofs": {"type": "array", "items": {"$ref": "#/definitions/cleanup.ProofOutcome"}}
            }
        },
        "httpx.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "order not found"}
            }
        },
        "main.deleteResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "failed_stage": {"type": "string", "enum": ["list_proofs", "delete_order"]},
                "message": {"type": "string", "example": "2 of 3 proofs cleaned up; order deleted"},
                "report": {"$ref": "#/definitions/cleanup.Report"}
            }
        },
        "order.ItemView": {
            "type": "object",
            "properties": {
                "line_total": {"type": "string"},
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer"},
                "title": {"type": "string"},
                "unit_price": {"type": "string"}
            }
        },
        "order.ListResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "filter": {"type": "string", "example": "monthly"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.View"}}
            }
        },
        "order.StatusesResponse": {
            "type": "object",
            "properties": {
                "statuses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "order.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "Approved"}
            }
        },
        "order.View": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "date": {"type": "string", "example": "Jan 05, 2024"},
                "id": {"type": "integer"},
                "item_count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.ItemView"}},
                "marketer": {"type": "string"},
                "reception_status": {"type": "string"},
                "slug": {"type": "string"},
                "status": {"type": "string"},
                "total": {"type": "string", "example": "42.50"}
            }
        },
        "order.YearsResponse": {
            "type": "object",
            "properties": {
                "years": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "proof.Proof": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "expires_at": {"type": "string"},
                "file_url": {"type": "string"},
                "id": {"type": "integer"},
                "order_id": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Orders admin API",
	Description:      "Review orders, change their status and delete them with their payment proofs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
