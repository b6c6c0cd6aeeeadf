// Package docs registers the OpenAPI document served under /swagger.
// Regenerate from the handler annotations with:
//
//	swag init -g cmd/server/main.go -o docs --v3.1
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "{{.BasePath}}"}],
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
        },
        "schemas": {
            "Envelope": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean"},
                    "data": {},
                    "message": {"type": "string"},
                    "meta": {"$ref": "#/components/schemas/Meta"}
                }
            },
            "ErrorResponse": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean", "example": false},
                    "error": {
                        "type": "object",
                        "properties": {
                            "code": {"type": "string", "example": "ERR_VALIDATION"},
                            "message": {"type": "string"},
                            "request_id": {"type": "string"},
                            "details": {"type": "array", "items": {"type": "string"}}
                        }
                    }
                }
            },
            "Meta": {
                "type": "object",
                "properties": {
                    "total": {"type": "integer"},
                    "page": {"type": "integer"},
                    "page_size": {"type": "integer"},
                    "total_pages": {"type": "integer"}
                }
            },
            "Receipt": {
                "type": "object",
                "properties": {
                    "success": {"type": "boolean"},
                    "message": {"type": "string"},
                    "error": {"type": "string"},
                    "details": {"type": "string"},
                    "data": {"type": "object"}
                }
            }
        },
        "responses": {
            "Ok": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}},
            "Error": {"description": "Error", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
            "Receipt": {"description": "Delivery receipt", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Receipt"}}}}
        }
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/orders": {
            "get": {"operationId": "listOrders", "tags": ["orders"], "summary": "List orders", "responses": {"200": {"$ref": "#/components/responses/Ok"}, "400": {"$ref": "#/components/responses/Error"}}},
            "post": {"operationId": "createOrder", "tags": ["orders"], "summary": "Create an order", "responses": {"201": {"$ref": "#/components/responses/Ok"}, "400": {"$ref": "#/components/responses/Error"}, "409": {"$ref": "#/components/responses/Error"}}}
        },
        "/orders/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}],
            "get": {"operationId": "getOrderById", "tags": ["orders"], "summary": "Get order by ID", "responses": {"200": {"$ref": "#/components/responses/Ok"}, "404": {"$ref": "#/components/responses/Error"}}},
            "put": {"operationId": "updateOrder", "tags": ["orders"], "summary": "Update an order", "responses": {"200": {"$ref": "#/components/responses/Ok"}, "404": {"$ref": "#/components/responses/Error"}}},
            "delete": {"operationId": "deleteOrder", "tags": ["orders"], "summary": "Delete an order", "responses": {"200": {"$ref": "#/components/responses/Ok"}, "404": {"$ref": "#/components/responses/Error"}}}
        },
        "/orders/{id}/status": {
            "put": {"operationId": "updateOrderStatus", "tags": ["orders"], "summary": "Set order status", "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}], "responses": {"200": {"$ref": "#/components/responses/Ok"}, "400": {"$ref": "#/components/responses/Error"}}}
        },
        "/orders/bulk/status": {
            "put": {"operationId": "bulkUpdateOrderStatus", "tags": ["orders"], "summary": "Set the status of several orders", "responses": {"200": {"$ref": "#/components/responses/Ok"}}}
        },
        "/orders/dummy/create": {
            "post": {"operationId": "createDummyOrders", "tags": ["orders"], "summary": "Generate sample orders", "responses": {"201": {"$ref": "#/components/responses/Ok"}}}
        },
        "/orders/production/items-required": {
            "get": {"operationId": "listItemsRequired", "tags": ["orders"], "summary": "Ingredients still to produce", "responses": {"200": {"$ref": "#/components/responses/Ok"}}}
        },
        "/orders/analytics/summary": {
            "get": {"operationId": "orderAnalytics", "tags": ["orders"], "summary": "Order counts by status and date", "responses": {"200": {"$ref": "#/components/responses/Ok"}, "400": {"$ref": "#/components/responses/Error"}}}
        },
        "/customers": {
            "get": {"operationId": "listCustomers", "tags": ["customers"], "summary": "List customers", "responses": {"200": {"$ref": "#/components/responses/Ok"}}},
            "post": {"operationId": "createCustomer", "tags": ["customers"], "summary": "Create a customer", "responses": {"201": {"$ref": "#/components/responses/Ok"}}}
        },
        "/users/login": {
            "post": {"operationId": "login", "tags": ["users"], "summary": "Log in", "security": [], "responses": {"200": {"$ref": "#/components/responses/Ok"}, "401": {"$ref": "#/components/responses/Error"}}}
        },
        "/shipment/{orderNumber}": {
            "get": {"operationId": "shipmentDimensions", "tags": ["shipment"], "summary": "Line dimensions of an order", "parameters": [{"name": "orderNumber", "in": "path", "required": true, "schema": {"type": "integer"}}], "responses": {"200": {"$ref": "#/components/responses/Ok"}}}
        },
        "/fabric-invoice/{invoiceNumber}": {
            "get": {"operationId": "downloadFabricInvoice", "tags": ["fabric-invoice"], "summary": "Download a fabric invoice", "parameters": [{"name": "invoiceNumber", "in": "path", "required": true, "schema": {"type": "string"}}], "responses": {"200": {"description": "Document"}, "404": {"$ref": "#/components/responses/Error"}}}
        }
    },
    "webhooks": {
        "orders/create": {"post": {"operationId": "shopifyOrderCreate", "summary": "POST /shopify/orders/create", "responses": {"200": {"$ref": "#/components/responses/Receipt"}}}},
        "orders/updated": {"post": {"operationId": "shopifyOrderUpdated", "summary": "POST /shopify/orders/updated", "responses": {"200": {"$ref": "#/components/responses/Receipt"}}}},
        "orders/cancelled": {"post": {"operationId": "shopifyOrderCancelled", "summary": "POST /shopify/orders/cancelled", "responses": {"200": {"$ref": "#/components/responses/Receipt"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Orderhub API",
	Description:      "Order management backend fed by Shopify order webhooks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
