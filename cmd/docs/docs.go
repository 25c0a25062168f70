// Package docs holds the swagger description served at /swagger.
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
        "/conversion": {
            "get": {
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Get the conversion form",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Clear the form",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}}
                }
            }
        },
        "/conversion/amount": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Edit the amount",
                "parameters": [
                    {"description": "Raw amount text", "name": "amount", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateAmountRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}},
                    "400": {"description": "Invalid amount", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/conversion/from": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Select the source currency",
                "parameters": [
                    {"description": "default, USD, EUR or GBP", "name": "currency", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectCurrencyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}},
                    "400": {"description": "Unsupported currency", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/conversion/to": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Select the target currency",
                "parameters": [
                    {"description": "default, USD, EUR or GBP", "name": "currency", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SelectCurrencyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}},
                    "400": {"description": "Unsupported currency", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/conversion/reverse": {
            "post": {
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Swap source and target currencies",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}}
                }
            }
        },
        "/conversion/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["conversion"],
                "summary": "Convert the current amount",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ConversionStateResponse"}},
                    "400": {"description": "Missing amount or undefined conversion", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/rates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "List conversion rates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RatesResponse"}}
                }
            }
        },
        "/rates/{from}/{to}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Update a conversion rate",
                "parameters": [
                    {"type": "string", "description": "Source currency", "name": "from", "in": "path", "required": true},
                    {"type": "string", "description": "Target currency", "name": "to", "in": "path", "required": true},
                    {"description": "New rate", "name": "rate", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateRateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RatesResponse"}},
                    "400": {"description": "Invalid pair or rate", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.ConversionStateResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "string"},
                "fromCurrency": {"type": "string"},
                "toCurrency": {"type": "string"},
                "phase": {"type": "string"},
                "outputVisible": {"type": "boolean"},
                "output": {"type": "string"},
                "lastConversion": {"$ref": "#/definitions/dto.LastConversionResponse"},
                "summary": {"type": "string"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "state": {"$ref": "#/definitions/dto.ConversionStateResponse"}
            }
        },
        "dto.LastConversionResponse": {
            "type": "object",
            "properties": {
                "input": {"type": "string"},
                "output": {"type": "string"},
                "fromCurrency": {"type": "string"},
                "toCurrency": {"type": "string"}
            }
        },
        "dto.RatesResponse": {
            "type": "object",
            "properties": {
                "rates": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "dto.SelectCurrencyRequest": {
            "type": "object",
            "required": ["currency"],
            "properties": {"currency": {"type": "string"}}
        },
        "dto.UpdateAmountRequest": {
            "type": "object",
            "properties": {"amount": {"type": "string"}}
        },
        "dto.UpdateRateRequest": {
            "type": "object",
            "required": ["rate"],
            "properties": {"rate": {"type": "number"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Currency Convertor API",
	Description:      "Currency conversion form served over HTTP.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
