// Package docs registers the OpenAPI document served under /swagger/.
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
        "/api/tanks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tanks"],
                "summary": "List tanks",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Tank"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tanks"],
                "summary": "Create a tank",
                "parameters": [{"name": "tank", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Tank"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Tank"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/tanks/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
            "get": {
                "produces": ["application/json"],
                "tags": ["Tanks"],
                "summary": "Tank with all of its findings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TankSummary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tanks"],
                "summary": "Replace a tank's attributes",
                "parameters": [{"name": "tank", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Tank"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Tank"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tanks"],
                "summary": "Update some of a tank's attributes",
                "parameters": [{"name": "changes", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Tank"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Tanks"],
                "summary": "Delete a tank and all of its findings",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/tanks/{id}/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tanks"],
                "summary": "Tank summary",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TankSummary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/tanks/{id}/goal-results/{goal_key}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Goals"],
                "summary": "Create or replace the goal result for a tank",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "goal_key", "in": "path", "required": true, "type": "string", "enum": ["goal_1", "goal_2", "goal_3", "goal_4", "goal_5", "goal_6", "goal_7", "goal_8"]},
                    {"name": "result", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GoalResult"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/GoalResult"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/GoalResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/ut-results": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Findings"],
                "summary": "List UT results",
                "description": "The other finding collections (shell-settlement-surveys, edge-settlement-checks, column-plumbness-checks, visual-findings, other-nde, goal-results) follow the same CRUD layout and accept tank_id.",
                "parameters": [
                    {"name": "tank_id", "in": "query", "type": "string", "format": "uuid"},
                    {"name": "category", "in": "query", "type": "string", "enum": ["bottom", "appurtenance", "roof", "shell"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/goal-question-templates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Goals"],
                "summary": "List goal question templates",
                "parameters": [{"name": "goal_key", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/metadata": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Metadata"],
                "summary": "Choice lists and the inspection method checklist",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Metadata"}}}
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness and database check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "example": "VALIDATION_FAILED"},
                        "message": {"type": "string"},
                        "fields": {"type": "object"},
                        "request_id": {"type": "string"}
                    }
                }
            }
        },
        "Tank": {
            "type": "object",
            "required": ["tank_name", "owner", "facility_type", "city", "state", "design_standard", "product_stored", "foundation", "anchors", "shell_weld_type", "insulation", "shell_manway", "access_structure", "bottom_type", "secondary_containment_type"],
            "properties": {
                "tank_unique_id": {"type": "string", "format": "uuid", "readOnly": true},
                "tank_name": {"type": "string"},
                "owner": {"type": "string"},
                "facility_type": {"type": "string", "enum": ["terminal", "refinery", "production", "other"]},
                "foundation": {"type": "string", "enum": ["concrete", "earthen", "piles", "ringwall", "other"]},
                "access_structure": {"type": "string", "enum": ["stair", "ladder", "catwalk", "other"]},
                "inspection_date": {"type": "string", "format": "date"},
                "diameter_ft": {"type": "string", "example": "120.50"},
                "construction_annotations": {"type": "object"}
            }
        },
        "TankSummary": {
            "allOf": [
                {"$ref": "#/definitions/Tank"},
                {
                    "type": "object",
                    "properties": {
                        "shell_settlement_surveys": {"type": "array", "items": {"type": "object"}},
                        "ut_results": {"type": "array", "items": {"type": "object"}},
                        "edge_settlement_checks": {"type": "array", "items": {"type": "object"}},
                        "column_plumbness_checks": {"type": "array", "items": {"type": "object"}},
                        "visual_findings": {"type": "array", "items": {"type": "object"}},
                        "other_nde": {"type": "array", "items": {"type": "object"}},
                        "goal_results": {"type": "array", "items": {"$ref": "#/definitions/GoalResult"}}
                    }
                }
            ]
        },
        "GoalResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "readOnly": true},
                "tank": {"type": "string", "format": "uuid"},
                "goal_key": {"type": "string"},
                "goal_key_display": {"type": "string", "readOnly": true},
                "methods": {"type": "array", "items": {"type": "string"}},
                "standard_responses": {"type": "object"},
                "custom_responses": {"type": "array", "items": {"type": "object"}}
            }
        },
        "Metadata": {
            "type": "object",
            "properties": {
                "methods": {"type": "array", "items": {"type": "string"}},
                "goals": {"type": "array", "items": {"type": "object"}},
                "tank_choices": {"type": "object"}
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
	Title:            "Tank Inspection API",
	Description:      "Data entry and reporting backend for above-ground storage tank inspections.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
