package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the OpenAPI endpoints for the question board.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>questionboard - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "questionboard", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "adminCookie": { "type": "apiKey", "in": "cookie", "name": "admin_token" } },
    "schemas": {
      "Question": {
        "type": "object",
        "properties": {
          "id": { "type": "integer", "format": "int64" },
          "content": { "type": "string", "minLength": 2, "maxLength": 1000 },
          "status": { "type": "string", "enum": ["pending", "answered", "archived"] },
          "created_at": { "type": "string", "format": "date-time" },
          "updated_at": { "type": "string", "format": "date-time" }
        }
      },
      "Error": { "type": "object", "properties": { "error": { "type": "string" } } }
    }
  },
  "paths": {
    "/api/questions": {
      "post": {
        "summary": "Submit an anonymous question",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "content": { "type": "string" } } } } } },
        "responses": { "201": { "description": "question created" }, "400": { "description": "missing or invalid content" } }
      },
      "get": {
        "summary": "List questions, newest first",
        "security": [{ "adminCookie": [] }],
        "parameters": [{ "name": "status", "in": "query", "schema": { "type": "string", "enum": ["pending", "answered", "archived"] } }],
        "responses": { "200": { "description": "questions returned" }, "400": { "description": "invalid status filter" }, "401": { "description": "not logged in" } }
      }
    },
    "/api/questions/{id}": {
      "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "integer", "format": "int64" } }],
      "get": {
        "summary": "Fetch one question",
        "security": [{ "adminCookie": [] }],
        "responses": { "200": { "description": "question returned" }, "400": { "description": "invalid id" }, "401": { "description": "not logged in" }, "404": { "description": "not found" } }
      },
      "patch": {
        "summary": "Change a question's status",
        "security": [{ "adminCookie": [] }],
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "status": { "type": "string", "enum": ["pending", "answered", "archived"] } } } } } },
        "responses": { "200": { "description": "question updated" }, "400": { "description": "invalid id or status" }, "401": { "description": "not logged in" }, "404": { "description": "not found" } }
      },
      "delete": {
        "summary": "Delete a question",
        "security": [{ "adminCookie": [] }],
        "responses": { "200": { "description": "question deleted" }, "400": { "description": "invalid id" }, "401": { "description": "not logged in" }, "500": { "description": "delete failed" } }
      }
    },
    "/api/admin/login": {
      "post": {
        "summary": "Exchange the admin password for a session cookie",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "password": { "type": "string" } } } } } },
        "responses": { "200": { "description": "session cookie set" }, "400": { "description": "password missing" }, "401": { "description": "wrong password" } }
      }
    },
    "/api/admin/logout": {
      "post": { "summary": "End the admin session", "responses": { "200": { "description": "cookie cleared" }, "500": { "description": "logout failed" } } }
    },
    "/health": { "get": { "summary": "Liveness probe", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness probe", "responses": { "200": { "description": "ready" }, "503": { "description": "a dependency is down" } } } }
  }
}`
