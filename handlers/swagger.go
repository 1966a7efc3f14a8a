package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>jsonvault — Swagger</title>
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

// Minimal OpenAPI document describing the public endpoint API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "jsonvault", "version": "v0.1.0" },
  "paths": {
    "/api/create": {
      "post": {
        "summary": "Create a hosted JSON endpoint",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","jsonData","slug"],"properties":{"name":{"type":"string"},"jsonData":{"type":"string","description":"JSON value, serialized as a string"},"slug":{"type":"string","pattern":"^[a-z0-9-]+$"}}}}}},
        "responses": { "201": { "description": "endpoint created" }, "400": { "description": "missing field, bad slug or malformed JSON" }, "409": { "description": "slug already exists" } }
      }
    },
    "/api": {
      "get": { "summary": "List hosted endpoints", "responses": { "200": { "description": "count and endpoint summaries (jsonData omitted)" } } }
    },
    "/api/{slug}": {
      "get": { "summary": "Serve the stored JSON verbatim", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "the stored JSON value" }, "400": { "description": "invalid slug" }, "404": { "description": "unknown slug" } } },
      "put": { "summary": "Replace the stored JSON", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["jsonData"],"properties":{"jsonData":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated" }, "400": { "description": "invalid slug or JSON" }, "404": { "description": "unknown slug" } } },
      "delete": { "summary": "Delete the endpoint", "parameters": [{"name":"slug","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" }, "404": { "description": "unknown slug" } } }
    },
    "/health": { "get": { "summary": "Liveness plus a store round-trip", "responses": { "200": { "description": "healthy" }, "500": { "description": "store unreachable" } } } }
  }
}`
