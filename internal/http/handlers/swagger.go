package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const swaggerUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>CategoryHub API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #f8fafc; }
      #swagger-ui { max-width: 1200px; margin: 0 auto; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPIYAML = `openapi: 3.0.3
info:
  title: CategoryHub API
  version: 1.0.0
paths:
  /api/user:
    post:
      summary: Create a user
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/CreateUser'
      responses:
        "201":
          description: Created, user_id is the store assigned id
          content:
            application/json:
              schema:
                type: object
                properties:
                  status: {type: string, example: ok}
                  user_id: {type: integer, format: int64}
        "400": {$ref: '#/components/responses/Error'}
        "503": {$ref: '#/components/responses/Error'}
  /api/categories:
    post:
      summary: Create a category, omit parent_id for a root
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/CreateCategory'
      responses:
        "201":
          description: Created
          content:
            application/json:
              schema:
                type: object
                properties:
                  status: {type: string, example: ok}
                  id: {type: integer, format: int64}
        "400": {$ref: '#/components/responses/Error'}
        "422": {$ref: '#/components/responses/Error'}
        "503": {$ref: '#/components/responses/Error'}
    get:
      summary: List categories as a nested tree
      parameters:
        - name: parent_id
          in: query
          required: false
          description: list only the subtree under this category
          schema: {type: integer, format: int64, minimum: 1}
      responses:
        "200":
          description: The category forest
          content:
            application/json:
              schema:
                type: object
                properties:
                  status: {type: string, example: ok}
                  categories:
                    type: array
                    items: {$ref: '#/components/schemas/CategoryNode'}
        "304": {description: Not modified}
        "400": {$ref: '#/components/responses/Error'}
        "503": {$ref: '#/components/responses/Error'}
components:
  responses:
    Error:
      description: Error envelope
      content:
        application/json:
          schema:
            type: object
            properties:
              error:
                type: object
                properties:
                  code: {type: string}
                  message: {type: string}
                  requestId: {type: string}
                  details: {type: object}
  schemas:
    CreateUser:
      type: object
      required: [email, first_name, last_name, access_token, user_id]
      properties:
        email: {type: string, format: email}
        first_name: {type: string}
        last_name: {type: string}
        access_token: {type: string}
        user_id: {type: integer, format: int64}
    CreateCategory:
      type: object
      required: [name, display_name]
      properties:
        name: {type: string}
        display_name: {type: string}
        parent_id: {type: integer, format: int64, nullable: true}
    CategoryNode:
      type: object
      properties:
        name: {type: string}
        display_name: {type: string}
        children:
          type: array
          items: {$ref: '#/components/schemas/CategoryNode'}
`

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIHTML))
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(openAPIYAML))
}
