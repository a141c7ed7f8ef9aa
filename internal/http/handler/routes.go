package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"galleryapi/internal/auth"
	"galleryapi/internal/http/middleware"
	"galleryapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, photoSvc service.PhotoService, authSvc service.AuthService, tokens *auth.TokenIssuer) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/login", Login(authSvc))

	guard := middleware.Auth(tokens)

	// Image bytes travel outside the procedure envelope; everything else is
	// a named procedure under /rpc.
	app.Post("/photos/upload", guard, UploadPhoto(photoSvc))

	rpc := app.Group("/rpc", guard)
	rpc.Post("/addphoto", AddPhoto(photoSvc))
	rpc.Post("/getphotos", GetPhotos(photoSvc))
	rpc.Post("/getphotodetails", GetPhotoDetails(photoSvc))
	rpc.Post("/editphoto", EditPhoto(photoSvc))
	rpc.Post("/deletephoto", DeletePhoto(photoSvc))
	rpc.Post("/findphotobymatch", FindPhotoByMatch(photoSvc))
}
