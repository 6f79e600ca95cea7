// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"claimcenter_backend/internals/configs"
)

const defaultAllowOrigins = "http://localhost:3000,http://localhost:5173"

// CorsMiddleware reads CORS_ALLOW_ORIGINS (comma separated).
func CorsMiddleware() fiber.Handler {
	raw := configs.GetEnv("CORS_ALLOW_ORIGINS", defaultAllowOrigins)
	origins := make([]string, 0, 4)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		ExposeHeaders:    "Content-Disposition, X-Request-ID",
		AllowCredentials: true,
	})
}
