package FiberConfig

import (
	"fmt"

	"Compass/Config"
	"Compass/Controllers"
	"Compass/Models"
	"Compass/RegionCluster"
	"Compass/RouteOptimizer"
	"Compass/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	historyHandler := Controllers.NewRouteHistoryHandler(db)

	// API group
	api := app.Group("/api")

	api.Post("/route/optimize", RouteOptimizer.OptimalRouteHandler)
	api.Post("/regions/cluster", RegionCluster.ClusterHandler)

	// Route history
	api.Get("/routes/history", historyHandler.GetRouteHistory)
	api.Get("/routes/history/export", historyHandler.ExportRouteHistory)

	// Logs API routes
	api.Get("/logs", Controllers.GetLogs)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		MaxAge:       300, // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)

	port := "3001"
	if Config.Current != nil && Config.Current.Port != "" {
		port = Config.Current.Port
	}
	app.Listen(":" + port)
}
