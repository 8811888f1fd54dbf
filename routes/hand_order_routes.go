package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"
	"freight-app/services/upstream"

	"github.com/gofiber/fiber/v2"
)

func SetupHandOrderRoutes(app *fiber.App) {

	client := upstream.NewClient(config.UpstreamBaseURL)
	controller := controllers.NewHandOrderController(client)

	api := app.Group(config.MAIN_ROUTES+"/hand-orders", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/calculate", authMiddleware.CheckPermission("order_entry"), controller.Calculate)
	api.Post("/submit", authMiddleware.CheckPermission("order_submit"), controller.Submit)
}
