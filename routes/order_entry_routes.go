package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"
	"freight-app/services/upstream"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderEntryRoutes(app *fiber.App) {

	client := upstream.NewClient(config.UpstreamBaseURL)
	controller := controllers.NewOrderEntryController(client)

	api := app.Group(config.MAIN_ROUTES+"/order-entry", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/upload", authMiddleware.CheckPermission("order_entry"), controller.UploadBatch)
	api.Post("/rows", authMiddleware.CheckPermission("order_entry"), controller.AddRow)
	api.Get("/rows", controller.GetRows)
	api.Delete("/rows/:id", authMiddleware.CheckPermission("order_entry"), controller.DeleteRow)
	api.Post("/rows/:id/retry-detail", authMiddleware.CheckPermission("order_entry"), controller.RetryDetail)
	api.Post("/calculate", authMiddleware.CheckPermission("order_entry"), controller.CalculateAll)
	api.Post("/select", authMiddleware.CheckPermission("order_entry"), controller.SelectQuote)
	api.Post("/submit", authMiddleware.CheckPermission("order_submit"), controller.Submit)
	api.Get("/products", controller.GetProducts)
}
