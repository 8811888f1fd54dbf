package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderHistoryRoutes(app *fiber.App) {

	controller := &controllers.OrderHistoryController{}
	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Get("/", authMiddleware.CheckPermission("history_view"), controller.GetOrders)
	api.Get("/details/search", authMiddleware.CheckPermission("history_view"), controller.SearchDetails)
	api.Get("/:order_no", authMiddleware.CheckPermission("history_view"), controller.GetOrderByNo)
	api.Post("/:order_no/export", authMiddleware.CheckPermission("history_view"), controller.ExportOrder)
}
