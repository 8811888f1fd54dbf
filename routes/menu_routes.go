package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMenuRoutes(app *fiber.App) {

	controller := &controllers.MenuController{}
	api := app.Group(config.MAIN_ROUTES+"/menus", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	api.Get("/all", controller.GetAllMenus)
	api.Get("/user", controller.GetMenuUser)
	api.Get("/check/:name", controller.CheckPermission)
	api.Get("/permission/:id", controller.GetMenuPermission)
	api.Put("/permission/:id", controller.UpdatePermissionMenus)
	api.Get("/", controller.GetMenus)
	api.Post("/", controller.CreateMenu)
	api.Get("/:id", controller.GetMenuByID)
	api.Put("/:id", controller.UpdateMenu)
	api.Delete("/:id", controller.DeleteMenu)
}
