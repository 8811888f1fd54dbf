package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {

	controller := &controllers.UserController{}
	api := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Get("/profile", controller.GetProfile)

	api.Get("/roles", authMiddleware.CheckPermission("policy_admin"), controller.GetRoles)
	api.Post("/roles", authMiddleware.CheckPermission("policy_admin"), controller.CreateRole)
	api.Get("/roles/:id", authMiddleware.CheckPermission("policy_admin"), controller.GetRoleByID)
	api.Put("/roles/:id", authMiddleware.CheckPermission("policy_admin"), controller.UpdateRole)
	api.Put("/roles/:id/permissions", authMiddleware.CheckPermission("policy_admin"), controller.UpdatePermissionsForRole)

	api.Get("/permissions", authMiddleware.CheckPermission("policy_admin"), controller.GetPermissions)
	api.Post("/permissions", authMiddleware.CheckPermission("policy_admin"), controller.CreatePermission)
	api.Get("/permissions/:id", authMiddleware.CheckPermission("policy_admin"), controller.GetPermissionByID)
	api.Put("/permissions/:id", authMiddleware.CheckPermission("policy_admin"), controller.UpdatePermission)

	api.Post("/", authMiddleware.CheckPermission("policy_admin"), controller.CreateUser)
	api.Get("/", authMiddleware.CheckPermission("policy_admin"), controller.GetAllUsers)
	api.Get("/:id", authMiddleware.CheckPermission("policy_admin"), controller.GetUserByID)
	api.Put("/:id", authMiddleware.CheckPermission("policy_admin"), controller.UpdateUser)
	api.Delete("/:id", authMiddleware.CheckPermission("policy_admin"), controller.DeleteUser)
}
