package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {

	authController := &controllers.AuthController{}
	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", middleware.LoginMiddleware, controllers.Login)
	api.Post("/refresh", middleware.LoginMiddleware, controllers.RefreshToken)

	apiLogout := app.Group(config.MAIN_ROUTES+"/auth", middleware.AuthMiddleware)
	apiLogout.Use(middleware.InjectDBMiddleware(authController))
	apiLogout.Get("/logout", authController.Logout)
	apiLogout.Get("/isLoggedIn", authController.IsLoggedIn)
}
