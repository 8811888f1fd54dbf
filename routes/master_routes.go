package routes

import (
	"freight-app/config"
	"freight-app/controllers"
	"freight-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPortRoutes(app *fiber.App) {

	controller := &controllers.PortController{}
	api := app.Group(config.MAIN_ROUTES+"/ports", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/", authMiddleware.CheckPermission("master_edit"), controller.CreatePort)
	api.Get("/", controller.GetAllPorts)
	api.Get("/:id", controller.GetPortByID)
	api.Put("/:id", authMiddleware.CheckPermission("master_edit"), controller.UpdatePort)
	api.Delete("/:id", authMiddleware.CheckPermission("master_edit"), controller.DeletePort)
}

func SetupConsigneeRoutes(app *fiber.App) {

	controller := &controllers.ConsigneeController{}
	api := app.Group(config.MAIN_ROUTES+"/consignees", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/upload-excel", authMiddleware.CheckPermission("master_edit"), controller.CreateConsigneeFromExcel)
	api.Post("/", authMiddleware.CheckPermission("master_edit"), controller.CreateConsignee)
	api.Get("/", controller.GetAllConsignees)
	api.Get("/:id", controller.GetConsigneeByID)
	api.Put("/:id", authMiddleware.CheckPermission("master_edit"), controller.UpdateConsignee)
	api.Delete("/:id", authMiddleware.CheckPermission("master_edit"), controller.DeleteConsignee)
}

func SetupFactoryRoutes(app *fiber.App) {

	controller := &controllers.FactoryController{}
	api := app.Group(config.MAIN_ROUTES+"/factories", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/", authMiddleware.CheckPermission("master_edit"), controller.CreateFactory)
	api.Get("/", controller.GetAllFactories)
	api.Get("/:id", controller.GetFactoryByID)
	api.Put("/:id", authMiddleware.CheckPermission("master_edit"), controller.UpdateFactory)
	api.Delete("/:id", authMiddleware.CheckPermission("master_edit"), controller.DeleteFactory)
}

func SetupTariffRoutes(app *fiber.App) {

	controller := &controllers.TariffController{}
	api := app.Group(config.MAIN_ROUTES+"/tariffs", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/upload-excel", authMiddleware.CheckPermission("master_edit"), controller.CreateTariffFromExcel)
	api.Post("/export", controller.ExportTariffs)
	api.Post("/", authMiddleware.CheckPermission("master_edit"), controller.CreateTariff)
	api.Get("/", controller.GetAllTariffs)
	api.Get("/:id", controller.GetTariffByID)
	api.Put("/:id", authMiddleware.CheckPermission("master_edit"), controller.UpdateTariff)
	api.Delete("/:id", authMiddleware.CheckPermission("master_edit"), controller.DeleteTariff)
}

func SetupPackingTypeRoutes(app *fiber.App) {

	controller := &controllers.PackingController{}
	api := app.Group(config.MAIN_ROUTES+"/packing-types", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/", authMiddleware.CheckPermission("master_edit"), controller.CreatePackingType)
	api.Get("/", controller.GetAllPackingTypes)
	api.Get("/:id", controller.GetPackingTypeByID)
	api.Put("/:id", authMiddleware.CheckPermission("master_edit"), controller.UpdatePackingType)
	api.Delete("/:id", authMiddleware.CheckPermission("master_edit"), controller.DeletePackingType)
}

func SetupTrackingRoutes(app *fiber.App) {

	controller := &controllers.TrackingController{}
	api := app.Group(config.MAIN_ROUTES+"/tracking", middleware.AuthMiddleware)
	api.Use(middleware.InjectDBMiddleware(controller))

	authMiddleware := middleware.AuthMiddlewareStruct{}
	api.Use(middleware.InjectDBMiddleware(&authMiddleware))

	api.Post("/", authMiddleware.CheckPermission("master_edit"), controller.CreateTrackingEntry)
	api.Get("/", controller.GetAllTrackingEntries)
	api.Get("/number/:number", controller.GetTrackingByNumber)
	api.Delete("/:id", authMiddleware.CheckPermission("master_edit"), controller.DeleteTrackingEntry)
}
