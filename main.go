package main

import (
	"log"

	"freight-app/config"
	"freight-app/controllers/idgen"
	"freight-app/database"
	"freight-app/migration"
	"freight-app/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func main() {

	config.LoadConfig()
	config.SetupLogger()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.GetDBConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app)
	routes.SetupOrderEntryRoutes(app)
	routes.SetupHandOrderRoutes(app)
	routes.SetupOrderHistoryRoutes(app)
	routes.SetupPortRoutes(app)
	routes.SetupConsigneeRoutes(app)
	routes.SetupFactoryRoutes(app)
	routes.SetupTariffRoutes(app)
	routes.SetupPackingTypeRoutes(app)
	routes.SetupTrackingRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupMenuRoutes(app)

	port := config.APP_PORT
	logrus.Infof("server listening on port %s", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
