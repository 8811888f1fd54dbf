package migration

import (
	"freight-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Menu{},
		&models.Port{},
		&models.Consignee{},
		&models.Factory{},
		&models.Tariff{},
		&models.PackingType{},
		&models.OrderHeader{},
		&models.OrderDetail{},
		&models.TrackingEntry{},
		&models.OperationLog{},
		&models.FileLog{},
	)
}
