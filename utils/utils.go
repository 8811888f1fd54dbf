package utils

import (
	"time"

	"freight-app/models"

	"gorm.io/gorm"
)

// InsertOperationLog writes one audit row for a mutating operation. Logging
// must never fail the operation itself, so errors are swallowed.
func InsertOperationLog(db *gorm.DB, username, operation, refNo, detail string) {
	db.Create(&models.OperationLog{
		Username:  username,
		Operation: operation,
		RefNo:     refNo,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
}
