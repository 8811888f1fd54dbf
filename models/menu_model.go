package models

import "gorm.io/gorm"

// Menu is one node of the navigation/permission tree. A user may only open
// a screen whose menu node carries a permission they hold.
type Menu struct {
	gorm.Model
	Name        string       `json:"name"`
	Path        string       `json:"path"`
	Icon        string       `json:"icon"`
	MenuOrder   int          `json:"menu_order" gorm:"column:menu_order"`
	ParentID    *uint        `json:"parent_id"`
	Parent      *Menu        `gorm:"foreignKey:ParentID"`
	Children    []Menu       `gorm:"foreignKey:ParentID"`
	Permissions []Permission `gorm:"many2many:menu_permissions;"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}
