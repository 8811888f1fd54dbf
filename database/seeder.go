// database/seeder.go
package database

import (
	"errors"
	"log"

	"freight-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedPermissions(db)
	SeedRoles(db)
	SeedMenus(db)
	SeedPorts(db)
	SeedPackingTypes(db)
	SeedUserMaster(db)
}

func SeedPermissions(db *gorm.DB) {
	permissions := []models.Permission{
		{Name: "order_entry", Description: "Create and quote shipment batches"},
		{Name: "order_submit", Description: "Submit bookings"},
		{Name: "master_edit", Description: "Edit master data"},
		{Name: "policy_admin", Description: "Manage users, roles, permissions"},
		{Name: "history_view", Description: "Browse orders and tracking history"},
	}

	for _, p := range permissions {
		var existing models.Permission
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&p)
			}
		}
	}
}

func SeedRoles(db *gorm.DB) {
	var perms []models.Permission
	db.Find(&perms)

	byName := map[string]models.Permission{}
	for _, p := range perms {
		byName[p.Name] = p
	}

	roles := []models.Role{
		{
			Name:        "admin",
			Description: "Full access",
			Permissions: perms,
		},
		{
			Name:        "operator",
			Description: "Order entry and history",
			Permissions: []models.Permission{
				byName["order_entry"], byName["order_submit"], byName["history_view"],
			},
		},
	}

	for _, r := range roles {
		var existing models.Role
		if err := db.Where("name = ?", r.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&r)
			}
		}
	}
}

func SeedMenus(db *gorm.DB) {
	menus := []models.Menu{
		{
			Name:      "Order Entry",
			Path:      "#",
			Icon:      "Package",
			MenuOrder: 1,
		},
		{
			Name:      "Batch Orders",
			Path:      "/order-entry/auto",
			Icon:      "Upload",
			MenuOrder: 1,
			ParentID:  getMenuIDByName(db, "Order Entry"),
		},
		{
			Name:      "Manual Order",
			Path:      "/order-entry/hand",
			Icon:      "Edit",
			MenuOrder: 2,
			ParentID:  getMenuIDByName(db, "Order Entry"),
		},
		{
			Name:      "Master Data",
			Path:      "#",
			Icon:      "Database",
			MenuOrder: 2,
		},
		{
			Name:      "Ports",
			Path:      "/master/ports",
			Icon:      "Anchor",
			MenuOrder: 1,
			ParentID:  getMenuIDByName(db, "Master Data"),
		},
		{
			Name:      "Tariffs",
			Path:      "/master/tariffs",
			Icon:      "Percent",
			MenuOrder: 2,
			ParentID:  getMenuIDByName(db, "Master Data"),
		},
		{
			Name:      "Consignees",
			Path:      "/master/consignees",
			Icon:      "Users",
			MenuOrder: 3,
			ParentID:  getMenuIDByName(db, "Master Data"),
		},
		{
			Name:      "History",
			Path:      "/history/orders",
			Icon:      "Clock",
			MenuOrder: 3,
		},
	}

	for _, m := range menus {
		var existing models.Menu
		if err := db.Where("name = ?", m.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&m)
			}
		}
	}
}

func SeedPorts(db *gorm.DB) {
	ports := []models.Port{
		{PortCode: "LAX", PortName: "Los Angeles", Region: models.RegionUSWest, Country: "US"},
		{PortCode: "ORD", PortName: "Chicago", Region: models.RegionUSCentral, Country: "US"},
		{PortCode: "JFK", PortName: "New York", Region: models.RegionUSEast, Country: "US"},
	}

	for _, p := range ports {
		var existing models.Port
		if err := db.Where("port_code = ?", p.PortCode).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&p)
			}
		}
	}
}

func SeedPackingTypes(db *gorm.DB) {
	packings := []models.PackingType{
		{Code: "CTN", Name: "Carton"},
		{Code: "PLT", Name: "Pallet"},
		{Code: "BAG", Name: "Bag"},
	}

	for _, p := range packings {
		var existing models.PackingType
		if err := db.Where("code = ?", p.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&p)
			}
		}
	}
}

func SeedUserMaster(db *gorm.DB) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash seed password:", err)
		return
	}

	var adminRole models.Role
	db.Where("name = ?", "admin").First(&adminRole)

	users := []models.User{
		{
			Username:  "admin",
			Password:  string(hashed),
			Name:      "Admin",
			Email:     "admin@example.com",
			BaseRoute: "/order-entry/auto",
			Roles:     []models.Role{adminRole},
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Println("Failed to insert user:", user.Username, err)
			} else {
				log.Println("Insert user:", user.Username)
			}
		}
	}
}

func getMenuIDByName(db *gorm.DB, name string) *uint {
	var parent models.Menu
	err := db.Where("name = ?", name).First(&parent).Error
	if err == nil {
		id := parent.ID
		return &id
	}
	return nil
}
