package controllers

import (
	"errors"

	"freight-app/models"
	"freight-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

type menuInput struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
	ParentID    *uint  `json:"parent_id"`
	Permissions []uint `json:"permissions"`
}

func (c *MenuController) GetAllMenus(ctx *fiber.Ctx) error {
	var menus []models.Menu
	if err := c.DB.Preload("Children").Preload("Permissions").Find(&menus).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": menus})
}

// GetMenus returns the root menus with their children and permissions.
func (c *MenuController) GetMenus(ctx *fiber.Ctx) error {
	var menus []models.Menu
	err := c.DB.
		Preload("Children").
		Preload("Permissions").
		Where("parent_id IS NULL").
		Order("menu_order asc").
		Find(&menus).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"success": true, "data": menus})
}

// GetMenuUser maps the tree into the sidebar shape the frontend renders.
func (c *MenuController) GetMenuUser(ctx *fiber.Ctx) error {
	var menus []models.Menu
	err := c.DB.
		Preload("Children").
		Where("parent_id IS NULL").
		Order("menu_order asc").
		Find(&menus).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var result []map[string]interface{}
	for _, menu := range menus {
		children := []map[string]interface{}{}
		for _, child := range menu.Children {
			children = append(children, map[string]interface{}{
				"title": child.Name,
				"url":   child.Path,
			})
		}

		result = append(result, map[string]interface{}{
			"title":    menu.Name,
			"url":      menu.Path,
			"icon":     menu.Icon,
			"isActive": true,
			"items":    children,
		})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": result})
}

// CheckPermission reports whether the menu tree exposes the named permission
// anywhere. Screens gate their buttons on this.
func (c *MenuController) CheckPermission(ctx *fiber.Ctx) error {
	name := ctx.Params("name")
	if name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Permission name is required"})
	}

	var tree []models.Menu
	err := c.DB.
		Preload("Children.Permissions").
		Preload("Permissions").
		Where("parent_id IS NULL").
		Order("menu_order asc").
		Find(&tree).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"permission": name, "granted": services.HasPermission(tree, name)},
	})
}

func (c *MenuController) GetMenuByID(ctx *fiber.Ctx) error {
	menuID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var menu models.Menu
	if err := c.DB.Preload("Children").Preload("Permissions").First(&menu, menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": menu})
}

func (c *MenuController) CreateMenu(ctx *fiber.Ctx) error {
	var input menuInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var permissions []models.Permission
	if len(input.Permissions) > 0 {
		if err := c.DB.Where("id IN ?", input.Permissions).Find(&permissions).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	menu := models.Menu{
		Name:        input.Name,
		Path:        input.Path,
		Icon:        input.Icon,
		MenuOrder:   input.Order,
		ParentID:    input.ParentID,
		Permissions: permissions,
		CreatedBy:   int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&menu).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Menu created successfully", "data": menu})
}

func (c *MenuController) UpdateMenu(ctx *fiber.Ctx) error {
	menuID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var menu models.Menu
	if err := c.DB.Preload("Permissions").First(&menu, menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input menuInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	menu.Name = input.Name
	menu.Path = input.Path
	menu.Icon = input.Icon
	menu.MenuOrder = input.Order
	menu.ParentID = input.ParentID
	menu.UpdatedBy = int(ctx.Locals("userID").(float64))

	var permissions []models.Permission
	if len(input.Permissions) > 0 {
		if err := c.DB.Where("id IN ?", input.Permissions).Find(&permissions).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	menu.Permissions = permissions

	if err := c.DB.Save(&menu).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Menu updated successfully", "data": menu})
}

func (c *MenuController) DeleteMenu(ctx *fiber.Ctx) error {
	menuID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var menu models.Menu
	if err := c.DB.First(&menu, menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&menu).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Menu deleted successfully"})
}

func (c *MenuController) GetMenuPermission(ctx *fiber.Ctx) error {
	permissionID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid permission ID",
		})
	}

	var permission models.Permission
	if err := c.DB.Preload("Menus").First(&permission, permissionID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Permission not found",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    permission.Menus,
	})
}

func (c *MenuController) UpdatePermissionMenus(ctx *fiber.Ctx) error {
	permissionID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid permission ID",
		})
	}

	var body struct {
		MenuIDs []uint `json:"menu_ids"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	var permission models.Permission
	if err := c.DB.First(&permission, permissionID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Permission not found",
		})
	}

	var menus []models.Menu
	if len(body.MenuIDs) > 0 {
		if err := c.DB.Where("id IN ?", body.MenuIDs).Find(&menus).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to fetch menus",
			})
		}
	}

	if err := c.DB.Model(&permission).Association("Menus").Replace(menus); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update permission menus",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Permission menus updated successfully",
		"data":    menus,
	})
}
