package controllers

import (
	"errors"

	"freight-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FactoryController struct {
	DB *gorm.DB
}

var factoryInput struct {
	FactoryCode string `json:"factory_code"`
	FactoryName string `json:"factory_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
}

func NewFactoryController(db *gorm.DB) *FactoryController {
	return &FactoryController{DB: db}
}

func (c *FactoryController) CreateFactory(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(&factoryInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	factory := models.Factory{
		FactoryCode: factoryInput.FactoryCode,
		FactoryName: factoryInput.FactoryName,
		Address:     factoryInput.Address,
		City:        factoryInput.City,
		Country:     factoryInput.Country,
		Phone:       factoryInput.Phone,
		CreatedBy:   int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&factory).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Factory created successfully", "data": factory})
}

func (c *FactoryController) GetAllFactories(ctx *fiber.Ctx) error {
	var factories []models.Factory
	if err := c.DB.Find(&factories).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Factories found", "data": factories})
}

func (c *FactoryController) GetFactoryByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Factory
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Factory not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Factory found", "data": result})
}

func (c *FactoryController) UpdateFactory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := ctx.BodyParser(&factoryInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	factory := models.Factory{
		FactoryCode: factoryInput.FactoryCode,
		FactoryName: factoryInput.FactoryName,
		Address:     factoryInput.Address,
		City:        factoryInput.City,
		Country:     factoryInput.Country,
		Phone:       factoryInput.Phone,
		UpdatedBy:   int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&factory).Where("id = ?", id).Updates(factory).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Factory updated successfully", "data": factory})
}

func (c *FactoryController) DeleteFactory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var factory models.Factory
	if err := c.DB.First(&factory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Factory not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	factory.DeletedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&factory).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&factory).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Factory deleted successfully", "data": factory})
}
