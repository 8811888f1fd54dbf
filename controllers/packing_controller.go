package controllers

import (
	"errors"

	"freight-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PackingController struct {
	DB *gorm.DB
}

var packingInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func NewPackingController(db *gorm.DB) *PackingController {
	return &PackingController{DB: db}
}

func (c *PackingController) CreatePackingType(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(&packingInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	packing := models.PackingType{
		Code:      packingInput.Code,
		Name:      packingInput.Name,
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&packing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Packing type created successfully", "data": packing})
}

func (c *PackingController) GetAllPackingTypes(ctx *fiber.Ctx) error {
	var packings []models.PackingType
	if err := c.DB.Find(&packings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Packing types found", "data": packings})
}

func (c *PackingController) GetPackingTypeByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.PackingType
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Packing type not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Packing type found", "data": result})
}

func (c *PackingController) UpdatePackingType(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := ctx.BodyParser(&packingInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	packing := models.PackingType{
		Code:      packingInput.Code,
		Name:      packingInput.Name,
		UpdatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&packing).Where("id = ?", id).Updates(packing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Packing type updated successfully", "data": packing})
}

func (c *PackingController) DeletePackingType(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var packing models.PackingType
	if err := c.DB.First(&packing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Packing type not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	packing.DeletedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&packing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&packing).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Packing type deleted successfully", "data": packing})
}
