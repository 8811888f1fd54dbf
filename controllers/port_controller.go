package controllers

import (
	"errors"

	"freight-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PortController struct {
	DB *gorm.DB
}

var portInput struct {
	PortCode string `json:"port_code"`
	PortName string `json:"port_name"`
	Region   string `json:"region"`
	Country  string `json:"country"`
}

func NewPortController(db *gorm.DB) *PortController {
	return &PortController{DB: db}
}

func (c *PortController) CreatePort(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(&portInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	region := regionFromInput(portInput.Region)
	if !region.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown region"})
	}

	port := models.Port{
		PortCode:  portInput.PortCode,
		PortName:  portInput.PortName,
		Region:    region,
		Country:   portInput.Country,
		CreatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&port).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Port created successfully", "data": port})
}

func (c *PortController) GetAllPorts(ctx *fiber.Ctx) error {
	var ports []models.Port
	if err := c.DB.Find(&ports).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Ports found", "data": ports})
}

func (c *PortController) GetPortByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Port
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Port not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Port found", "data": result})
}

func (c *PortController) UpdatePort(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := ctx.BodyParser(&portInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	region := regionFromInput(portInput.Region)
	if !region.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown region"})
	}

	port := models.Port{
		PortCode:  portInput.PortCode,
		PortName:  portInput.PortName,
		Region:    region,
		Country:   portInput.Country,
		UpdatedBy: int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Model(&port).Where("id = ?", id).Updates(port).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Port updated successfully", "data": port})
}

func (c *PortController) DeletePort(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var port models.Port
	if err := c.DB.First(&port, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Port not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	port.DeletedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&port).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&port).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Port deleted successfully", "data": port})
}
