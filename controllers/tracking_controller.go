package controllers

import (
	"errors"
	"strings"
	"time"

	"freight-app/models"
	"freight-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TrackingController struct {
	DB *gorm.DB
}

var trackingInput struct {
	TrackingNumber string `json:"tracking_number"`
	Status         string `json:"status"`
	Location       string `json:"location"`
	Remark         string `json:"remark"`
	OccurredAt     string `json:"occurred_at"`
}

func NewTrackingController(db *gorm.DB) *TrackingController {
	return &TrackingController{DB: db}
}

func (c *TrackingController) CreateTrackingEntry(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(&trackingInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if strings.TrimSpace(trackingInput.TrackingNumber) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tracking number is required"})
	}

	occurredAt := time.Now()
	if trackingInput.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, trackingInput.OccurredAt)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid occurred_at, expected RFC3339"})
		}
		occurredAt = parsed
	}

	entry := models.TrackingEntry{
		TrackingNumber: services.NormalizeKey(trackingInput.TrackingNumber),
		Status:         trackingInput.Status,
		Location:       trackingInput.Location,
		Remark:         trackingInput.Remark,
		OccurredAt:     occurredAt,
		CreatedBy:      int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Tracking entry created successfully", "data": entry})
}

// GetTrackingByNumber returns the milestone history for one tracking number,
// newest event first. The key is normalized the same way upload dedupe does it,
// so TRK123-1 and trk123 land on the same history.
func (c *TrackingController) GetTrackingByNumber(ctx *fiber.Ctx) error {
	number := ctx.Params("number")
	if number == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tracking number is required"})
	}

	var entries []models.TrackingEntry
	if err := c.DB.Where("tracking_number = ?", services.NormalizeKey(number)).
		Order("occurred_at DESC").Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Tracking entries found", "data": entries})
}

func (c *TrackingController) GetAllTrackingEntries(ctx *fiber.Ctx) error {
	var entries []models.TrackingEntry
	if err := c.DB.Order("occurred_at DESC").Limit(500).Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Tracking entries found", "data": entries})
}

func (c *TrackingController) DeleteTrackingEntry(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var entry models.TrackingEntry
	if err := c.DB.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tracking entry not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	entry.DeletedBy = int(ctx.Locals("userID").(float64))

	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&entry).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Tracking entry deleted successfully", "data": entry})
}
