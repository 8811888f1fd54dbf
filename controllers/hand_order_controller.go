package controllers

import (
	"fmt"
	"strings"

	"freight-app/repositories"
	"freight-app/services"
	"freight-app/services/upstream"
	"freight-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HandOrderController drives the single ("hand") order-entry flow. Stateless
// between calls: the ranked quotes go to the client, and the chosen one
// comes back with the submit request.
type HandOrderController struct {
	DB      *gorm.DB
	service *services.HandService
}

func NewHandOrderController(client *upstream.Client) *HandOrderController {
	return &HandOrderController{
		service: services.NewHandService(client),
	}
}

func parseHandShipment(ctx *fiber.Ctx) (*services.HandShipment, error) {
	var handShipmentInput struct {
		TrackingNumber string  `json:"tracking_number" validate:"required"`
		Region         string  `json:"region" validate:"required"`
		Qty            int     `json:"qty" validate:"min=1"`
		Weight         float64 `json:"weight" validate:"gt=0"`
		Length         float64 `json:"length"`
		Width          float64 `json:"width"`
		Height         float64 `json:"height"`
		DutyCode       string  `json:"duty_code"`
		Port           string  `json:"port"`
		Recipient      string  `json:"recipient" validate:"required"`
		Address        string  `json:"address"`
	}

	if err := ctx.BodyParser(&handShipmentInput); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(handShipmentInput); err != nil {
		return nil, err
	}

	return &services.HandShipment{
		TrackingNumber: strings.TrimSpace(handShipmentInput.TrackingNumber),
		Region:         regionFromInput(handShipmentInput.Region),
		Qty:            handShipmentInput.Qty,
		Weight:         handShipmentInput.Weight,
		Length:         handShipmentInput.Length,
		Width:          handShipmentInput.Width,
		Height:         handShipmentInput.Height,
		DutyCode:       handShipmentInput.DutyCode,
		Port:           handShipmentInput.Port,
		Recipient:      handShipmentInput.Recipient,
		Address:        handShipmentInput.Address,
	}, nil
}

// Calculate quotes one manually-entered shipment and returns the ranked list.
func (c *HandOrderController) Calculate(ctx *fiber.Ctx) error {
	shipment, err := parseHandShipment(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quotes, err := c.service.Calculate(ctx.UserContext(), *shipment)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Quotes found",
		"data":    quotes,
	})
}

// Submit books the chosen option for one manually-entered shipment.
func (c *HandOrderController) Submit(ctx *fiber.Ctx) error {
	var handSubmitInput struct {
		Shipment struct {
			TrackingNumber string  `json:"tracking_number"`
			Region         string  `json:"region"`
			Qty            int     `json:"qty"`
			Weight         float64 `json:"weight"`
			Length         float64 `json:"length"`
			Width          float64 `json:"width"`
			Height         float64 `json:"height"`
			DutyCode       string  `json:"duty_code"`
			Port           string  `json:"port"`
			Recipient      string  `json:"recipient"`
			Address        string  `json:"address"`
		} `json:"shipment"`
		Quote upstream.CarrierQuote `json:"quote"`
	}

	if err := ctx.BodyParser(&handSubmitInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	in := handSubmitInput.Shipment
	shipment := services.HandShipment{
		TrackingNumber: strings.TrimSpace(in.TrackingNumber),
		Region:         regionFromInput(in.Region),
		Qty:            in.Qty,
		Weight:         in.Weight,
		Length:         in.Length,
		Width:          in.Width,
		Height:         in.Height,
		DutyCode:       in.DutyCode,
		Port:           in.Port,
		Recipient:      in.Recipient,
		Address:        in.Address,
	}

	req, err := c.service.Submit(ctx.UserContext(), shipment, handSubmitInput.Quote)
	if err != nil {
		status := fiber.StatusBadRequest
		if _, ok := err.(*upstream.BackendError); ok {
			status = fiber.StatusBadGateway
		}
		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	userID := int(ctx.Locals("userID").(float64))
	username, _ := ctx.Locals("username").(string)

	orderRepo := repositories.NewOrderRepository(c.DB)
	header, err := orderRepo.SaveBooking(req, userID)
	if err != nil {
		utils.InsertOperationLog(c.DB, username, "HAND_SUBMIT", "", "history persist failed: "+err.Error())
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "Booking submitted, history not recorded",
		})
	}

	utils.InsertOperationLog(c.DB, username, "HAND_SUBMIT", header.OrderNo,
		fmt.Sprintf("shipment %s booked", shipment.TrackingNumber))
	go utils.SendBookingNotice(header.OrderNo, req)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Booking %s submitted", header.OrderNo),
		"data":    header,
	})
}
