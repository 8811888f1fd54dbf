package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"freight-app/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type OrderHistoryController struct {
	DB *gorm.DB
}

func NewOrderHistoryController(db *gorm.DB) *OrderHistoryController {
	return &OrderHistoryController{DB: db}
}

func (c *OrderHistoryController) GetOrders(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 50)

	repo := repositories.NewOrderRepository(c.DB)
	orders, total, err := repo.ListOrders(page, pageSize)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Orders found",
		"data": fiber.Map{
			"orders": orders,
			"total":  total,
			"page":   page,
		},
	})
}

func (c *OrderHistoryController) GetOrderByNo(ctx *fiber.Ctx) error {
	orderNo := ctx.Params("order_no")
	if orderNo == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order no is required"})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, err := repo.GetOrderByNo(orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order found", "data": order})
}

func (c *OrderHistoryController) SearchDetails(ctx *fiber.Ctx) error {
	tracking := strings.TrimSpace(ctx.Query("tracking_number"))
	if tracking == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tracking_number query is required"})
	}

	repo := repositories.NewOrderRepository(c.DB)
	details, err := repo.SearchDetails(strings.ToUpper(tracking))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Details found", "data": details})
}

// ExportOrder writes one booking and its items out as an xlsx report.
func (c *OrderHistoryController) ExportOrder(ctx *fiber.Ctx) error {
	orderNo := ctx.Params("order_no")
	if orderNo == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order no is required"})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, err := repo.GetOrderByNo(orderNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Order No")
	f.SetCellValue(sheet, "B1", "Tracking Number")
	f.SetCellValue(sheet, "C1", "Region")
	f.SetCellValue(sheet, "D1", "Supplier")
	f.SetCellValue(sheet, "E1", "Channel")
	f.SetCellValue(sheet, "F1", "Express Type")
	f.SetCellValue(sheet, "G1", "Total Fee")
	f.SetCellValue(sheet, "H1", "Qty")
	f.SetCellValue(sheet, "I1", "Weight")
	f.SetCellValue(sheet, "J1", "Duty Code")
	f.SetCellValue(sheet, "K1", "Port")

	for i, item := range order.Details {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), order.OrderNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), item.TrackingNumber)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), string(item.Region))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), item.Supplier)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), item.ChannelName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", i+2), item.ExpressType)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", i+2), item.TotalFee)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", i+2), item.Qty)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", i+2), item.Weight)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", i+2), item.DutyCode)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", i+2), item.Port)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, order.OrderNo))

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
