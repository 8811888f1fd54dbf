package controllers

import (
	"fmt"
	"strings"

	"freight-app/models"
	"freight-app/repositories"
	"freight-app/services"
	"freight-app/services/upstream"
	"freight-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func regionFromInput(s string) models.Region {
	return models.Region(strings.ToUpper(strings.TrimSpace(s)))
}

// OrderEntryController drives the batch ("auto") order-entry flow: spreadsheet
// upload, async detail fill, concurrent quoting, selection and submit. Live
// state lives in the per-session batch store; only a successful submit writes
// to the database.
type OrderEntryController struct {
	DB           *gorm.DB
	store        *services.BatchStore
	client       *upstream.Client
	reconciler   *services.Reconciler
	orchestrator *services.Orchestrator
	submitter    *services.Submitter
}

func NewOrderEntryController(client *upstream.Client) *OrderEntryController {
	return &OrderEntryController{
		store:        services.NewBatchStore(),
		client:       client,
		reconciler:   services.NewReconciler(client),
		orchestrator: services.NewOrchestrator(client),
		submitter:    services.NewSubmitter(client),
	}
}

func (c *OrderEntryController) batch(ctx *fiber.Ctx) *services.Batch {
	sessionID, _ := ctx.Locals("sessionID").(string)
	return c.store.Get(sessionID)
}

// UploadBatch parses an uploaded spreadsheet of tracking numbers, admits the
// non-duplicate rows and schedules their detail fetches.
func (c *OrderEntryController) UploadBatch(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only Excel files (.xlsx, .xls) are allowed",
		})
	}

	fileContent, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read Excel file",
		})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No sheets found in Excel file",
		})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read rows",
		})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Excel file must contain header and at least one data row",
		})
	}

	var candidates []services.RowCandidate
	var parseErrors []string

	// Row 1 is the header: TRACKING_NUMBER | REGION
	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		trackingNumber := strings.TrimSpace(row[0])
		region := models.Region("")
		if len(row) > 1 {
			region = models.Region(strings.ToUpper(strings.TrimSpace(row[1])))
		}
		if !region.Valid() {
			parseErrors = append(parseErrors,
				fmt.Sprintf("Row %d: unknown region '%s'", rowNum, string(region)))
			continue
		}

		candidates = append(candidates, services.RowCandidate{
			TrackingNumber: trackingNumber,
			Region:         region,
		})
	}

	result := c.reconciler.Ingest(c.batch(ctx), candidates)
	result.Warnings = append(result.Warnings, parseErrors...)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d added, %d skipped", result.Added, result.Skipped),
		"data":    result,
	})
}

// AddRow admits one manually-typed row into the batch.
func (c *OrderEntryController) AddRow(ctx *fiber.Ctx) error {
	var addRowInput struct {
		TrackingNumber string `json:"tracking_number"`
		Region         string `json:"region"`
	}

	if err := ctx.BodyParser(&addRowInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	region := models.Region(strings.ToUpper(strings.TrimSpace(addRowInput.Region)))
	if strings.TrimSpace(addRowInput.TrackingNumber) == "" || !region.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tracking_number and a valid region are required",
		})
	}

	result := c.reconciler.Ingest(c.batch(ctx), []services.RowCandidate{{
		TrackingNumber: addRowInput.TrackingNumber,
		Region:         region,
	}})

	if result.Added == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   strings.Join(result.Warnings, "; "),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Row added",
		"data":    result,
	})
}

// GetRows returns the current batch table.
func (c *OrderEntryController) GetRows(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Rows found",
		"data":    c.batch(ctx).Rows(),
	})
}

// DeleteRow removes one row. Any in-flight request for it lands as a no-op.
func (c *OrderEntryController) DeleteRow(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if !c.batch(ctx).RemoveRow(id) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Row not found"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Row deleted",
	})
}

// RetryDetail re-runs a failed detail fetch for one row.
func (c *OrderEntryController) RetryDetail(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if !c.reconciler.RetryDetail(c.batch(ctx), id) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Row not found or not in a retryable state",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Detail fetch retried",
	})
}

// CalculateAll quotes every unquoted row concurrently and waits for all of
// them. Already-quoted rows are untouched.
func (c *OrderEntryController) CalculateAll(ctx *fiber.Ctx) error {
	result := c.orchestrator.CalculateAll(ctx.UserContext(), c.batch(ctx))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Quoted %d of %d shipments", result.Succeeded, result.Requested),
		"data":    result,
	})
}

// SelectQuote picks one carrier option for a row (radio semantics).
func (c *OrderEntryController) SelectQuote(ctx *fiber.Ctx) error {
	var selectQuoteInput struct {
		RowID      string `json:"row_id"`
		QuoteIndex int    `json:"quote_index"` // -1 clears the selection
	}

	if err := ctx.BodyParser(&selectQuoteInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.batch(ctx).SelectQuote(selectQuoteInput.RowID, selectQuoteInput.QuoteIndex); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	row, _ := c.batch(ctx).Row(selectQuoteInput.RowID)
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Selection updated",
		"data":    row,
	})
}

// Submit books every selected shipment in one upstream call, persists the
// order history and clears the batch. On any failure the batch is untouched.
func (c *OrderEntryController) Submit(ctx *fiber.Ctx) error {
	batch := c.batch(ctx)

	req, err := c.submitter.Submit(ctx.UserContext(), batch)
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
		// The booking went through upstream; surface the history gap but
		// still report success to the user.
		utils.InsertOperationLog(c.DB, username, "ORDER_SUBMIT", "", "history persist failed: "+err.Error())
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("Booking submitted (%d shipments), history not recorded", len(req.Items)),
		})
	}

	utils.InsertOperationLog(c.DB, username, "ORDER_SUBMIT", header.OrderNo,
		fmt.Sprintf("%d shipments booked", len(req.Items)))
	go utils.SendBookingNotice(header.OrderNo, req)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Booking %s submitted with %d shipments", header.OrderNo, len(req.Items)),
		"data":    header,
	})
}

// GetProducts proxies the carrier channel list for a region.
func (c *OrderEntryController) GetProducts(ctx *fiber.Ctx) error {
	area := strings.ToUpper(ctx.Query("area"))
	if !models.Region(area).Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown region"})
	}

	products, err := c.client.ProductList(ctx.UserContext(), area)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Products found",
		"data":    products,
	})
}
