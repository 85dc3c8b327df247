// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/app/middleware"
	"github.com/cliphaus/cliphaus-platform/app/services"
	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PayoutHandlerInterface defines the contract for payout and batch handlers
type PayoutHandlerInterface interface {
	GenerateBatch(c fiber.Ctx) error
	ListBatches(c fiber.Ctx) error
	GetBatch(c fiber.Ctx) error
	ExportBatch(c fiber.Ctx) error
	MarkPayoutPaid(c fiber.Ctx) error
	MarkBatchPaid(c fiber.Ctx) error
	CancelBatch(c fiber.Ctx) error
	DeleteBatch(c fiber.Ctx) error
}

// PayoutHandler implements PayoutHandlerInterface
type PayoutHandler struct {
	payoutFlow    businessflow.PayoutFlow
	batchFlow     businessflow.BatchFlow
	reportService services.ReportService
	validator     *validator.Validate
}

func NewPayoutHandler(
	payoutFlow businessflow.PayoutFlow,
	batchFlow businessflow.BatchFlow,
	reportService services.ReportService,
) PayoutHandlerInterface {
	return &PayoutHandler{
		payoutFlow:    payoutFlow,
		batchFlow:     batchFlow,
		reportService: reportService,
		validator:     validator.New(),
	}
}

// ErrorResponse standard JSON error
func (h *PayoutHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

// SuccessResponse standard JSON success
func (h *PayoutHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GenerateBatch creates a payout batch for approved clips of a period
// @Summary Generate a payout batch
// @Description Batch approved clips created inside the period into clipper payouts
// @Tags Payouts
// @Accept json
// @Produce json
// @Param request body dto.GeneratePayoutBatchRequest true "Period bounds"
// @Success 201 {object} dto.APIResponse{data=dto.GeneratePayoutBatchResponse} "Batch generated"
// @Failure 400 {object} dto.APIResponse "Invalid period"
// @Failure 409 {object} dto.APIResponse "A generation is already running"
// @Failure 422 {object} dto.APIResponse "No eligible clips in period"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches [post]
func (h *PayoutHandler) GenerateBatch(c fiber.Ctx) error {
	var req dto.GeneratePayoutBatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.payoutFlow.GeneratePayoutBatch(createRequestContextWithTimeout(c, payoutGenerateTimeout), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidPeriod(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Period start cannot be after period end", "INVALID_PERIOD", nil)
		}
		if businessflow.IsGenerationInProgress(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A payout generation is already running", "GENERATION_IN_PROGRESS", nil)
		}
		if businessflow.IsNoEligibleClips(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "No eligible clips in period", "NO_ELIGIBLE_CLIPS", nil)
		}
		log.Println("Payout batch generation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Payout batch generation failed", "BATCH_GENERATION_FAILED", nil)
	}

	middleware.PayoutBatchesGenerated.Inc()

	return h.SuccessResponse(c, fiber.StatusCreated, "Batch generated", result)
}

// ListBatches returns a page of payout batches
// @Summary List payout batches
// @Description List payout batches newest first
// @Tags Payouts
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListPayoutBatchesResponse} "Batches retrieved"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches [get]
func (h *PayoutHandler) ListBatches(c fiber.Ctx) error {
	result, err := h.payoutFlow.ListBatches(createRequestContext(c), queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}
		log.Println("Batch listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch listing failed", "BATCH_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Batches retrieved", result)
}

// GetBatch returns one batch with its clipper payouts
// @Summary Get a payout batch
// @Description Return one batch and its per-clipper payout rows
// @Tags Payouts
// @Produce json
// @Param uuid path string true "Batch UUID"
// @Success 200 {object} dto.APIResponse{data=dto.GetPayoutBatchResponse} "Batch retrieved"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches/{uuid} [get]
func (h *PayoutHandler) GetBatch(c fiber.Ctx) error {
	result, err := h.payoutFlow.GetBatch(createRequestContext(c), c.Params("uuid"))
	if err != nil {
		if businessflow.IsBatchNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", "BATCH_NOT_FOUND", nil)
		}
		log.Println("Batch lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch lookup failed", "BATCH_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Batch retrieved", result)
}

// ExportBatch downloads one batch as an XLSX workbook
// @Summary Export a payout batch
// @Description Download one batch as an XLSX workbook with payouts and clips sheets
// @Tags Payouts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param uuid path string true "Batch UUID"
// @Success 200 {file} binary "XLSX export"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches/{uuid}/export [get]
func (h *PayoutHandler) ExportBatch(c fiber.Ctx) error {
	filename, content, err := h.reportService.ExportPayoutBatchXLSX(createRequestContext(c), c.Params("uuid"))
	if err != nil {
		log.Println("Batch export failed", err)
		return h.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", "BATCH_NOT_FOUND", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

// MarkPayoutPaid marks one clipper payout as paid and credits earnings
// @Summary Mark a clipper payout paid
// @Description Mark one payout row paid; repeated calls are no-ops
// @Tags Payouts
// @Produce json
// @Param uuid path string true "Payout UUID"
// @Success 200 {object} dto.APIResponse{data=dto.MarkPayoutPaidResponse} "Payout paid"
// @Failure 404 {object} dto.APIResponse "Payout not found"
// @Security BearerAuth
// @Router /api/v1/admin/payouts/{uuid}/pay [post]
func (h *PayoutHandler) MarkPayoutPaid(c fiber.Ctx) error {
	result, err := h.batchFlow.MarkPayoutAsPaid(createRequestContext(c), c.Params("uuid"), clientMetadata(c))
	if err != nil {
		if businessflow.IsPayoutNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Payout not found", "PAYOUT_NOT_FOUND", nil)
		}
		log.Println("Payout paid-transition failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Payout paid-transition failed", "PAYOUT_PAY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// MarkBatchPaid settles every pending payout in a draft batch
// @Summary Mark a batch paid
// @Description Settle all pending payouts of a draft batch and complete it
// @Tags Payouts
// @Produce json
// @Param uuid path string true "Batch UUID"
// @Success 200 {object} dto.APIResponse{data=dto.MarkBatchPaidResponse} "Batch paid"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Failure 422 {object} dto.APIResponse "Batch is not in draft status"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches/{uuid}/pay [post]
func (h *PayoutHandler) MarkBatchPaid(c fiber.Ctx) error {
	result, err := h.batchFlow.MarkBatchAsPaid(createRequestContext(c), c.Params("uuid"), clientMetadata(c))
	if err != nil {
		if businessflow.IsBatchNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", "BATCH_NOT_FOUND", nil)
		}
		if businessflow.IsBatchNotDraft(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Batch is not in draft status", "BATCH_NOT_DRAFT", nil)
		}
		log.Println("Batch paid-transition failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch paid-transition failed", "BATCH_PAY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Batch paid", result)
}

// CancelBatch cancels a draft batch and reverts its clips
// @Summary Cancel a payout batch
// @Description Cancel a draft batch, reverting its clips to approved
// @Tags Payouts
// @Produce json
// @Param uuid path string true "Batch UUID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchActionResponse} "Batch cancelled"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Failure 422 {object} dto.APIResponse "Batch is not in draft status"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches/{uuid}/cancel [post]
func (h *PayoutHandler) CancelBatch(c fiber.Ctx) error {
	result, err := h.batchFlow.CancelBatch(createRequestContext(c), c.Params("uuid"), clientMetadata(c))
	if err != nil {
		if businessflow.IsBatchNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", "BATCH_NOT_FOUND", nil)
		}
		if businessflow.IsBatchNotDraft(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Batch is not in draft status", "BATCH_NOT_DRAFT", nil)
		}
		log.Println("Batch cancel failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch cancel failed", "BATCH_CANCEL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Batch cancelled", result)
}

// DeleteBatch deletes a draft batch and reverts its clips
// @Summary Delete a payout batch
// @Description Delete a draft batch, reverting its clips to approved
// @Tags Payouts
// @Produce json
// @Param uuid path string true "Batch UUID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchActionResponse} "Batch deleted"
// @Failure 404 {object} dto.APIResponse "Batch not found"
// @Failure 422 {object} dto.APIResponse "Batch is not in draft status"
// @Security BearerAuth
// @Router /api/v1/admin/payout-batches/{uuid} [delete]
func (h *PayoutHandler) DeleteBatch(c fiber.Ctx) error {
	result, err := h.batchFlow.DeleteBatch(createRequestContext(c), c.Params("uuid"), clientMetadata(c))
	if err != nil {
		if businessflow.IsBatchNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Batch not found", "BATCH_NOT_FOUND", nil)
		}
		if businessflow.IsBatchNotDraft(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Batch is not in draft status", "BATCH_NOT_DRAFT", nil)
		}
		log.Println("Batch delete failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Batch delete failed", "BATCH_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Batch deleted", result)
}
