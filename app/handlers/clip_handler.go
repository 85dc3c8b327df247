// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/app/middleware"
	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ClipHandlerInterface defines the contract for clip handlers
type ClipHandlerInterface interface {
	SubmitClip(c fiber.Ctx) error
	CheckDuplicateURL(c fiber.Ctx) error
	ReviewClip(c fiber.Ctx) error
	ListClips(c fiber.Ctx) error
	ScanForDuplicates(c fiber.Ctx) error
	RefreshMetrics(c fiber.Ctx) error
}

// ClipHandler implements ClipHandlerInterface
type ClipHandler struct {
	clipFlow      businessflow.ClipFlow
	duplicateFlow businessflow.DuplicateFlow
	metricsFlow   businessflow.MetricsRefreshFlow
	validator     *validator.Validate
}

func NewClipHandler(
	clipFlow businessflow.ClipFlow,
	duplicateFlow businessflow.DuplicateFlow,
	metricsFlow businessflow.MetricsRefreshFlow,
) ClipHandlerInterface {
	return &ClipHandler{
		clipFlow:      clipFlow,
		duplicateFlow: duplicateFlow,
		metricsFlow:   metricsFlow,
		validator:     validator.New(),
	}
}

// ErrorResponse standard JSON error
func (h *ClipHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
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
func (h *ClipHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SubmitClip accepts a clip submission against an active campaign
// @Summary Submit a clip
// @Description Submit a published clip URL for review under an active campaign
// @Tags Clips
// @Accept json
// @Produce json
// @Param request body dto.SubmitClipRequest true "Clip submission"
// @Success 201 {object} dto.APIResponse{data=dto.SubmitClipResponse} "Clip submitted"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 404 {object} dto.APIResponse "Campaign or clipper not found"
// @Failure 409 {object} dto.APIResponse "URL already submitted"
// @Failure 422 {object} dto.APIResponse "Campaign not accepting submissions"
// @Router /api/v1/clips [post]
func (h *ClipHandler) SubmitClip(c fiber.Ctx) error {
	var req dto.SubmitClipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.clipFlow.SubmitClip(createRequestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}
		if businessflow.IsClipperNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Clipper not found", "CLIPPER_NOT_FOUND", nil)
		}
		if businessflow.IsCampaignNotActive(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Campaign is not accepting submissions", "CAMPAIGN_NOT_ACTIVE", nil)
		}
		if businessflow.IsClipperCannotSubmit(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Clipper account cannot submit clips", "CLIPPER_CANNOT_SUBMIT", nil)
		}
		if businessflow.IsDuplicateClipURL(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "This URL was already submitted", "DUPLICATE_URL", nil)
		}
		log.Println("Clip submission failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Clip submission failed", "CLIP_SUBMISSION_FAILED", nil)
	}

	middleware.ClipsSubmitted.WithLabelValues(req.Platform).Inc()

	return h.SuccessResponse(c, fiber.StatusCreated, "Clip submitted", result)
}

// CheckDuplicateURL reports whether a URL was already submitted
// @Summary Check a submission URL
// @Description Report whether a URL was already submitted and by whom
// @Tags Clips
// @Accept json
// @Produce json
// @Param request body dto.CheckDuplicateURLRequest true "Submission URL"
// @Success 200 {object} dto.APIResponse{data=dto.CheckDuplicateURLResponse} "Check completed"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Router /api/v1/clips/check-duplicate [post]
func (h *ClipHandler) CheckDuplicateURL(c fiber.Ctx) error {
	var req dto.CheckDuplicateURLRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.clipFlow.CheckDuplicateURL(createRequestContext(c), req.SubmissionURL)
	if err != nil {
		log.Println("Duplicate URL check failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Duplicate check failed", "DUPLICATE_CHECK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Check completed", result)
}

// ReviewClip records an admin approve/reject decision on a pending clip
// @Summary Review a clip
// @Description Approve or reject a pending clip submission
// @Tags Clips
// @Accept json
// @Produce json
// @Param request body dto.ReviewClipRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewClipResponse} "Review recorded"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 404 {object} dto.APIResponse "Clip not found"
// @Failure 422 {object} dto.APIResponse "Clip is not pending review"
// @Security BearerAuth
// @Router /api/v1/admin/clips/review [post]
func (h *ClipHandler) ReviewClip(c fiber.Ctx) error {
	var req dto.ReviewClipRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.clipFlow.ReviewClip(createRequestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsClipNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Clip not found", "CLIP_NOT_FOUND", nil)
		}
		if businessflow.IsClipNotPending(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Clip is not pending review", "CLIP_NOT_PENDING", nil)
		}
		log.Println("Clip review failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Clip review failed", "CLIP_REVIEW_FAILED", nil)
	}

	decision := "rejected"
	if req.Approve {
		decision = "approved"
	}
	middleware.ClipsReviewed.WithLabelValues(decision).Inc()

	return h.SuccessResponse(c, fiber.StatusOK, "Review recorded", result)
}

// ListClips returns a filtered page of clips
// @Summary List clips
// @Description List clips filtered by status, campaign, clipper, and date range
// @Tags Clips
// @Produce json
// @Param status query string false "Clip status" Enums(pending, approved, rejected, paid)
// @Param campaign_uuid query string false "Campaign UUID"
// @Param clipper_uuid query string false "Clipper UUID"
// @Param start_date query string false "Creation date lower bound (2006-01-02)"
// @Param end_date query string false "Creation date upper bound (2006-01-02)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListClipsResponse} "Clips retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid filters"
// @Security BearerAuth
// @Router /api/v1/admin/clips [get]
func (h *ClipHandler) ListClips(c fiber.Ctx) error {
	req := dto.ListClipsRequest{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if v := c.Query("campaign_uuid"); v != "" {
		req.CampaignUUID = &v
	}
	if v := c.Query("clipper_uuid"); v != "" {
		req.ClipperUUID = &v
	}
	if v := c.Query("start_date"); v != "" {
		req.StartDate = &v
	}
	if v := c.Query("end_date"); v != "" {
		req.EndDate = &v
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.clipFlow.ListClips(createRequestContext(c), &req)
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}
		log.Println("Clip listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Clip listing failed", "CLIP_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Clips retrieved", result)
}

// ScanForDuplicates flags repeat submissions of the same URL
// @Summary Scan for duplicate clips
// @Description Flag every clip that repeats an earlier submission URL
// @Tags Clips
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ScanForDuplicatesResponse} "Scan completed"
// @Failure 500 {object} dto.APIResponse "Scan failed"
// @Security BearerAuth
// @Router /api/v1/admin/clips/scan-duplicates [post]
func (h *ClipHandler) ScanForDuplicates(c fiber.Ctx) error {
	result, err := h.duplicateFlow.ScanForDuplicates(createRequestContextWithTimeout(c, duplicateScanTimeout), clientMetadata(c))
	if err != nil {
		log.Println("Duplicate scan failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Duplicate scan failed", "DUPLICATE_SCAN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Scan completed", result)
}

// RefreshMetrics re-fetches engagement counters for stale clips
// @Summary Refresh clip metrics
// @Description Fetch fresh engagement metrics for stale clips of active campaigns
// @Tags Clips
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.RefreshMetricsResponse} "Refresh completed"
// @Failure 500 {object} dto.APIResponse "Refresh failed"
// @Security BearerAuth
// @Router /api/v1/admin/clips/refresh-metrics [post]
func (h *ClipHandler) RefreshMetrics(c fiber.Ctx) error {
	result, err := h.metricsFlow.RefreshStaleMetrics(createRequestContextWithTimeout(c, metricsRefreshTimeout), clientMetadata(c))
	if err != nil {
		log.Println("Metrics refresh failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Metrics refresh failed", "METRICS_REFRESH_FAILED", nil)
	}

	middleware.MetricsRefreshRuns.WithLabelValues("api").Inc()

	return h.SuccessResponse(c, fiber.StatusOK, "Refresh completed", result)
}

func queryInt(c fiber.Ctx, key string, defaultValue int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
