// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PlatformSettingsHandlerInterface defines the contract for settings handlers
type PlatformSettingsHandlerInterface interface {
	GetSettings(c fiber.Ctx) error
	UpdatePayoutSettings(c fiber.Ctx) error
	UpdateTierSettings(c fiber.Ctx) error
}

// PlatformSettingsHandler implements PlatformSettingsHandlerInterface
type PlatformSettingsHandler struct {
	flow      businessflow.SettingsFlow
	validator *validator.Validate
}

func NewPlatformSettingsHandler(flow businessflow.SettingsFlow) PlatformSettingsHandlerInterface {
	return &PlatformSettingsHandler{
		flow:      flow,
		validator: validator.New(),
	}
}

// ErrorResponse standard JSON error
func (h *PlatformSettingsHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
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
func (h *PlatformSettingsHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// GetSettings returns the payout and tier settings
// @Summary Get platform settings
// @Description Return payout policy and tier rates, with defaults for missing values
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.GetSettingsResponse} "Settings retrieved"
// @Security BearerAuth
// @Router /api/v1/admin/settings [get]
func (h *PlatformSettingsHandler) GetSettings(c fiber.Ctx) error {
	result, err := h.flow.GetSettings(createRequestContext(c))
	if err != nil {
		log.Println("Settings lookup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Settings lookup failed", "SETTINGS_LOOKUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Settings retrieved", result)
}

// UpdatePayoutSettings overwrites the payout policy
// @Summary Update payout settings
// @Description Overwrite the minimum views, bonus threshold, and bonus multiplier
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdatePayoutSettingsRequest true "Payout policy"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateSettingsResponse} "Settings updated"
// @Failure 400 {object} dto.APIResponse "Invalid settings"
// @Security BearerAuth
// @Router /api/v1/admin/settings/payout [put]
func (h *PlatformSettingsHandler) UpdatePayoutSettings(c fiber.Ctx) error {
	var req dto.UpdatePayoutSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.flow.UpdatePayoutSettings(createRequestContext(c), &req, clientMetadata(c))
	if err != nil {
		log.Println("Payout settings update failed", err)
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Payout settings update failed", "SETTINGS_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Settings updated", result)
}

// UpdateTierSettings overwrites the platform tier rates
// @Summary Update tier settings
// @Description Overwrite the per-tier payout rates
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateTierSettingsRequest true "Tier rates"
// @Success 200 {object} dto.APIResponse{data=dto.UpdateSettingsResponse} "Settings updated"
// @Failure 400 {object} dto.APIResponse "Invalid settings"
// @Security BearerAuth
// @Router /api/v1/admin/settings/tiers [put]
func (h *PlatformSettingsHandler) UpdateTierSettings(c fiber.Ctx) error {
	var req dto.UpdateTierSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.flow.UpdateTierSettings(createRequestContext(c), &req, clientMetadata(c))
	if err != nil {
		log.Println("Tier settings update failed", err)
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tier settings update failed", "SETTINGS_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Settings updated", result)
}
