// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// ClientHandlerInterface defines the contract for client and clipper handlers
type ClientHandlerInterface interface {
	CreateClient(c fiber.Ctx) error
	ListClients(c fiber.Ctx) error
	ListClippers(c fiber.Ctx) error
	UpdateClipperTier(c fiber.Ctx) error
}

// ClientHandler implements ClientHandlerInterface
type ClientHandler struct {
	clientFlow  businessflow.ClientFlow
	clipperFlow businessflow.ClipperFlow
	validator   *validator.Validate
}

func NewClientHandler(clientFlow businessflow.ClientFlow, clipperFlow businessflow.ClipperFlow) ClientHandlerInterface {
	return &ClientHandler{
		clientFlow:  clientFlow,
		clipperFlow: clipperFlow,
		validator:   validator.New(),
	}
}

// ErrorResponse standard JSON error
func (h *ClientHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
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
func (h *ClientHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreateClient registers a brand client
// @Summary Create a client
// @Description Register a brand client that commissions campaigns
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body dto.CreateClientRequest true "Client data"
// @Success 201 {object} dto.APIResponse{data=dto.ClientResponse} "Client created"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Security BearerAuth
// @Router /api/v1/admin/clients [post]
func (h *ClientHandler) CreateClient(c fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.clientFlow.CreateClient(createRequestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A client with this email already exists", "EMAIL_EXISTS", nil)
		}
		log.Println("Client creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client creation failed", "CLIENT_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Client created", result)
}

// ListClients returns a page of clients
// @Summary List clients
// @Description List brand clients newest first
// @Tags Clients
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListClientsResponse} "Clients retrieved"
// @Security BearerAuth
// @Router /api/v1/admin/clients [get]
func (h *ClientHandler) ListClients(c fiber.Ctx) error {
	result, err := h.clientFlow.ListClients(createRequestContext(c), queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}
		log.Println("Client listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client listing failed", "CLIENT_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Clients retrieved", result)
}

// ListClippers returns a page of clipper profiles
// @Summary List clippers
// @Description List clipper profiles, optionally filtered by tier
// @Tags Clippers
// @Produce json
// @Param tier query string false "Clipper tier" Enums(entry, approved, core)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListClippersResponse} "Clippers retrieved"
// @Security BearerAuth
// @Router /api/v1/admin/clippers [get]
func (h *ClientHandler) ListClippers(c fiber.Ctx) error {
	var tier *string
	if v := c.Query("tier"); v != "" {
		tier = &v
	}

	result, err := h.clipperFlow.ListClippers(createRequestContext(c), tier, queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid pagination", "INVALID_PAGINATION", nil)
		}
		log.Println("Clipper listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Clipper listing failed", "CLIPPER_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Clippers retrieved", result)
}

// UpdateClipperTier promotes or demotes a clipper
// @Summary Update a clipper's tier
// @Description Move a clipper between the entry, approved, and core tiers
// @Tags Clippers
// @Accept json
// @Produce json
// @Param request body dto.UpdateClipperTierRequest true "Tier assignment"
// @Success 200 {object} dto.APIResponse{data=dto.ClipperResponse} "Tier updated"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 404 {object} dto.APIResponse "Clipper not found"
// @Security BearerAuth
// @Router /api/v1/admin/clippers/tier [put]
func (h *ClientHandler) UpdateClipperTier(c fiber.Ctx) error {
	var req dto.UpdateClipperTierRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", formatValidationErrors(err))
	}

	result, err := h.clipperFlow.UpdateClipperTier(createRequestContext(c), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsClipperNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Clipper not found", "CLIPPER_NOT_FOUND", nil)
		}
		log.Println("Clipper tier update failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Clipper tier update failed", "CLIPPER_TIER_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tier updated", result)
}
