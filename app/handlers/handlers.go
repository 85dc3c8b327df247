// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"time"

	businessflow "github.com/cliphaus/cliphaus-platform/business_flow"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// Long-running admin operations get wider deadlines than regular requests
const (
	duplicateScanTimeout  = 5 * time.Minute
	metricsRefreshTimeout = 10 * time.Minute
	payoutGenerateTimeout = 5 * time.Minute
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "url":
		return err.Field() + " must be a valid URL"
	case "uuid4":
		return err.Field() + " must be a valid UUID"
	case "datetime":
		return err.Field() + " must be a date in format " + err.Param()
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}

func formatValidationErrors(err error) []string {
	var validationErrors []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		validationErrors = append(validationErrors, getValidationErrorMessage(fieldErr))
	}
	return validationErrors
}

// createRequestContext builds a request-scoped context carrying the values
// the business flows read for audit logging. The admin id local is only set
// on authenticated routes.
func createRequestContext(c fiber.Ctx) context.Context {
	return createRequestContextWithTimeout(c, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	_ = cancel // released when the deadline fires
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	if adminID, ok := c.Locals("admin_id").(uint); ok {
		ctx = context.WithValue(ctx, utils.AdminIDKey, adminID)
	}
	return ctx
}

// clientMetadata captures caller information for audit trails
func clientMetadata(c fiber.Ctx) *businessflow.ClientMetadata {
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		metadata.SetRequestID(requestID)
	}
	return metadata
}
