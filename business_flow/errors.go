// Package businessflow contains the core business logic and use cases for the campaign payout platform
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Admin-related errors
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")

	// Campaign-related errors
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrCampaignNotActive       = errors.New("campaign is not accepting submissions")
	ErrClientNotFound          = errors.New("client not found")
	ErrClientInactive          = errors.New("client is inactive")
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// Clip-related errors
	ErrClipNotFound        = errors.New("clip not found")
	ErrClipNotPending      = errors.New("clip is not pending review")
	ErrDuplicateClipURL    = errors.New("submission URL already submitted")
	ErrClipperNotFound     = errors.New("clipper not found")
	ErrClipperCannotSubmit = errors.New("clipper account cannot submit clips")

	// Payout-related errors
	ErrNoEligibleClips      = errors.New("no eligible clips in period")
	ErrBatchNotFound        = errors.New("payout batch not found")
	ErrBatchNotDraft        = errors.New("payout batch is not in draft status")
	ErrPayoutNotFound       = errors.New("clipper payout not found")
	ErrPayoutAlreadyPaid    = errors.New("clipper payout already paid")
	ErrGenerationInProgress = errors.New("a payout generation is already running")
	ErrInvalidPeriod        = errors.New("period start cannot be after period end")

	// Settings errors
	ErrSettingsCorrupted = errors.New("stored settings value is corrupted")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsCampaignNotFound(err error) bool {
	return errors.Is(err, ErrCampaignNotFound)
}

func IsCampaignNotActive(err error) bool {
	return errors.Is(err, ErrCampaignNotActive)
}

func IsClientNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound)
}

func IsInvalidStatusTransition(err error) bool {
	return errors.Is(err, ErrInvalidStatusTransition)
}

func IsClipNotFound(err error) bool {
	return errors.Is(err, ErrClipNotFound)
}

func IsClipNotPending(err error) bool {
	return errors.Is(err, ErrClipNotPending)
}

func IsDuplicateClipURL(err error) bool {
	return errors.Is(err, ErrDuplicateClipURL)
}

func IsClipperNotFound(err error) bool {
	return errors.Is(err, ErrClipperNotFound)
}

func IsNoEligibleClips(err error) bool {
	return errors.Is(err, ErrNoEligibleClips)
}

func IsBatchNotFound(err error) bool {
	return errors.Is(err, ErrBatchNotFound)
}

func IsBatchNotDraft(err error) bool {
	return errors.Is(err, ErrBatchNotDraft)
}

func IsPayoutAlreadyPaid(err error) bool {
	return errors.Is(err, ErrPayoutAlreadyPaid)
}

func IsGenerationInProgress(err error) bool {
	return errors.Is(err, ErrGenerationInProgress)
}

func IsClientInactive(err error) bool {
	return errors.Is(err, ErrClientInactive)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsClipperCannotSubmit(err error) bool {
	return errors.Is(err, ErrClipperCannotSubmit)
}

func IsPayoutNotFound(err error) bool {
	return errors.Is(err, ErrPayoutNotFound)
}

func IsInvalidPeriod(err error) bool {
	return errors.Is(err, ErrInvalidPeriod)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
