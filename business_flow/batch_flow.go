package businessflow

import (
	"context"
	"fmt"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
	"gorm.io/gorm"
)

// BatchFlow drives the payout batch lifecycle after generation.
//
// Earnings are credited exactly once per payout: the paid-transition is a
// conditional update guarded on pending status, and the earnings increment
// only happens when that update wins.
type BatchFlow interface {
	MarkPayoutAsPaid(ctx context.Context, payoutUUID string, metadata *ClientMetadata) (*dto.MarkPayoutPaidResponse, error)
	MarkBatchAsPaid(ctx context.Context, batchUUID string, metadata *ClientMetadata) (*dto.MarkBatchPaidResponse, error)
	CancelBatch(ctx context.Context, batchUUID string, metadata *ClientMetadata) (*dto.BatchActionResponse, error)
	DeleteBatch(ctx context.Context, batchUUID string, metadata *ClientMetadata) (*dto.BatchActionResponse, error)
}

// BatchFlowImpl implements the batch lifecycle business flow
type BatchFlowImpl struct {
	clipRepo    repository.ClipRepository
	clipperRepo repository.ClipperRepository
	batchRepo   repository.PayoutBatchRepository
	payoutRepo  repository.ClipperPayoutRepository
	auditRepo   repository.AuditLogRepository
	db          *gorm.DB
}

// NewBatchFlow creates a new batch lifecycle flow instance
func NewBatchFlow(
	clipRepo repository.ClipRepository,
	clipperRepo repository.ClipperRepository,
	batchRepo repository.PayoutBatchRepository,
	payoutRepo repository.ClipperPayoutRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) BatchFlow {
	return &BatchFlowImpl{
		clipRepo:    clipRepo,
		clipperRepo: clipperRepo,
		batchRepo:   batchRepo,
		payoutRepo:  payoutRepo,
		auditRepo:   auditRepo,
		db:          db,
	}
}

func (f *BatchFlowImpl) MarkPayoutAsPaid(ctx context.Context, payoutUUID string, metadata *ClientMetadata) (*dto.MarkPayoutPaidResponse, error) {
	parsedUUID, err := utils.ParseUUID(payoutUUID)
	if err != nil {
		return nil, NewBusinessError("INVALID_REQUEST", "payout UUID is invalid", err)
	}

	payouts, err := f.payoutRepo.ByFilter(ctx, models.ClipperPayoutFilter{UUID: &parsedUUID}, "", 0, 0)
	if err != nil {
		return nil, NewBusinessError("PAYOUT_LOOKUP_FAILED", "Failed to lookup payout", err)
	}
	if len(payouts) == 0 {
		return nil, NewBusinessError("PAYOUT_NOT_FOUND", "Clipper payout not found", ErrPayoutNotFound)
	}
	payout := payouts[0]

	var won bool
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var err error
		won, err = f.creditPayout(txCtx, payout)
		return err
	})
	if err != nil {
		errMsg := fmt.Sprintf("Payout paid-transition failed for %s: %s", payout.UUID.String(), err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionPayoutMarkedPaid, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("PAYOUT_MARK_PAID_FAILED", "Failed to mark payout as paid", err)
	}

	if !won {
		return &dto.MarkPayoutPaidResponse{
			Message:     "Payout was already paid",
			UUID:        payout.UUID.String(),
			Status:      string(models.ClipperPayoutStatusPaid),
			AlreadyPaid: true,
		}, nil
	}

	msg := fmt.Sprintf("Payout marked paid: %s, amount %s", payout.UUID.String(), payout.Amount.StringFixed(2))
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionPayoutMarkedPaid, msg, true, nil, metadata)

	return &dto.MarkPayoutPaidResponse{
		Message:       "Payout marked as paid",
		UUID:          payout.UUID.String(),
		Status:        string(models.ClipperPayoutStatusPaid),
		CreditedTotal: payout.Amount.StringFixed(2),
	}, nil
}

// creditPayout performs the conditional paid-transition and, when it wins,
// credits the clipper's lifetime earnings
func (f *BatchFlowImpl) creditPayout(ctx context.Context, payout *models.ClipperPayout) (bool, error) {
	won, err := f.payoutRepo.MarkPaidIfPending(ctx, payout.ID, utils.UTCNow())
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}

	if err := f.clipperRepo.IncrementEarnings(ctx, payout.ClipperID, payout.Amount); err != nil {
		return false, err
	}

	return true, nil
}

func (f *BatchFlowImpl) MarkBatchAsPaid(ctx context.Context, batchUUID string, metadata *ClientMetadata) (*dto.MarkBatchPaidResponse, error) {
	batch, err := f.batchRepo.ByUUID(ctx, batchUUID)
	if err != nil {
		return nil, NewBusinessError("BATCH_LOOKUP_FAILED", "Failed to lookup batch", err)
	}
	if batch == nil {
		return nil, NewBusinessError("BATCH_NOT_FOUND", "Payout batch not found", ErrBatchNotFound)
	}
	if batch.Status == models.PayoutBatchStatusCompleted {
		return &dto.MarkBatchPaidResponse{
			Message:     "Payout batch was already paid",
			UUID:        batch.UUID.String(),
			Status:      string(models.PayoutBatchStatusCompleted),
			AlreadyPaid: true,
		}, nil
	}

	// A batch left in processing by a failed cascade is resumable; the
	// per-payout paid-transition is conditional so re-running is safe
	resuming := batch.Status == models.PayoutBatchStatusProcessing
	if !resuming && !batch.CanTransitionTo(models.PayoutBatchStatusProcessing) {
		return nil, NewBusinessError("BATCH_NOT_DRAFT", "Payout batch is not in draft status", ErrBatchNotDraft)
	}

	if !resuming {
		// Visible processing commit first, so a crash mid-cascade leaves an
		// inspectable state instead of a silent half-paid draft
		if err := f.batchRepo.UpdateStatus(ctx, batch.ID, models.PayoutBatchStatusProcessing); err != nil {
			return nil, NewBusinessError("BATCH_MARK_PAID_FAILED", "Failed to start batch payment", err)
		}
	}

	paidCount := 0
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		pending, err := f.payoutRepo.ListPendingByBatch(txCtx, batch.ID)
		if err != nil {
			return err
		}

		for _, payout := range pending {
			won, err := f.creditPayout(txCtx, payout)
			if err != nil {
				return err
			}
			if won {
				paidCount++
			}
		}

		now := utils.UTCNow()
		batch.Status = models.PayoutBatchStatusCompleted
		batch.ProcessedBy = adminIDFromContext(txCtx)
		batch.ProcessedAt = &now
		return f.batchRepo.Update(txCtx, *batch)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Batch paid-transition failed for %s: %s", batch.UUID.String(), err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionBatchMarkedPaid, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("BATCH_MARK_PAID_FAILED", "Failed to mark batch as paid", err)
	}

	msg := fmt.Sprintf("Batch marked paid: %s, %d payouts credited", batch.UUID.String(), paidCount)
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionBatchMarkedPaid, msg, true, nil, metadata)

	return &dto.MarkBatchPaidResponse{
		Message:     "Payout batch marked as paid",
		UUID:        batch.UUID.String(),
		Status:      string(models.PayoutBatchStatusCompleted),
		PayoutsPaid: paidCount,
	}, nil
}

func (f *BatchFlowImpl) CancelBatch(ctx context.Context, batchUUID string, metadata *ClientMetadata) (*dto.BatchActionResponse, error) {
	batch, err := f.batchRepo.ByUUID(ctx, batchUUID)
	if err != nil {
		return nil, NewBusinessError("BATCH_LOOKUP_FAILED", "Failed to lookup batch", err)
	}
	if batch == nil {
		return nil, NewBusinessError("BATCH_NOT_FOUND", "Payout batch not found", ErrBatchNotFound)
	}
	if !batch.IsDeletable() {
		return nil, NewBusinessError("BATCH_NOT_DRAFT", "Only draft batches can be cancelled", ErrBatchNotDraft)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clipRepo.RevertBatchClips(txCtx, batch.ID); err != nil {
			return err
		}
		if err := f.payoutRepo.DeleteByBatch(txCtx, batch.ID); err != nil {
			return err
		}
		return f.batchRepo.UpdateStatus(txCtx, batch.ID, models.PayoutBatchStatusCancelled)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Batch cancellation failed for %s: %s", batch.UUID.String(), err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionBatchCancelled, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("BATCH_CANCEL_FAILED", "Failed to cancel batch", err)
	}

	msg := fmt.Sprintf("Batch cancelled: %s", batch.UUID.String())
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionBatchCancelled, msg, true, nil, metadata)

	return &dto.BatchActionResponse{
		Message: "Payout batch cancelled",
		UUID:    batch.UUID.String(),
		Status:  string(models.PayoutBatchStatusCancelled),
	}, nil
}

func (f *BatchFlowImpl) DeleteBatch(ctx context.Context, batchUUID string, metadata *ClientMetadata) (*dto.BatchActionResponse, error) {
	batch, err := f.batchRepo.ByUUID(ctx, batchUUID)
	if err != nil {
		return nil, NewBusinessError("BATCH_LOOKUP_FAILED", "Failed to lookup batch", err)
	}
	if batch == nil {
		return nil, NewBusinessError("BATCH_NOT_FOUND", "Payout batch not found", ErrBatchNotFound)
	}
	if !batch.IsDeletable() {
		return nil, NewBusinessError("BATCH_NOT_DRAFT", "Only draft batches can be deleted", ErrBatchNotDraft)
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clipRepo.RevertBatchClips(txCtx, batch.ID); err != nil {
			return err
		}
		if err := f.payoutRepo.DeleteByBatch(txCtx, batch.ID); err != nil {
			return err
		}
		return f.batchRepo.Delete(txCtx, batch.ID)
	})
	if err != nil {
		errMsg := fmt.Sprintf("Batch deletion failed for %s: %s", batch.UUID.String(), err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionBatchDeleted, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("BATCH_DELETE_FAILED", "Failed to delete batch", err)
	}

	msg := fmt.Sprintf("Batch deleted: %s", batch.UUID.String())
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionBatchDeleted, msg, true, nil, metadata)

	return &dto.BatchActionResponse{
		Message: "Payout batch deleted",
		UUID:    batch.UUID.String(),
	}, nil
}
