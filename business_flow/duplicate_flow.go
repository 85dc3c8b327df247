package businessflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"gorm.io/gorm"
)

// DuplicateFlow sweeps the clip table for exact submission URL collisions.
// The earliest submission of a URL is canonical; later ones are flagged and
// pointed back at it. Re-running the scan never re-flags or un-flags.
type DuplicateFlow interface {
	ScanForDuplicates(ctx context.Context, metadata *ClientMetadata) (*dto.ScanForDuplicatesResponse, error)
}

// DuplicateFlowImpl implements DuplicateFlow
type DuplicateFlowImpl struct {
	clipRepo  repository.ClipRepository
	auditRepo repository.AuditLogRepository
	db        *gorm.DB
}

// NewDuplicateFlow creates a new duplicate flow instance
func NewDuplicateFlow(
	clipRepo repository.ClipRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) DuplicateFlow {
	return &DuplicateFlowImpl{
		clipRepo:  clipRepo,
		auditRepo: auditRepo,
		db:        db,
	}
}

func (f *DuplicateFlowImpl) ScanForDuplicates(ctx context.Context, metadata *ClientMetadata) (*dto.ScanForDuplicatesResponse, error) {
	clips, err := f.clipRepo.ByFilter(ctx, models.ClipFilter{}, "created_at ASC, id ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("DUPLICATE_SCAN_FAILED", "Failed to load clips", err)
	}

	byURL := make(map[string][]*models.Clip)
	for _, clip := range clips {
		byURL[clip.SubmissionURL] = append(byURL[clip.SubmissionURL], clip)
	}

	flagged := 0
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		for _, group := range byURL {
			if len(group) < 2 {
				continue
			}

			sort.SliceStable(group, func(i, j int) bool {
				if group[i].CreatedAt.Equal(group[j].CreatedAt) {
					return group[i].ID < group[j].ID
				}
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			})

			canonical := group[0]
			for _, clip := range group[1:] {
				if clip.IsDuplicate {
					continue
				}
				if err := f.clipRepo.MarkDuplicate(txCtx, clip.ID, canonical.ID); err != nil {
					return err
				}
				flagged++
			}
		}
		return nil
	})
	if err != nil {
		errMsg := fmt.Sprintf("Duplicate scan failed: %s", err.Error())
		_ = recordAudit(ctx, f.auditRepo, models.AuditActionDuplicateScanRun, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("DUPLICATE_SCAN_FAILED", "Duplicate scan failed", err)
	}

	msg := fmt.Sprintf("Duplicate scan flagged %d clips", flagged)
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionDuplicateScanRun, msg, true, nil, metadata)

	return &dto.ScanForDuplicatesResponse{
		Message:         "Duplicate scan completed",
		DuplicatesFound: flagged,
	}, nil
}
