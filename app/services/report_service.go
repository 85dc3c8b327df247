package services

import (
	"context"
	"fmt"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/xuri/excelize/v2"
)

// ReportService builds downloadable exports for admins
type ReportService interface {
	ExportPayoutBatchXLSX(ctx context.Context, batchUUID string) (filename string, content []byte, err error)
}

// ReportServiceImpl implements ReportService
type ReportServiceImpl struct {
	batchRepo  repository.PayoutBatchRepository
	payoutRepo repository.ClipperPayoutRepository
	clipRepo   repository.ClipRepository
}

// NewReportService creates a new report service instance
func NewReportService(
	batchRepo repository.PayoutBatchRepository,
	payoutRepo repository.ClipperPayoutRepository,
	clipRepo repository.ClipRepository,
) ReportService {
	return &ReportServiceImpl{
		batchRepo:  batchRepo,
		payoutRepo: payoutRepo,
		clipRepo:   clipRepo,
	}
}

// ExportPayoutBatchXLSX renders one batch as a workbook with a payouts sheet
// and a clips sheet
func (s *ReportServiceImpl) ExportPayoutBatchXLSX(ctx context.Context, batchUUID string) (string, []byte, error) {
	batch, err := s.batchRepo.ByUUID(ctx, batchUUID)
	if err != nil {
		return "", nil, err
	}
	if batch == nil {
		return "", nil, fmt.Errorf("payout batch %s not found", batchUUID)
	}

	payouts, err := s.payoutRepo.ListByBatch(ctx, batch.ID)
	if err != nil {
		return "", nil, err
	}
	clips, err := s.clipRepo.ListByBatch(ctx, batch.ID)
	if err != nil {
		return "", nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	payoutsSheet := "Payouts"
	if err := xl.SetSheetName(xl.GetSheetName(0), payoutsSheet); err != nil {
		return "", nil, err
	}

	payoutHeaders := []string{"Payout UUID", "Clipper", "Total Views", "Clips", "Amount (USD)", "Bonus (USD)", "Status", "Paid At"}
	for ci, h := range payoutHeaders {
		cellRef, _ := excelize.CoordinatesToCellName(ci+1, 1)
		if err := xl.SetCellValue(payoutsSheet, cellRef, h); err != nil {
			return "", nil, err
		}
	}
	for ri, payout := range payouts {
		paidAt := ""
		if payout.PaidAt != nil {
			paidAt = payout.PaidAt.Format("2006-01-02 15:04:05")
		}
		clipperName := ""
		if payout.Clipper != nil {
			clipperName = payout.Clipper.Name
		}
		values := []any{
			payout.UUID.String(),
			clipperName,
			payout.TotalViews,
			payout.ClipsCount,
			payout.Amount.StringFixed(2),
			payout.BonusAmount.StringFixed(2),
			string(payout.Status),
			paidAt,
		}
		for ci, v := range values {
			cellRef, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := xl.SetCellValue(payoutsSheet, cellRef, v); err != nil {
				return "", nil, err
			}
		}
	}

	clipsSheet := "Clips"
	if _, err := xl.NewSheet(clipsSheet); err != nil {
		return "", nil, err
	}
	clipHeaders := []string{"Clip UUID", "Clipper", "Campaign", "Platform", "URL", "Views", "Payout (USD)", "Status"}
	for ci, h := range clipHeaders {
		cellRef, _ := excelize.CoordinatesToCellName(ci+1, 1)
		if err := xl.SetCellValue(clipsSheet, cellRef, h); err != nil {
			return "", nil, err
		}
	}
	for ri, clip := range clips {
		values := []any{
			clip.UUID.String(),
			clipName(clip.Clipper),
			campaignName(clip.Campaign),
			string(clip.Platform),
			clip.SubmissionURL,
			clip.Views,
			payoutAmount(clip),
			string(clip.Status),
		}
		for ci, v := range values {
			cellRef, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := xl.SetCellValue(clipsSheet, cellRef, v); err != nil {
				return "", nil, err
			}
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("payout_batch_%s_%s.xlsx", batch.PeriodStart.Format("20060102"), batch.PeriodEnd.Format("20060102"))
	return filename, buf.Bytes(), nil
}

func clipName(clipper *models.Clipper) string {
	if clipper == nil {
		return ""
	}
	return clipper.Name
}

func campaignName(campaign *models.Campaign) string {
	if campaign == nil {
		return ""
	}
	return campaign.Name
}

func payoutAmount(clip *models.Clip) string {
	if clip.PayoutAmount == nil {
		return ""
	}
	return clip.PayoutAmount.StringFixed(2)
}
