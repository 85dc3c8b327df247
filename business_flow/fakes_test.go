package businessflow

import (
	"context"
	"sort"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes backing the flow tests. Only the methods the
// flows under test exercise carry real semantics.

type fakeClipRepo struct {
	clips  []*models.Clip
	nextID uint
}

func newFakeClipRepo(clips ...*models.Clip) *fakeClipRepo {
	repo := &fakeClipRepo{nextID: 1}
	for _, clip := range clips {
		if clip.ID >= repo.nextID {
			repo.nextID = clip.ID + 1
		}
		repo.clips = append(repo.clips, clip)
	}
	return repo
}

func (r *fakeClipRepo) byID(id uint) *models.Clip {
	for _, clip := range r.clips {
		if clip.ID == id {
			return clip
		}
	}
	return nil
}

func (r *fakeClipRepo) ByID(ctx context.Context, id uint) (*models.Clip, error) {
	return r.byID(id), nil
}

func (r *fakeClipRepo) ByFilter(ctx context.Context, filter models.ClipFilter, orderBy string, limit, offset int) ([]*models.Clip, error) {
	matched := make([]*models.Clip, 0)
	for _, clip := range r.clips {
		if filter.Status != nil && clip.Status != *filter.Status {
			continue
		}
		if filter.SubmissionURL != nil && clip.SubmissionURL != *filter.SubmissionURL {
			continue
		}
		if filter.IsDuplicate != nil && clip.IsDuplicate != *filter.IsDuplicate {
			continue
		}
		if filter.CreatedAtOrAfter != nil && clip.CreatedAt.Before(*filter.CreatedAtOrAfter) {
			continue
		}
		if filter.CreatedAtOrBefore != nil && clip.CreatedAt.After(*filter.CreatedAtOrBefore) {
			continue
		}
		matched = append(matched, clip)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(matched) {
			return nil, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeClipRepo) Save(ctx context.Context, clip *models.Clip) error {
	if clip.ID == 0 {
		clip.ID = r.nextID
		r.nextID++
	}
	r.clips = append(r.clips, clip)
	return nil
}

func (r *fakeClipRepo) SaveBatch(ctx context.Context, clips []*models.Clip) error {
	for _, clip := range clips {
		if err := r.Save(ctx, clip); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeClipRepo) Count(ctx context.Context, filter models.ClipFilter) (int64, error) {
	matched, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (r *fakeClipRepo) Exists(ctx context.Context, filter models.ClipFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	return count > 0, err
}

func (r *fakeClipRepo) ByUUID(ctx context.Context, uuid string) (*models.Clip, error) {
	for _, clip := range r.clips {
		if clip.UUID.String() == uuid {
			return clip, nil
		}
	}
	return nil, nil
}

func (r *fakeClipRepo) BySubmissionURL(ctx context.Context, url string) (*models.Clip, error) {
	matched, err := r.ByFilter(ctx, models.ClipFilter{SubmissionURL: &url}, "", 1, 0)
	if err != nil || len(matched) == 0 {
		return nil, err
	}
	return matched[0], nil
}

func (r *fakeClipRepo) ListApprovedInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]*models.Clip, error) {
	status := models.ClipStatusApproved
	return r.ByFilter(ctx, models.ClipFilter{
		Status:            &status,
		CreatedAtOrAfter:  &periodStart,
		CreatedAtOrBefore: &periodEnd,
	}, "", 0, 0)
}

func (r *fakeClipRepo) ListStaleForActiveCampaigns(ctx context.Context, staleBefore time.Time) ([]*models.Clip, error) {
	matched := make([]*models.Clip, 0)
	for _, clip := range r.clips {
		if clip.Campaign == nil || clip.Campaign.Status != models.CampaignStatusActive {
			continue
		}
		if clip.ExternalPostID == nil {
			continue
		}
		if clip.Status != models.ClipStatusPending && clip.Status != models.ClipStatusApproved {
			continue
		}
		if clip.MetricsUpdatedAt != nil && !clip.MetricsUpdatedAt.Before(staleBefore) {
			continue
		}
		matched = append(matched, clip)
	}
	return matched, nil
}

func (r *fakeClipRepo) ListByBatch(ctx context.Context, batchID uint) ([]*models.Clip, error) {
	matched := make([]*models.Clip, 0)
	for _, clip := range r.clips {
		if clip.PayoutBatchID != nil && *clip.PayoutBatchID == batchID {
			matched = append(matched, clip)
		}
	}
	return matched, nil
}

func (r *fakeClipRepo) Update(ctx context.Context, clip models.Clip) error {
	existing := r.byID(clip.ID)
	if existing != nil {
		*existing = clip
	}
	return nil
}

func (r *fakeClipRepo) UpdateStatus(ctx context.Context, id uint, status models.ClipStatus) error {
	if clip := r.byID(id); clip != nil {
		clip.Status = status
	}
	return nil
}

func (r *fakeClipRepo) MarkPaid(ctx context.Context, id uint, amount decimal.Decimal, batchID uint) error {
	if clip := r.byID(id); clip != nil {
		clip.PayoutAmount = &amount
		clip.PayoutBatchID = &batchID
		clip.Status = models.ClipStatusPaid
	}
	return nil
}

func (r *fakeClipRepo) MarkDuplicate(ctx context.Context, id uint, originalID uint) error {
	if clip := r.byID(id); clip != nil {
		clip.IsDuplicate = true
		clip.DuplicateOfClipID = &originalID
	}
	return nil
}

func (r *fakeClipRepo) UpdateMetrics(ctx context.Context, id uint, m repository.ClipMetricsUpdate) error {
	if clip := r.byID(id); clip != nil {
		clip.Views = m.Views
		clip.Likes = m.Likes
		clip.Comments = m.Comments
		clip.Shares = m.Shares
		clip.Retweets = m.Retweets
		clip.Impressions = m.Impressions
		clip.TagsFound = pq.StringArray(m.TagsFound)
		clip.TagsMissing = pq.StringArray(m.TagsMissing)
		updatedAt := m.UpdatedAt
		clip.MetricsUpdatedAt = &updatedAt
	}
	return nil
}

func (r *fakeClipRepo) RevertBatchClips(ctx context.Context, batchID uint) error {
	for _, clip := range r.clips {
		if clip.PayoutBatchID != nil && *clip.PayoutBatchID == batchID {
			clip.PayoutAmount = nil
			clip.PayoutBatchID = nil
			clip.Status = models.ClipStatusApproved
		}
	}
	return nil
}

type fakeClipperRepo struct {
	clippers map[uint]*models.Clipper
}

func newFakeClipperRepo(clippers ...*models.Clipper) *fakeClipperRepo {
	repo := &fakeClipperRepo{clippers: make(map[uint]*models.Clipper)}
	for _, clipper := range clippers {
		repo.clippers[clipper.ID] = clipper
	}
	return repo
}

func (r *fakeClipperRepo) ByID(ctx context.Context, id uint) (*models.Clipper, error) {
	return r.clippers[id], nil
}

func (r *fakeClipperRepo) ByFilter(ctx context.Context, filter models.ClipperFilter, orderBy string, limit, offset int) ([]*models.Clipper, error) {
	matched := make([]*models.Clipper, 0)
	for _, clipper := range r.clippers {
		if filter.Tier != nil && clipper.Tier != *filter.Tier {
			continue
		}
		if filter.Email != nil && clipper.Email != *filter.Email {
			continue
		}
		matched = append(matched, clipper)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeClipperRepo) Save(ctx context.Context, clipper *models.Clipper) error {
	r.clippers[clipper.ID] = clipper
	return nil
}

func (r *fakeClipperRepo) SaveBatch(ctx context.Context, clippers []*models.Clipper) error {
	for _, clipper := range clippers {
		r.clippers[clipper.ID] = clipper
	}
	return nil
}

func (r *fakeClipperRepo) Count(ctx context.Context, filter models.ClipperFilter) (int64, error) {
	matched, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(matched)), nil
}

func (r *fakeClipperRepo) Exists(ctx context.Context, filter models.ClipperFilter) (bool, error) {
	count, _ := r.Count(ctx, filter)
	return count > 0, nil
}

func (r *fakeClipperRepo) ByUUID(ctx context.Context, uuid string) (*models.Clipper, error) {
	for _, clipper := range r.clippers {
		if clipper.UUID.String() == uuid {
			return clipper, nil
		}
	}
	return nil, nil
}

func (r *fakeClipperRepo) ByEmail(ctx context.Context, email string) (*models.Clipper, error) {
	for _, clipper := range r.clippers {
		if clipper.Email == email {
			return clipper, nil
		}
	}
	return nil, nil
}

func (r *fakeClipperRepo) Update(ctx context.Context, clipper models.Clipper) error {
	if existing, ok := r.clippers[clipper.ID]; ok {
		*existing = clipper
	}
	return nil
}

func (r *fakeClipperRepo) UpdateTier(ctx context.Context, id uint, tier models.ClipperTier) error {
	if clipper, ok := r.clippers[id]; ok {
		clipper.Tier = tier
	}
	return nil
}

func (r *fakeClipperRepo) IncrementEarnings(ctx context.Context, id uint, amount decimal.Decimal) error {
	if clipper, ok := r.clippers[id]; ok {
		clipper.TotalEarnings = clipper.TotalEarnings.Add(amount)
	}
	return nil
}

func (r *fakeClipperRepo) IncrementCounters(ctx context.Context, id uint, submitted, approved int) error {
	if clipper, ok := r.clippers[id]; ok {
		clipper.SubmittedClips += submitted
		clipper.ApprovedClips += approved
	}
	return nil
}

type fakeBatchRepo struct {
	batches []*models.PayoutBatch
	nextID  uint
}

func newFakeBatchRepo(batches ...*models.PayoutBatch) *fakeBatchRepo {
	repo := &fakeBatchRepo{nextID: 1}
	for _, batch := range batches {
		if batch.ID >= repo.nextID {
			repo.nextID = batch.ID + 1
		}
		repo.batches = append(repo.batches, batch)
	}
	return repo
}

func (r *fakeBatchRepo) byID(id uint) *models.PayoutBatch {
	for _, batch := range r.batches {
		if batch.ID == id {
			return batch
		}
	}
	return nil
}

func (r *fakeBatchRepo) ByID(ctx context.Context, id uint) (*models.PayoutBatch, error) {
	return r.byID(id), nil
}

func (r *fakeBatchRepo) ByFilter(ctx context.Context, filter models.PayoutBatchFilter, orderBy string, limit, offset int) ([]*models.PayoutBatch, error) {
	matched := make([]*models.PayoutBatch, 0)
	for _, batch := range r.batches {
		if filter.Status != nil && batch.Status != *filter.Status {
			continue
		}
		matched = append(matched, batch)
	}
	if offset > 0 {
		if offset >= len(matched) {
			return nil, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeBatchRepo) Save(ctx context.Context, batch *models.PayoutBatch) error {
	if batch.ID == 0 {
		batch.ID = r.nextID
		r.nextID++
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}
	r.batches = append(r.batches, batch)
	return nil
}

func (r *fakeBatchRepo) SaveBatch(ctx context.Context, batches []*models.PayoutBatch) error {
	for _, batch := range batches {
		if err := r.Save(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeBatchRepo) Count(ctx context.Context, filter models.PayoutBatchFilter) (int64, error) {
	matched, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(matched)), nil
}

func (r *fakeBatchRepo) Exists(ctx context.Context, filter models.PayoutBatchFilter) (bool, error) {
	count, _ := r.Count(ctx, filter)
	return count > 0, nil
}

func (r *fakeBatchRepo) ByUUID(ctx context.Context, uuid string) (*models.PayoutBatch, error) {
	for _, batch := range r.batches {
		if batch.UUID.String() == uuid {
			return batch, nil
		}
	}
	return nil, nil
}

func (r *fakeBatchRepo) Update(ctx context.Context, batch models.PayoutBatch) error {
	if existing := r.byID(batch.ID); existing != nil {
		*existing = batch
	}
	return nil
}

func (r *fakeBatchRepo) UpdateStatus(ctx context.Context, id uint, status models.PayoutBatchStatus) error {
	if batch := r.byID(id); batch != nil {
		batch.Status = status
	}
	return nil
}

func (r *fakeBatchRepo) UpdateTotals(ctx context.Context, id uint, totalAmount decimal.Decimal, clipsCount int) error {
	if batch := r.byID(id); batch != nil {
		batch.TotalAmount = totalAmount
		batch.ClipsCount = clipsCount
	}
	return nil
}

func (r *fakeBatchRepo) Delete(ctx context.Context, id uint) error {
	for i, batch := range r.batches {
		if batch.ID == id {
			r.batches = append(r.batches[:i], r.batches[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePayoutRepo struct {
	payouts []*models.ClipperPayout
	nextID  uint

	// When set, MarkPaidIfPending fails with this error
	markPaidErr error
}

func newFakePayoutRepo(payouts ...*models.ClipperPayout) *fakePayoutRepo {
	repo := &fakePayoutRepo{nextID: 1}
	for _, payout := range payouts {
		if payout.ID >= repo.nextID {
			repo.nextID = payout.ID + 1
		}
		repo.payouts = append(repo.payouts, payout)
	}
	return repo
}

func (r *fakePayoutRepo) byID(id uint) *models.ClipperPayout {
	for _, payout := range r.payouts {
		if payout.ID == id {
			return payout
		}
	}
	return nil
}

func (r *fakePayoutRepo) ByID(ctx context.Context, id uint) (*models.ClipperPayout, error) {
	return r.byID(id), nil
}

func (r *fakePayoutRepo) ByFilter(ctx context.Context, filter models.ClipperPayoutFilter, orderBy string, limit, offset int) ([]*models.ClipperPayout, error) {
	matched := make([]*models.ClipperPayout, 0)
	for _, payout := range r.payouts {
		if filter.UUID != nil && payout.UUID != *filter.UUID {
			continue
		}
		if filter.PayoutBatchID != nil && payout.PayoutBatchID != *filter.PayoutBatchID {
			continue
		}
		if filter.ClipperID != nil && payout.ClipperID != *filter.ClipperID {
			continue
		}
		if filter.Status != nil && payout.Status != *filter.Status {
			continue
		}
		matched = append(matched, payout)
	}
	return matched, nil
}

func (r *fakePayoutRepo) Save(ctx context.Context, payout *models.ClipperPayout) error {
	if payout.ID == 0 {
		payout.ID = r.nextID
		r.nextID++
	}
	r.payouts = append(r.payouts, payout)
	return nil
}

func (r *fakePayoutRepo) SaveBatch(ctx context.Context, payouts []*models.ClipperPayout) error {
	for _, payout := range payouts {
		if err := r.Save(ctx, payout); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakePayoutRepo) Count(ctx context.Context, filter models.ClipperPayoutFilter) (int64, error) {
	matched, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(matched)), nil
}

func (r *fakePayoutRepo) Exists(ctx context.Context, filter models.ClipperPayoutFilter) (bool, error) {
	count, _ := r.Count(ctx, filter)
	return count > 0, nil
}

func (r *fakePayoutRepo) ListByBatch(ctx context.Context, batchID uint) ([]*models.ClipperPayout, error) {
	return r.ByFilter(ctx, models.ClipperPayoutFilter{PayoutBatchID: &batchID}, "", 0, 0)
}

func (r *fakePayoutRepo) ListPendingByBatch(ctx context.Context, batchID uint) ([]*models.ClipperPayout, error) {
	status := models.ClipperPayoutStatusPending
	return r.ByFilter(ctx, models.ClipperPayoutFilter{PayoutBatchID: &batchID, Status: &status}, "", 0, 0)
}

func (r *fakePayoutRepo) MarkPaidIfPending(ctx context.Context, id uint, paidAt time.Time) (bool, error) {
	if r.markPaidErr != nil {
		return false, r.markPaidErr
	}
	payout := r.byID(id)
	if payout == nil || payout.Status != models.ClipperPayoutStatusPending {
		return false, nil
	}
	payout.Status = models.ClipperPayoutStatusPaid
	payout.PaidAt = &paidAt
	return true, nil
}

func (r *fakePayoutRepo) SumPaidAmountByClipper(ctx context.Context, clipperID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, payout := range r.payouts {
		if payout.ClipperID == clipperID && payout.Status == models.ClipperPayoutStatusPaid {
			sum = sum.Add(payout.Amount)
		}
	}
	return sum, nil
}

func (r *fakePayoutRepo) DeleteByBatch(ctx context.Context, batchID uint) error {
	kept := r.payouts[:0]
	for _, payout := range r.payouts {
		if payout.PayoutBatchID != batchID {
			kept = append(kept, payout)
		}
	}
	r.payouts = kept
	return nil
}

type fakeSettingsRepo struct {
	rows map[string][]byte
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{rows: make(map[string][]byte)}
}

func (r *fakeSettingsRepo) ByID(ctx context.Context, id uint) (*models.PlatformSetting, error) {
	return nil, nil
}

func (r *fakeSettingsRepo) ByFilter(ctx context.Context, filter models.PlatformSettingFilter, orderBy string, limit, offset int) ([]*models.PlatformSetting, error) {
	return nil, nil
}

func (r *fakeSettingsRepo) Save(ctx context.Context, setting *models.PlatformSetting) error {
	r.rows[setting.Key] = setting.Value
	return nil
}

func (r *fakeSettingsRepo) SaveBatch(ctx context.Context, settings []*models.PlatformSetting) error {
	for _, setting := range settings {
		r.rows[setting.Key] = setting.Value
	}
	return nil
}

func (r *fakeSettingsRepo) Count(ctx context.Context, filter models.PlatformSettingFilter) (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *fakeSettingsRepo) Exists(ctx context.Context, filter models.PlatformSettingFilter) (bool, error) {
	return len(r.rows) > 0, nil
}

func (r *fakeSettingsRepo) ByKey(ctx context.Context, key string) (*models.PlatformSetting, error) {
	value, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	return &models.PlatformSetting{Key: key, Value: value}, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, key string, value []byte) error {
	r.rows[key] = value
	return nil
}

type fakeAuditRepo struct {
	logs []*models.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (r *fakeAuditRepo) ByID(ctx context.Context, id uint) (*models.AuditLog, error) {
	return nil, nil
}

func (r *fakeAuditRepo) ByFilter(ctx context.Context, filter models.AuditLogFilter, orderBy string, limit, offset int) ([]*models.AuditLog, error) {
	return r.logs, nil
}

func (r *fakeAuditRepo) Save(ctx context.Context, auditLog *models.AuditLog) error {
	r.logs = append(r.logs, auditLog)
	return nil
}

func (r *fakeAuditRepo) SaveBatch(ctx context.Context, logs []*models.AuditLog) error {
	r.logs = append(r.logs, logs...)
	return nil
}

func (r *fakeAuditRepo) Count(ctx context.Context, filter models.AuditLogFilter) (int64, error) {
	return int64(len(r.logs)), nil
}

func (r *fakeAuditRepo) Exists(ctx context.Context, filter models.AuditLogFilter) (bool, error) {
	return len(r.logs) > 0, nil
}

func (r *fakeAuditRepo) ListByAdmin(ctx context.Context, adminID uint, limit, offset int) ([]*models.AuditLog, error) {
	return r.logs, nil
}

func (r *fakeAuditRepo) ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error) {
	matched := make([]*models.AuditLog, 0)
	for _, entry := range r.logs {
		if entry.Action == action {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

type fakeCampaignRepo struct {
	campaigns map[uint]*models.Campaign
}

func newFakeCampaignRepo(campaigns ...*models.Campaign) *fakeCampaignRepo {
	repo := &fakeCampaignRepo{campaigns: make(map[uint]*models.Campaign)}
	for _, campaign := range campaigns {
		repo.campaigns[campaign.ID] = campaign
	}
	return repo
}

func (r *fakeCampaignRepo) ByID(ctx context.Context, id uint) (*models.Campaign, error) {
	return r.campaigns[id], nil
}

func (r *fakeCampaignRepo) ByFilter(ctx context.Context, filter models.CampaignFilter, orderBy string, limit, offset int) ([]*models.Campaign, error) {
	matched := make([]*models.Campaign, 0)
	for _, campaign := range r.campaigns {
		if filter.Status != nil && campaign.Status != *filter.Status {
			continue
		}
		if filter.ClientID != nil && campaign.ClientID != *filter.ClientID {
			continue
		}
		matched = append(matched, campaign)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeCampaignRepo) Save(ctx context.Context, campaign *models.Campaign) error {
	if campaign.ID == 0 {
		campaign.ID = uint(len(r.campaigns) + 1)
	}
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) SaveBatch(ctx context.Context, campaigns []*models.Campaign) error {
	for _, campaign := range campaigns {
		if err := r.Save(ctx, campaign); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCampaignRepo) Count(ctx context.Context, filter models.CampaignFilter) (int64, error) {
	matched, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(matched)), nil
}

func (r *fakeCampaignRepo) Exists(ctx context.Context, filter models.CampaignFilter) (bool, error) {
	count, _ := r.Count(ctx, filter)
	return count > 0, nil
}

func (r *fakeCampaignRepo) ByUUID(ctx context.Context, uuid string) (*models.Campaign, error) {
	for _, campaign := range r.campaigns {
		if campaign.UUID.String() == uuid {
			return campaign, nil
		}
	}
	return nil, nil
}

func (r *fakeCampaignRepo) ListByStatus(ctx context.Context, status models.CampaignStatus, limit, offset int) ([]*models.Campaign, error) {
	return r.ByFilter(ctx, models.CampaignFilter{Status: &status}, "", limit, offset)
}

func (r *fakeCampaignRepo) Update(ctx context.Context, campaign models.Campaign) error {
	if existing, ok := r.campaigns[campaign.ID]; ok {
		*existing = campaign
	}
	return nil
}

func (r *fakeCampaignRepo) UpdateStatus(ctx context.Context, id uint, status models.CampaignStatus) error {
	if campaign, ok := r.campaigns[id]; ok {
		campaign.Status = status
	}
	return nil
}

type fakeAdminRepo struct {
	admins map[uint]*models.Admin
}

func newFakeAdminRepo(admins ...*models.Admin) *fakeAdminRepo {
	repo := &fakeAdminRepo{admins: make(map[uint]*models.Admin)}
	for _, admin := range admins {
		repo.admins[admin.ID] = admin
	}
	return repo
}

func (r *fakeAdminRepo) ByID(ctx context.Context, id uint) (*models.Admin, error) {
	return r.admins[id], nil
}

func (r *fakeAdminRepo) ByFilter(ctx context.Context, filter models.AdminFilter, orderBy string, limit, offset int) ([]*models.Admin, error) {
	matched := make([]*models.Admin, 0)
	for _, admin := range r.admins {
		matched = append(matched, admin)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeAdminRepo) Save(ctx context.Context, admin *models.Admin) error {
	if admin.ID == 0 {
		admin.ID = uint(len(r.admins) + 1)
	}
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) SaveBatch(ctx context.Context, admins []*models.Admin) error {
	for _, admin := range admins {
		if err := r.Save(ctx, admin); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeAdminRepo) Count(ctx context.Context, filter models.AdminFilter) (int64, error) {
	return int64(len(r.admins)), nil
}

func (r *fakeAdminRepo) Exists(ctx context.Context, filter models.AdminFilter) (bool, error) {
	return len(r.admins) > 0, nil
}

func (r *fakeAdminRepo) ByUsername(ctx context.Context, username string) (*models.Admin, error) {
	for _, admin := range r.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	if admin, ok := r.admins[id]; ok {
		admin.LastLoginAt = &at
	}
	return nil
}

type fakeClientRepo struct {
	clients map[uint]*models.Client
}

func newFakeClientRepo(clients ...*models.Client) *fakeClientRepo {
	repo := &fakeClientRepo{clients: make(map[uint]*models.Client)}
	for _, client := range clients {
		repo.clients[client.ID] = client
	}
	return repo
}

func (r *fakeClientRepo) ByID(ctx context.Context, id uint) (*models.Client, error) {
	return r.clients[id], nil
}

func (r *fakeClientRepo) ByFilter(ctx context.Context, filter models.ClientFilter, orderBy string, limit, offset int) ([]*models.Client, error) {
	matched := make([]*models.Client, 0)
	for _, client := range r.clients {
		matched = append(matched, client)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeClientRepo) Save(ctx context.Context, client *models.Client) error {
	if client.ID == 0 {
		client.ID = uint(len(r.clients) + 1)
	}
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) SaveBatch(ctx context.Context, clients []*models.Client) error {
	for _, client := range clients {
		if err := r.Save(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeClientRepo) Count(ctx context.Context, filter models.ClientFilter) (int64, error) {
	return int64(len(r.clients)), nil
}

func (r *fakeClientRepo) Exists(ctx context.Context, filter models.ClientFilter) (bool, error) {
	return len(r.clients) > 0, nil
}

func (r *fakeClientRepo) ByUUID(ctx context.Context, uuid string) (*models.Client, error) {
	for _, client := range r.clients {
		if client.UUID.String() == uuid {
			return client, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) ByEmail(ctx context.Context, email string) (*models.Client, error) {
	for _, client := range r.clients {
		if client.Email == email {
			return client, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client models.Client) error {
	if existing, ok := r.clients[client.ID]; ok {
		*existing = client
	}
	return nil
}
