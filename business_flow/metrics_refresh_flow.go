package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/app/services"
	"github.com/cliphaus/cliphaus-platform/models"
	"github.com/cliphaus/cliphaus-platform/repository"
	"github.com/cliphaus/cliphaus-platform/utils"
)

// MetricsRefreshFlow re-fetches engagement metrics for stale clips of active
// campaigns. One failed fetch never aborts the run; failures are counted and
// the remaining clips still refresh.
type MetricsRefreshFlow interface {
	RefreshStaleMetrics(ctx context.Context, metadata *ClientMetadata) (*dto.RefreshMetricsResponse, error)
}

// MetricsRefreshFlowImpl implements MetricsRefreshFlow
type MetricsRefreshFlowImpl struct {
	clipRepo      repository.ClipRepository
	auditRepo     repository.AuditLogRepository
	metricsClient services.SocialMetricsClient
	fetchDelay    time.Duration
}

// NewMetricsRefreshFlow creates a new metrics refresh flow instance.
// fetchDelay spaces out API calls to stay under provider rate limits.
func NewMetricsRefreshFlow(
	clipRepo repository.ClipRepository,
	auditRepo repository.AuditLogRepository,
	metricsClient services.SocialMetricsClient,
	fetchDelay time.Duration,
) MetricsRefreshFlow {
	return &MetricsRefreshFlowImpl{
		clipRepo:      clipRepo,
		auditRepo:     auditRepo,
		metricsClient: metricsClient,
		fetchDelay:    fetchDelay,
	}
}

func (f *MetricsRefreshFlowImpl) RefreshStaleMetrics(ctx context.Context, metadata *ClientMetadata) (*dto.RefreshMetricsResponse, error) {
	staleBefore := utils.UTCNow().Add(-utils.MetricsFreshnessWindow)

	clips, err := f.clipRepo.ListStaleForActiveCampaigns(ctx, staleBefore)
	if err != nil {
		return nil, NewBusinessError("METRICS_REFRESH_FAILED", "Failed to select stale clips", err)
	}

	updated := 0
	errored := 0
	for i, clip := range clips {
		if i > 0 && f.fetchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.fetchDelay):
			}
		}

		if err := f.refreshClip(ctx, clip); err != nil {
			errored++
			continue
		}
		updated++
	}

	msg := fmt.Sprintf("Metrics refresh: %d selected, %d updated, %d errors", len(clips), updated, errored)
	_ = recordAudit(ctx, f.auditRepo, models.AuditActionMetricsRefreshRun, msg, errored == 0, nil, metadata)

	return &dto.RefreshMetricsResponse{
		Message: "Metrics refresh completed",
		Total:   len(clips),
		Updated: updated,
		Errors:  errored,
	}, nil
}

func (f *MetricsRefreshFlowImpl) refreshClip(ctx context.Context, clip *models.Clip) error {
	if clip.ExternalPostID == nil {
		return fmt.Errorf("clip %d has no external post id", clip.ID)
	}

	metrics, err := f.metricsClient.FetchPostMetrics(ctx, clip.Platform, *clip.ExternalPostID)
	if err != nil {
		return err
	}
	if metrics == nil {
		return fmt.Errorf("post %s no longer exists", *clip.ExternalPostID)
	}

	var required []string
	if clip.Campaign != nil {
		required = clip.Campaign.RequiredTags
	}
	found, missing := matchRequiredTags(required, metrics.Tags)

	return f.clipRepo.UpdateMetrics(ctx, clip.ID, repository.ClipMetricsUpdate{
		Views:       metrics.Views,
		Likes:       metrics.Likes,
		Comments:    metrics.Comments,
		Shares:      metrics.Shares,
		Retweets:    metrics.Retweets,
		Impressions: metrics.Impressions,
		TagsFound:   found,
		TagsMissing: missing,
		UpdatedAt:   utils.UTCNow(),
	})
}

// matchRequiredTags splits the campaign's required tags into those present in
// the post and those absent, case-insensitively
func matchRequiredTags(required, postTags []string) (found, missing []string) {
	present := make(map[string]bool, len(postTags))
	for _, tag := range postTags {
		present[strings.ToLower(tag)] = true
	}

	found = make([]string, 0, len(required))
	missing = make([]string, 0)
	for _, tag := range required {
		if present[strings.ToLower(tag)] {
			found = append(found, tag)
		} else {
			missing = append(missing, tag)
		}
	}
	return found, missing
}
