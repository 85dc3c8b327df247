package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/services"
	"github.com/cliphaus/cliphaus-platform/models"
	testingutil "github.com/cliphaus/cliphaus-platform/testing"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshStaleMetrics(t *testing.T) {
	metadata := NewClientMetadata("", "metrics-test")

	t.Run("RefreshesStaleClipsAndMatchesTags", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusActive)
		campaign.RequiredTags = []string{"#brand", "#ad"}
		clip := testingutil.NewTestClip(1, clipper, campaign, 100, time.Now().UTC().Add(-48*time.Hour))
		clip.ExternalPostID = utils.ToPtr("post-1")
		clipRepo := newFakeClipRepo(clip)

		client := services.NewMockSocialMetricsClient()
		client.MetricsByPostID["post-1"] = &services.PostMetrics{
			Views: 5000,
			Likes: 300,
			Tags:  []string{"#brand", "#fyp"},
		}

		flow := NewMetricsRefreshFlow(clipRepo, newFakeAuditRepo(), client, 0)
		resp, err := flow.RefreshStaleMetrics(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, 1, resp.Updated)
		assert.Equal(t, 0, resp.Errors)

		assert.Equal(t, int64(5000), clip.Views)
		assert.Equal(t, int64(300), clip.Likes)
		assert.Equal(t, []string{"#brand"}, []string(clip.TagsFound))
		assert.Equal(t, []string{"#ad"}, []string(clip.TagsMissing))
		assert.NotNil(t, clip.MetricsUpdatedAt)
	})

	t.Run("FetchFailureDoesNotAbortRun", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusActive)
		first := testingutil.NewTestClip(1, clipper, campaign, 100, time.Now().UTC().Add(-48*time.Hour))
		first.ExternalPostID = utils.ToPtr("gone")
		second := testingutil.NewTestClip(2, clipper, campaign, 100, time.Now().UTC().Add(-48*time.Hour))
		second.ExternalPostID = utils.ToPtr("post-2")
		clipRepo := newFakeClipRepo(first, second)

		client := services.NewMockSocialMetricsClient()
		// "gone" stays unmapped, the mock reports it as deleted
		client.MetricsByPostID["post-2"] = &services.PostMetrics{Views: 9000}

		flow := NewMetricsRefreshFlow(clipRepo, newFakeAuditRepo(), client, 0)
		resp, err := flow.RefreshStaleMetrics(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, 1, resp.Updated)
		assert.Equal(t, 1, resp.Errors)
		assert.Equal(t, int64(9000), second.Views)
	})

	t.Run("SkipsClipsWithoutActiveCampaign", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		paused := testingutil.NewTestCampaign(1, models.CampaignStatusPaused)
		clip := testingutil.NewTestClip(1, clipper, paused, 100, time.Now().UTC().Add(-48*time.Hour))
		clip.ExternalPostID = utils.ToPtr("post-1")

		client := services.NewMockSocialMetricsClient()
		flow := NewMetricsRefreshFlow(newFakeClipRepo(clip), newFakeAuditRepo(), client, 0)

		resp, err := flow.RefreshStaleMetrics(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Total)
		assert.Empty(t, client.Calls)
	})

	t.Run("ClientErrorCountsPerClip", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusActive)
		clip := testingutil.NewTestClip(1, clipper, campaign, 100, time.Now().UTC().Add(-48*time.Hour))
		clip.ExternalPostID = utils.ToPtr("post-1")

		client := services.NewMockSocialMetricsClient()
		client.Err = errors.New("rate limited")

		flow := NewMetricsRefreshFlow(newFakeClipRepo(clip), newFakeAuditRepo(), client, 0)
		resp, err := flow.RefreshStaleMetrics(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Errors)
		assert.Equal(t, 0, resp.Updated)
	})
}
