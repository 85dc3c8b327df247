package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/models"
	testingutil "github.com/cliphaus/cliphaus-platform/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClipFlowForTest(clipRepo *fakeClipRepo, clipperRepo *fakeClipperRepo, campaignRepo *fakeCampaignRepo) ClipFlow {
	return NewClipFlow(clipRepo, clipperRepo, campaignRepo, newFakeAuditRepo(), nil)
}

func TestSubmitClip(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("AcceptsValidSubmission", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusActive)
		clipRepo := newFakeClipRepo()
		clipperRepo := newFakeClipperRepo(clipper)
		flow := newClipFlowForTest(clipRepo, clipperRepo, newFakeCampaignRepo(campaign))

		resp, err := flow.SubmitClip(context.Background(), &dto.SubmitClipRequest{
			CampaignUUID:  campaign.UUID.String(),
			ClipperUUID:   clipper.UUID.String(),
			Platform:      "tiktok",
			SubmissionURL: "https://www.tiktok.com/@creator/video/7123456789012345678",
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, string(models.ClipStatusPending), resp.Status)
		assert.NotZero(t, resp.ID)

		// Submission counter bumps, approval counter does not
		assert.Equal(t, 1, clipper.SubmittedClips)
		assert.Equal(t, 0, clipper.ApprovedClips)
	})

	t.Run("RejectsInactiveCampaign", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusPaused)
		flow := newClipFlowForTest(newFakeClipRepo(), newFakeClipperRepo(clipper), newFakeCampaignRepo(campaign))

		_, err := flow.SubmitClip(context.Background(), &dto.SubmitClipRequest{
			CampaignUUID:  campaign.UUID.String(),
			ClipperUUID:   clipper.UUID.String(),
			Platform:      "tiktok",
			SubmissionURL: "https://www.tiktok.com/@creator/video/7123456789012345678",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsCampaignNotActive(err))
	})

	t.Run("RejectsSuspendedClipper", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		clipper.Status = models.ClipperStatusSuspended
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusActive)
		flow := newClipFlowForTest(newFakeClipRepo(), newFakeClipperRepo(clipper), newFakeCampaignRepo(campaign))

		_, err := flow.SubmitClip(context.Background(), &dto.SubmitClipRequest{
			CampaignUUID:  campaign.UUID.String(),
			ClipperUUID:   clipper.UUID.String(),
			Platform:      "tiktok",
			SubmissionURL: "https://www.tiktok.com/@creator/video/7123456789012345678",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsClipperCannotSubmit(err))
	})

	t.Run("RejectsResubmittedURL", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		campaign := testingutil.NewTestCampaign(1, models.CampaignStatusActive)
		existing := testingutil.NewTestClip(1, clipper, campaign, 0, time.Now().UTC())
		flow := newClipFlowForTest(newFakeClipRepo(existing), newFakeClipperRepo(clipper), newFakeCampaignRepo(campaign))

		_, err := flow.SubmitClip(context.Background(), &dto.SubmitClipRequest{
			CampaignUUID:  campaign.UUID.String(),
			ClipperUUID:   clipper.UUID.String(),
			Platform:      "tiktok",
			SubmissionURL: existing.SubmissionURL,
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsDuplicateClipURL(err))
	})

	t.Run("UnknownCampaign", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		flow := newClipFlowForTest(newFakeClipRepo(), newFakeClipperRepo(clipper), newFakeCampaignRepo())

		_, err := flow.SubmitClip(context.Background(), &dto.SubmitClipRequest{
			CampaignUUID:  "ba1f8f49-95ff-4a55-9a8f-6ec2ab1de7a0",
			ClipperUUID:   clipper.UUID.String(),
			Platform:      "tiktok",
			SubmissionURL: "https://www.tiktok.com/@creator/video/7123456789012345678",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsCampaignNotFound(err))
	})
}

func TestReviewClip(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("ApproveBumpsApprovedCounter", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		clip := testingutil.NewTestClip(1, clipper, nil, 0, time.Now().UTC())
		clip.Status = models.ClipStatusPending
		clipRepo := newFakeClipRepo(clip)
		flow := newClipFlowForTest(clipRepo, newFakeClipperRepo(clipper), newFakeCampaignRepo())

		resp, err := flow.ReviewClip(context.Background(), &dto.ReviewClipRequest{
			ClipUUID: clip.UUID.String(),
			Approve:  true,
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, string(models.ClipStatusApproved), resp.Status)
		assert.Equal(t, models.ClipStatusApproved, clip.Status)
		assert.Equal(t, 1, clipper.ApprovedClips)
	})

	t.Run("RejectLeavesCounterAlone", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		clip := testingutil.NewTestClip(1, clipper, nil, 0, time.Now().UTC())
		clip.Status = models.ClipStatusPending
		flow := newClipFlowForTest(newFakeClipRepo(clip), newFakeClipperRepo(clipper), newFakeCampaignRepo())

		resp, err := flow.ReviewClip(context.Background(), &dto.ReviewClipRequest{
			ClipUUID: clip.UUID.String(),
		}, metadata)
		require.NoError(t, err)
		assert.Equal(t, string(models.ClipStatusRejected), resp.Status)
		assert.Equal(t, 0, clipper.ApprovedClips)
	})

	t.Run("RejectsSecondReview", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		clip := testingutil.NewTestClip(1, clipper, nil, 0, time.Now().UTC())
		flow := newClipFlowForTest(newFakeClipRepo(clip), newFakeClipperRepo(clipper), newFakeCampaignRepo())

		// Already approved
		_, err := flow.ReviewClip(context.Background(), &dto.ReviewClipRequest{
			ClipUUID: clip.UUID.String(),
			Approve:  true,
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsClipNotPending(err))
	})
}

func TestCheckDuplicateURL(t *testing.T) {
	t.Run("ReportsEarliestSubmission", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		clip := testingutil.NewTestClip(1, clipper, nil, 0, time.Now().UTC())
		flow := newClipFlowForTest(newFakeClipRepo(clip), newFakeClipperRepo(clipper), newFakeCampaignRepo())

		resp, err := flow.CheckDuplicateURL(context.Background(), clip.SubmissionURL)
		require.NoError(t, err)
		assert.True(t, resp.IsDuplicate)
		require.NotNil(t, resp.ClipperName)
		assert.Equal(t, clipper.Name, *resp.ClipperName)
		assert.NotNil(t, resp.SubmittedAt)
	})

	t.Run("UnknownURL", func(t *testing.T) {
		flow := newClipFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeCampaignRepo())

		resp, err := flow.CheckDuplicateURL(context.Background(), "https://www.tiktok.com/@creator/video/1")
		require.NoError(t, err)
		assert.False(t, resp.IsDuplicate)
		assert.Nil(t, resp.ClipperName)
	})
}

func TestListClips(t *testing.T) {
	t.Run("FiltersByStatus", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		approved := testingutil.NewTestClip(1, clipper, nil, 0, time.Now().UTC().Add(-time.Hour))
		pending := testingutil.NewTestClip(2, clipper, nil, 0, time.Now().UTC())
		pending.Status = models.ClipStatusPending
		flow := newClipFlowForTest(newFakeClipRepo(approved, pending), newFakeClipperRepo(clipper), newFakeCampaignRepo())

		status := "pending"
		resp, err := flow.ListClips(context.Background(), &dto.ListClipsRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, pending.UUID.String(), resp.Items[0].UUID)
	})

	t.Run("InvalidPagination", func(t *testing.T) {
		flow := newClipFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeCampaignRepo())

		_, err := flow.ListClips(context.Background(), &dto.ListClipsRequest{Page: -1})
		assert.True(t, IsInvalidPage(err))

		_, err = flow.ListClips(context.Background(), &dto.ListClipsRequest{PageSize: 101})
		assert.True(t, IsInvalidPageSize(err))
	})
}
