package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	testingutil "github.com/cliphaus/cliphaus-platform/testing"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchFlowForTest(clipRepo *fakeClipRepo, clipperRepo *fakeClipperRepo, batchRepo *fakeBatchRepo, payoutRepo *fakePayoutRepo) BatchFlow {
	return NewBatchFlow(clipRepo, clipperRepo, batchRepo, payoutRepo, newFakeAuditRepo(), nil)
}

func TestMarkPayoutAsPaid(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("CreditsEarningsExactlyOnce", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusDraft, start, end)
		payout := testingutil.NewTestPayout(1, batch, clipper, "75.50")
		clipperRepo := newFakeClipperRepo(clipper)
		flow := newBatchFlowForTest(newFakeClipRepo(), clipperRepo, newFakeBatchRepo(batch), newFakePayoutRepo(payout))

		resp, err := flow.MarkPayoutAsPaid(context.Background(), payout.UUID.String(), metadata)
		require.NoError(t, err)
		assert.False(t, resp.AlreadyPaid)
		assert.Equal(t, string(models.ClipperPayoutStatusPaid), resp.Status)
		assert.Equal(t, "75.50", clipper.TotalEarnings.StringFixed(2))
		require.NotNil(t, payout.PaidAt)

		// Repeating the call must not credit again
		resp, err = flow.MarkPayoutAsPaid(context.Background(), payout.UUID.String(), metadata)
		require.NoError(t, err)
		assert.True(t, resp.AlreadyPaid)
		assert.Equal(t, "75.50", clipper.TotalEarnings.StringFixed(2))
	})

	t.Run("UnknownPayout", func(t *testing.T) {
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(), newFakePayoutRepo())

		_, err := flow.MarkPayoutAsPaid(context.Background(), "ba1f8f49-95ff-4a55-9a8f-6ec2ab1de7a0", metadata)
		require.Error(t, err)
		assert.True(t, IsPayoutNotFound(err))
	})

	t.Run("MalformedUUID", func(t *testing.T) {
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(), newFakePayoutRepo())

		_, err := flow.MarkPayoutAsPaid(context.Background(), "not-a-uuid", metadata)
		require.Error(t, err)
	})
}

func TestMarkBatchAsPaid(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("PaysPendingPayoutsAndCompletesBatch", func(t *testing.T) {
		first := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		second := testingutil.NewTestClipper(2, models.ClipperTierCore)
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusDraft, start, end)
		pending := testingutil.NewTestPayout(1, batch, first, "20.00")
		alreadyPaid := testingutil.NewTestPayout(2, batch, second, "30.00")
		alreadyPaid.Status = models.ClipperPayoutStatusPaid
		batchRepo := newFakeBatchRepo(batch)
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(first, second), batchRepo, newFakePayoutRepo(pending, alreadyPaid))

		ctx := context.WithValue(context.Background(), utils.AdminIDKey, uint(7))
		resp, err := flow.MarkBatchAsPaid(ctx, batch.UUID.String(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.PayoutsPaid)
		assert.Equal(t, string(models.PayoutBatchStatusCompleted), resp.Status)

		stored := batchRepo.byID(batch.ID)
		assert.Equal(t, models.PayoutBatchStatusCompleted, stored.Status)
		require.NotNil(t, stored.ProcessedBy)
		assert.Equal(t, uint(7), *stored.ProcessedBy)
		assert.NotNil(t, stored.ProcessedAt)

		// Only the pending payout credited earnings
		assert.Equal(t, "20.00", first.TotalEarnings.StringFixed(2))
		assert.Equal(t, "0.00", second.TotalEarnings.StringFixed(2))
	})

	t.Run("CompletedBatchIsIdempotent", func(t *testing.T) {
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusCompleted, start, end)
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(batch), newFakePayoutRepo())

		resp, err := flow.MarkBatchAsPaid(context.Background(), batch.UUID.String(), metadata)
		require.NoError(t, err)
		assert.True(t, resp.AlreadyPaid)
		assert.Equal(t, 0, resp.PayoutsPaid)
		assert.Equal(t, string(models.PayoutBatchStatusCompleted), resp.Status)
	})

	t.Run("RejectsCancelledBatch", func(t *testing.T) {
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusCancelled, start, end)
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(batch), newFakePayoutRepo())

		_, err := flow.MarkBatchAsPaid(context.Background(), batch.UUID.String(), metadata)
		require.Error(t, err)
		assert.True(t, IsBatchNotDraft(err))
	})

	t.Run("ResumesAfterFailedCascade", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusDraft, start, end)
		payout := testingutil.NewTestPayout(1, batch, clipper, "40.00")
		batchRepo := newFakeBatchRepo(batch)
		payoutRepo := newFakePayoutRepo(payout)
		payoutRepo.markPaidErr = errors.New("connection reset")
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(clipper), batchRepo, payoutRepo)

		// First attempt fails mid-cascade and leaves the batch in processing
		_, err := flow.MarkBatchAsPaid(context.Background(), batch.UUID.String(), metadata)
		require.Error(t, err)
		assert.Equal(t, models.PayoutBatchStatusProcessing, batchRepo.byID(batch.ID).Status)
		assert.Equal(t, models.ClipperPayoutStatusPending, payout.Status)

		// Retry resumes the processing batch and settles it
		payoutRepo.markPaidErr = nil
		resp, err := flow.MarkBatchAsPaid(context.Background(), batch.UUID.String(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.PayoutsPaid)
		assert.Equal(t, string(models.PayoutBatchStatusCompleted), resp.Status)
		assert.Equal(t, models.PayoutBatchStatusCompleted, batchRepo.byID(batch.ID).Status)
		assert.Equal(t, "40.00", clipper.TotalEarnings.StringFixed(2))
	})

	t.Run("UnknownBatch", func(t *testing.T) {
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(), newFakePayoutRepo())

		_, err := flow.MarkBatchAsPaid(context.Background(), "ba1f8f49-95ff-4a55-9a8f-6ec2ab1de7a0", metadata)
		require.Error(t, err)
		assert.True(t, IsBatchNotFound(err))
	})
}

func TestCancelBatch(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("RevertsClipsAndRemovesPayouts", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusDraft, start, end)
		clip := testingutil.NewTestClip(1, clipper, nil, 5000, start.Add(24*time.Hour))
		clip.Status = models.ClipStatusPaid
		clip.PayoutBatchID = &batch.ID
		payout := testingutil.NewTestPayout(1, batch, clipper, "5.00")
		clipRepo := newFakeClipRepo(clip)
		payoutRepo := newFakePayoutRepo(payout)
		batchRepo := newFakeBatchRepo(batch)
		flow := newBatchFlowForTest(clipRepo, newFakeClipperRepo(clipper), batchRepo, payoutRepo)

		resp, err := flow.CancelBatch(context.Background(), batch.UUID.String(), metadata)
		require.NoError(t, err)
		assert.Equal(t, string(models.PayoutBatchStatusCancelled), resp.Status)

		reverted, _ := clipRepo.ByID(context.Background(), 1)
		assert.Equal(t, models.ClipStatusApproved, reverted.Status)
		assert.Nil(t, reverted.PayoutBatchID)
		assert.Nil(t, reverted.PayoutAmount)

		assert.Empty(t, payoutRepo.payouts)
		assert.Equal(t, models.PayoutBatchStatusCancelled, batchRepo.byID(batch.ID).Status)
	})

	t.Run("RejectsCompletedBatch", func(t *testing.T) {
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusCompleted, start, end)
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(batch), newFakePayoutRepo())

		_, err := flow.CancelBatch(context.Background(), batch.UUID.String(), metadata)
		require.Error(t, err)
		assert.True(t, IsBatchNotDraft(err))
	})
}

func TestDeleteBatch(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("RemovesBatchAndRevertsClips", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusDraft, start, end)
		clip := testingutil.NewTestClip(1, clipper, nil, 5000, start.Add(24*time.Hour))
		clip.Status = models.ClipStatusPaid
		clip.PayoutBatchID = &batch.ID
		clipRepo := newFakeClipRepo(clip)
		batchRepo := newFakeBatchRepo(batch)
		flow := newBatchFlowForTest(clipRepo, newFakeClipperRepo(clipper), batchRepo, newFakePayoutRepo(testingutil.NewTestPayout(1, batch, clipper, "5.00")))

		_, err := flow.DeleteBatch(context.Background(), batch.UUID.String(), metadata)
		require.NoError(t, err)

		assert.Nil(t, batchRepo.byID(batch.ID))
		reverted, _ := clipRepo.ByID(context.Background(), 1)
		assert.Equal(t, models.ClipStatusApproved, reverted.Status)
	})

	t.Run("RejectsProcessingBatch", func(t *testing.T) {
		batch := testingutil.NewTestBatch(1, models.PayoutBatchStatusProcessing, start, end)
		flow := newBatchFlowForTest(newFakeClipRepo(), newFakeClipperRepo(), newFakeBatchRepo(batch), newFakePayoutRepo())

		_, err := flow.DeleteBatch(context.Background(), batch.UUID.String(), metadata)
		require.Error(t, err)
		assert.True(t, IsBatchNotDraft(err))
	})
}
