package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/cliphaus/cliphaus-platform/models"
	testingutil "github.com/cliphaus/cliphaus-platform/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanForDuplicates(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("EarliestSubmissionIsCanonical", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		first := testingutil.NewTestClip(1, clipper, nil, 100, base)
		second := testingutil.NewTestClip(2, clipper, nil, 200, base.Add(time.Hour))
		third := testingutil.NewTestClip(3, clipper, nil, 300, base.Add(2*time.Hour))
		second.SubmissionURL = first.SubmissionURL
		third.SubmissionURL = first.SubmissionURL
		clipRepo := newFakeClipRepo(first, second, third)
		flow := NewDuplicateFlow(clipRepo, newFakeAuditRepo(), nil)

		resp, err := flow.ScanForDuplicates(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 2, resp.DuplicatesFound)

		assert.False(t, first.IsDuplicate)
		assert.True(t, second.IsDuplicate)
		assert.True(t, third.IsDuplicate)
		require.NotNil(t, second.DuplicateOfClipID)
		assert.Equal(t, first.ID, *second.DuplicateOfClipID)
		require.NotNil(t, third.DuplicateOfClipID)
		assert.Equal(t, first.ID, *third.DuplicateOfClipID)
	})

	t.Run("RerunIsIdempotent", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		first := testingutil.NewTestClip(1, clipper, nil, 100, base)
		second := testingutil.NewTestClip(2, clipper, nil, 200, base.Add(time.Hour))
		second.SubmissionURL = first.SubmissionURL
		clipRepo := newFakeClipRepo(first, second)
		flow := NewDuplicateFlow(clipRepo, newFakeAuditRepo(), nil)

		resp, err := flow.ScanForDuplicates(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.DuplicatesFound)

		resp, err = flow.ScanForDuplicates(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.DuplicatesFound)
		assert.False(t, first.IsDuplicate)
	})

	t.Run("TimestampTieBreaksOnLowerID", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		first := testingutil.NewTestClip(4, clipper, nil, 100, base)
		second := testingutil.NewTestClip(9, clipper, nil, 200, base)
		second.SubmissionURL = first.SubmissionURL
		clipRepo := newFakeClipRepo(first, second)
		flow := NewDuplicateFlow(clipRepo, newFakeAuditRepo(), nil)

		resp, err := flow.ScanForDuplicates(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.DuplicatesFound)
		assert.False(t, first.IsDuplicate)
		assert.True(t, second.IsDuplicate)
	})

	t.Run("DistinctURLsUntouched", func(t *testing.T) {
		clipper := testingutil.NewTestClipper(1, models.ClipperTierEntry)
		first := testingutil.NewTestClip(1, clipper, nil, 100, base)
		second := testingutil.NewTestClip(2, clipper, nil, 200, base.Add(time.Hour))
		clipRepo := newFakeClipRepo(first, second)
		flow := NewDuplicateFlow(clipRepo, newFakeAuditRepo(), nil)

		resp, err := flow.ScanForDuplicates(context.Background(), metadata)
		require.NoError(t, err)
		assert.Equal(t, 0, resp.DuplicatesFound)
		assert.False(t, first.IsDuplicate)
		assert.False(t, second.IsDuplicate)
	})
}
