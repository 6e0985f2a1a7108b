package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAppraisalStatus(t *testing.T) {
	t.Run("канонические значения", func(t *testing.T) {
		status, ok := ParseAppraisalStatus("DRAFT")
		require.True(t, ok)
		require.Equal(t, AppraisalStatusDraft, status)

		status, ok = ParseAppraisalStatus("AWAITING_HR")
		require.True(t, ok)
		require.Equal(t, AppraisalStatusAwaitingHr, status)
	})

	t.Run("нормализация регистра и пробелов", func(t *testing.T) {
		status, ok := ParseAppraisalStatus(" pending_manager_review ")
		require.True(t, ok)
		require.Equal(t, AppraisalStatusPendingManager, status)
	})

	t.Run("неизвестное значение", func(t *testing.T) {
		_, ok := ParseAppraisalStatus("ARCHIVED")
		require.False(t, ok)
	})
}

func TestAppraisalStatusPredicates(t *testing.T) {
	require.True(t, AppraisalStatusDraft.IsDraft())
	require.False(t, AppraisalStatusSubmitted.IsDraft())

	require.True(t, AppraisalStatusCompleted.IsCompleted())
	require.False(t, AppraisalStatusAwaitingHr.IsCompleted())

	require.True(t, AppraisalStatusSubmitted.InReviewChain())
	require.True(t, AppraisalStatusPendingDivisional.InReviewChain())
	require.False(t, AppraisalStatusDraft.InReviewChain())
	require.False(t, AppraisalStatusSelfEvaluation.InReviewChain())
}
