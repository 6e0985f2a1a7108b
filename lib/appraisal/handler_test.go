package appraisalhandler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"appraisal-backend/config"
	"appraisal-backend/lib/notification"
	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	notificationapimodels "appraisal-backend/models/api/notification"
	dbmodels "appraisal-backend/models/db"
)

type fakeStore struct {
	rec        *dbmodels.AppraisalInstance
	findRec    *dbmodels.AppraisalInstance
	lastUpdMap map[string]interface{}
}

func (s *fakeStore) Create(rec dbmodels.AppraisalInstance) (string, error) { return "", nil }

func (s *fakeStore) GetByID(id string) (*dbmodels.AppraisalInstance, error) { return s.rec, nil }

func (s *fakeStore) Find(employeeID, cycleID, templateID string, status models.AppraisalStatus) (*dbmodels.AppraisalInstance, error) {
	return s.findRec, nil
}

func (s *fakeStore) Update(id string, updMap map[string]interface{}) error {
	s.lastUpdMap = updMap
	if status, ok := updMap["status"].(models.AppraisalStatus); ok {
		s.rec.Status = status
	}
	return nil
}

func (s *fakeStore) Delete(id string) error { return nil }

func (s *fakeStore) List(filter appraisalapimodels.AppraisalFilter) ([]dbmodels.AppraisalInstance, error) {
	return nil, nil
}

func (s *fakeStore) ListCount(filter appraisalapimodels.AppraisalFilter) (int64, error) {
	return 0, nil
}

func (s *fakeStore) ListDraftsOlderThan(days int) ([]dbmodels.AppraisalInstance, error) {
	return nil, nil
}

type noopTransport struct{}

func (noopTransport) Deliver(_ context.Context, _ notificationapimodels.NotificationMessage) error {
	return nil
}

func setupNotifications() {
	if config.Conf == nil {
		config.Conf = new(config.Configuration)
	}
	notification.Instance = notification.NewHandlerWithTransport(noopTransport{})
}

func pendingAppraisal() *dbmodels.AppraisalInstance {
	rec := &dbmodels.AppraisalInstance{
		EmployeeID: "emp-1",
		CycleID:    "cycle-1",
		Status:     models.AppraisalStatusPendingDivisional,
	}
	rec.ID = "appraisal-1"
	return rec
}

func TestDivisionalReview(t *testing.T) {
	setupNotifications()

	t.Run("доступно руководителю дивизиона и HR", func(t *testing.T) {
		store := &fakeStore{rec: pendingAppraisal()}
		handler := impl{store: store}

		_, err := handler.DivisionalReview("appraisal-1", models.EmployeeRole, appraisalapimodels.DivisionalReviewData{Decision: "approve", Signature: "sig"})
		require.Error(t, err)
		require.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		require.Nil(t, store.lastUpdMap)
	})

	t.Run("решение переводит оценку в AWAITING_HR", func(t *testing.T) {
		store := &fakeStore{rec: pendingAppraisal()}
		handler := impl{store: store}

		view, err := handler.DivisionalReview("appraisal-1", models.DivisionalHeadRole, appraisalapimodels.DivisionalReviewData{
			Decision:  "approve",
			Comments:  "ok",
			Signature: "sig",
		})
		require.NoError(t, err)
		require.Equal(t, models.AppraisalStatusAwaitingHr, view.Status)
		require.Equal(t, models.AppraisalStatusAwaitingHr, store.lastUpdMap["status"])

		payload, ok := store.lastUpdMap["divisional_review"].(dbmodels.DivisionalReviewPayload)
		require.True(t, ok)
		require.Equal(t, "approve", payload.Decision)
		require.NotNil(t, payload.DecidedAt)
	})

	t.Run("несуществующая оценка", func(t *testing.T) {
		handler := impl{store: &fakeStore{rec: nil}}

		_, err := handler.DivisionalReview("missing", models.HrAdminRole, appraisalapimodels.DivisionalReviewData{Decision: "approve", Signature: "sig"})
		require.Error(t, err)
		require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestFinalReview(t *testing.T) {
	setupNotifications()

	t.Run("доступно только HR", func(t *testing.T) {
		store := &fakeStore{rec: pendingAppraisal()}
		handler := impl{store: store}

		_, err := handler.FinalReview("appraisal-1", models.DivisionalHeadRole, appraisalapimodels.FinalReviewData{Decision: "renew", Signature: "sig"})
		require.Error(t, err)
		require.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("фиксирует решение и закрывает оценку", func(t *testing.T) {
		rec := pendingAppraisal()
		rec.Status = models.AppraisalStatusAwaitingHr
		store := &fakeStore{rec: rec}
		handler := impl{store: store}

		view, err := handler.FinalReview("appraisal-1", models.HrAdminRole, appraisalapimodels.FinalReviewData{
			Decision:       "renew",
			Recommendation: "extend contract",
			Signature:      "sig",
		})
		require.NoError(t, err)
		require.Equal(t, models.AppraisalStatusCompleted, view.Status)

		payload, ok := store.lastUpdMap["final_review"].(dbmodels.FinalReviewPayload)
		require.True(t, ok)
		require.Equal(t, "renew", payload.Decision)
		require.Equal(t, "extend contract", payload.Recommendation)
	})
}

func TestDuplicateRaceRecovery(t *testing.T) {
	t.Run("запись конкурента перечитывается и обновляется", func(t *testing.T) {
		raced := pendingAppraisal()
		store := &fakeStore{rec: raced, findRec: raced}
		handler := impl{store: store}

		recID, err := handler.adoptRaced(store, "emp-1", "cycle-1", "tpl-1", models.AppraisalStatusSubmitted,
			appraisalapimodels.AppraisalData{OverallScore: 4.5})
		require.NoError(t, err)
		require.Equal(t, "appraisal-1", recID)
		require.Equal(t, 4.5, store.lastUpdMap["overall_score"])
	})

	t.Run("отсутствие записи конкурента не маскируется", func(t *testing.T) {
		handler := impl{}
		_, err := handler.adoptRaced(&fakeStore{}, "emp-1", "cycle-1", "tpl-1", models.AppraisalStatusSubmitted,
			appraisalapimodels.AppraisalData{})
		require.Error(t, err)
	})

	t.Run("нарушение уникального индекса распознаётся по SQLSTATE", func(t *testing.T) {
		dup := errors.New(`duplicate key value violates unique constraint "idx_appraisal_identity" (SQLSTATE 23505)`)
		require.True(t, isUniqueViolation(dup))
		require.False(t, isUniqueViolation(errors.New("connection refused")))
	})
}

func TestGetByID(t *testing.T) {
	handler := impl{store: &fakeStore{rec: nil}}
	_, err := handler.GetByID("missing")
	require.Error(t, err)
	require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
