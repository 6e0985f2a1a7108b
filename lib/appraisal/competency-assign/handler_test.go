package competencyassign

import (
	"testing"

	"github.com/stretchr/testify/require"

	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"
)

type fakeAppraisalStore struct {
	rec      *dbmodels.AppraisalInstance
	getCalls int
}

func (s *fakeAppraisalStore) Create(rec dbmodels.AppraisalInstance) (string, error) { return "", nil }

func (s *fakeAppraisalStore) GetByID(id string) (*dbmodels.AppraisalInstance, error) {
	s.getCalls++
	return s.rec, nil
}

func (s *fakeAppraisalStore) Find(employeeID, cycleID, templateID string, status models.AppraisalStatus) (*dbmodels.AppraisalInstance, error) {
	return nil, nil
}

func (s *fakeAppraisalStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (s *fakeAppraisalStore) Delete(id string) error { return nil }

func (s *fakeAppraisalStore) List(filter appraisalapimodels.AppraisalFilter) ([]dbmodels.AppraisalInstance, error) {
	return nil, nil
}

func (s *fakeAppraisalStore) ListCount(filter appraisalapimodels.AppraisalFilter) (int64, error) {
	return 0, nil
}

func (s *fakeAppraisalStore) ListDraftsOlderThan(days int) ([]dbmodels.AppraisalInstance, error) {
	return nil, nil
}

type fakeCompetencyStore struct {
	knownCount int64
	countCalls int
}

func (s *fakeCompetencyStore) Create(rec dbmodels.Competency) (string, error) { return "", nil }

func (s *fakeCompetencyStore) GetByID(id string) (*dbmodels.Competency, error) { return nil, nil }

func (s *fakeCompetencyStore) List() ([]dbmodels.Competency, error) { return nil, nil }

func (s *fakeCompetencyStore) CountByIDs(ids []string) (int64, error) {
	s.countCalls++
	return s.knownCount, nil
}

func (s *fakeCompetencyStore) Delete(id string) error { return nil }

func draftAppraisal() *dbmodels.AppraisalInstance {
	rec := &dbmodels.AppraisalInstance{Status: models.AppraisalStatusDraft}
	rec.ID = "appraisal-1"
	return rec
}

func TestAssignValidationOrder(t *testing.T) {
	t.Run("неверное количество отклоняется до обращения к хранилищу", func(t *testing.T) {
		appraisals := &fakeAppraisalStore{rec: draftAppraisal()}
		handler := impl{appraisalStore: appraisals, competencyStore: &fakeCompetencyStore{}}

		_, err := handler.Assign("appraisal-1", []string{"c1", "c2"})
		require.Error(t, err)
		require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		require.Equal(t, "Exactly 3 competencies required.", err.Error())
		require.Equal(t, 0, appraisals.getCalls)
	})

	t.Run("дубликаты схлопываются перед проверкой количества", func(t *testing.T) {
		handler := impl{appraisalStore: &fakeAppraisalStore{}, competencyStore: &fakeCompetencyStore{}}

		_, err := handler.Assign("appraisal-1", []string{"c1", "c1", "c2", "c2"})
		require.Error(t, err)
		require.Equal(t, "Exactly 3 competencies required.", err.Error())
	})

	t.Run("несуществующая оценка", func(t *testing.T) {
		handler := impl{appraisalStore: &fakeAppraisalStore{rec: nil}, competencyStore: &fakeCompetencyStore{}}

		_, err := handler.Assign("missing", []string{"c1", "c2", "c3"})
		require.Error(t, err)
		require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("не черновик отклоняется до проверки компетенций", func(t *testing.T) {
		rec := draftAppraisal()
		rec.Status = models.AppraisalStatusSubmitted
		competencies := &fakeCompetencyStore{knownCount: 3}
		handler := impl{appraisalStore: &fakeAppraisalStore{rec: rec}, competencyStore: competencies}

		_, err := handler.Assign("appraisal-1", []string{"c1", "c2", "c3"})
		require.Error(t, err)
		require.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		require.Equal(t, "Cannot modify competencies after submission.", err.Error())
		require.Equal(t, 0, competencies.countCalls)
	})

	t.Run("неизвестные компетенции", func(t *testing.T) {
		competencies := &fakeCompetencyStore{knownCount: 2}
		handler := impl{appraisalStore: &fakeAppraisalStore{rec: draftAppraisal()}, competencyStore: competencies}

		_, err := handler.Assign("appraisal-1", []string{"c1", "c2", "ghost"})
		require.Error(t, err)
		require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		require.Equal(t, "Invalid competency IDs.", err.Error())
		require.Equal(t, 1, competencies.countCalls)
	})
}

func TestDistinctIDs(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, distinctIDs([]string{"a", "b", "a", ""}))
	require.Empty(t, distinctIDs(nil))
	// порядок первого вхождения сохраняется
	require.Equal(t, []string{"c", "b", "a"}, distinctIDs([]string{"c", "b", "c", "a"}))
}
