package cascade

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/models"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"
)

type fakeAppraisalStore struct {
	rec     *dbmodels.AppraisalInstance
	deleted bool
}

func (s *fakeAppraisalStore) Create(rec dbmodels.AppraisalInstance) (string, error) { return "", nil }

func (s *fakeAppraisalStore) GetByID(id string) (*dbmodels.AppraisalInstance, error) {
	return s.rec, nil
}

func (s *fakeAppraisalStore) Find(employeeID, cycleID, templateID string, status models.AppraisalStatus) (*dbmodels.AppraisalInstance, error) {
	return nil, nil
}

func (s *fakeAppraisalStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (s *fakeAppraisalStore) Delete(id string) error {
	s.deleted = true
	return nil
}

func (s *fakeAppraisalStore) List(filter appraisalapimodels.AppraisalFilter) ([]dbmodels.AppraisalInstance, error) {
	return nil, nil
}

func (s *fakeAppraisalStore) ListCount(filter appraisalapimodels.AppraisalFilter) (int64, error) {
	return 0, nil
}

func (s *fakeAppraisalStore) ListDraftsOlderThan(days int) ([]dbmodels.AppraisalInstance, error) {
	return nil, nil
}

// fakeChildStore покрывает все дочерние хранилища каскада.
type fakeChildStore struct {
	failDelete bool
	deleted    bool
}

func (s *fakeChildStore) DeleteByAppraisal(appraisalID string) error {
	if s.failDelete {
		return errors.New("delete failed")
	}
	s.deleted = true
	return nil
}

func (s *fakeChildStore) Create(rec dbmodels.SectionInstance) (string, error) { return "", nil }

func (s *fakeChildStore) ListByAppraisal(appraisalID string) ([]dbmodels.SectionInstance, error) {
	return nil, nil
}

func (s *fakeChildStore) Update(id string, updMap map[string]interface{}) error { return nil }

type fakeResponseStore struct{ fakeChildStore }

func (s *fakeResponseStore) Create(rec dbmodels.FreeTextResponse) (string, error) { return "", nil }

func (s *fakeResponseStore) ListByAppraisal(appraisalID string) ([]dbmodels.FreeTextResponse, error) {
	return nil, nil
}

type fakeGoalStore struct{ fakeChildStore }

func (s *fakeGoalStore) Create(rec dbmodels.Goal) (string, error) { return "", nil }

func (s *fakeGoalStore) ListByAppraisal(appraisalID string) ([]dbmodels.Goal, error) {
	return nil, nil
}

type fakeCompetencyStore struct{ fakeChildStore }

func (s *fakeCompetencyStore) CreateBatch(recs []dbmodels.AppraisalCompetency) error { return nil }

func (s *fakeCompetencyStore) ListByAppraisal(appraisalID string) ([]dbmodels.AppraisalCompetency, error) {
	return nil, nil
}

type fakeAttachmentStore struct{ fakeChildStore }

func (s *fakeAttachmentStore) Create(rec dbmodels.AppraisalAttachment) (string, error) {
	return "", nil
}

func (s *fakeAttachmentStore) GetByID(id string) (*dbmodels.AppraisalAttachment, error) {
	return nil, nil
}

func (s *fakeAttachmentStore) ListByAppraisal(appraisalID string) ([]dbmodels.AppraisalAttachment, error) {
	return nil, nil
}

func (s *fakeAttachmentStore) Delete(id string) error { return nil }

type fixture struct {
	handler      impl
	appraisals   *fakeAppraisalStore
	sections     *fakeChildStore
	responses    *fakeResponseStore
	goals        *fakeGoalStore
	competencies *fakeCompetencyStore
	attachments  *fakeAttachmentStore
}

func newFixture(rec *dbmodels.AppraisalInstance) *fixture {
	f := &fixture{
		appraisals:   &fakeAppraisalStore{rec: rec},
		sections:     &fakeChildStore{},
		responses:    &fakeResponseStore{},
		goals:        &fakeGoalStore{},
		competencies: &fakeCompetencyStore{},
		attachments:  &fakeAttachmentStore{},
	}
	f.handler = impl{
		appraisalStore:  f.appraisals,
		sectionStore:    f.sections,
		responseStore:   f.responses,
		goalStore:       f.goals,
		competencyStore: f.competencies,
		attachmentStore: f.attachments,
	}
	return f
}

func existingAppraisal() *dbmodels.AppraisalInstance {
	rec := &dbmodels.AppraisalInstance{Status: models.AppraisalStatusCompleted}
	rec.ID = "appraisal-1"
	return rec
}

func TestCascadeDelete(t *testing.T) {
	t.Run("доступно только HR", func(t *testing.T) {
		f := newFixture(existingAppraisal())

		err := f.handler.Delete(context.Background(), "appraisal-1", models.ManagerRole)
		require.Error(t, err)
		require.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		require.False(t, f.sections.deleted)
		require.False(t, f.appraisals.deleted)
	})

	t.Run("несуществующая оценка", func(t *testing.T) {
		f := newFixture(nil)

		err := f.handler.Delete(context.Background(), "missing", models.HrAdminRole)
		require.Error(t, err)
		require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("полный каскад без связанных записей", func(t *testing.T) {
		f := newFixture(existingAppraisal())

		err := f.handler.Delete(context.Background(), "appraisal-1", models.HrAdminRole)
		require.NoError(t, err)
		require.True(t, f.sections.deleted)
		require.True(t, f.responses.deleted)
		require.True(t, f.goals.deleted)
		require.True(t, f.competencies.deleted)
		require.True(t, f.appraisals.deleted)
	})

	t.Run("жёсткий сбой шага останавливает каскад", func(t *testing.T) {
		f := newFixture(existingAppraisal())
		f.responses.failDelete = true

		err := f.handler.Delete(context.Background(), "appraisal-1", models.HrAdminRole)
		require.Error(t, err)
		require.Equal(t, apperror.KindDependency, apperror.KindOf(err))
		require.Contains(t, err.Error(), "failed to delete responses")
		// секции уже удалены, запись оценки осталась
		require.True(t, f.sections.deleted)
		require.False(t, f.goals.deleted)
		require.False(t, f.appraisals.deleted)
	})

	t.Run("сбой удаления компетенций не мешает каскаду", func(t *testing.T) {
		f := newFixture(existingAppraisal())
		f.competencies.failDelete = true

		err := f.handler.Delete(context.Background(), "appraisal-1", models.HrAdminRole)
		require.NoError(t, err)
		require.True(t, f.appraisals.deleted)
	})
}
