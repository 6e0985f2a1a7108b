package appraisalapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"

	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/models"
)

func TestAppraisalDataValidate(t *testing.T) {
	valid := AppraisalData{
		EmployeeID:   "E1",
		CycleID:      "cycle-1",
		TemplateType: "ANNUAL",
		Status:       "submitted",
	}

	t.Run("полный запрос проходит", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("без employeeId", func(t *testing.T) {
		data := valid
		data.EmployeeID = ""
		err := data.Validate()
		require.Error(t, err)
		require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("без cycleId", func(t *testing.T) {
		data := valid
		data.CycleID = ""
		err := data.Validate()
		require.Error(t, err)
		require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		require.Contains(t, err.Error(), "cycleId is required")
	})

	t.Run("без templateType", func(t *testing.T) {
		data := valid
		data.TemplateType = ""
		err := data.Validate()
		require.Error(t, err)
		require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		data := valid
		data.Status = "reopened"
		err := data.Validate()
		require.Error(t, err)
		require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("пустой статус означает черновик", func(t *testing.T) {
		data := valid
		data.Status = ""
		require.NoError(t, data.Validate())
		require.Equal(t, models.AppraisalStatusDraft, data.GetStatus())
	})
}
