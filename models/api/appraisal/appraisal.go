package appraisalapimodels

import (
	"time"

	"appraisal-backend/lib/utils/apperror"
	"appraisal-backend/models"
	apimodels "appraisal-backend/models/api"
	dbmodels "appraisal-backend/models/db"
)

// AppraisalData — тело create-or-update запроса.
// EmployeeID — внешний идентификатор сотрудника из справочника.
type AppraisalData struct {
	EmployeeID     string                          `json:"employeeId"`
	CycleID        string                          `json:"cycleId"`
	TemplateType   string                          `json:"templateType"`
	Status         string                          `json:"status"`
	SelfAssessment *dbmodels.SelfAssessmentPayload `json:"selfAssessment,omitempty"`
	ManagerReview  *dbmodels.ManagerReviewPayload  `json:"managerReview,omitempty"`
	OverallScore   float64                         `json:"overallScore,omitempty"`
}

func (r AppraisalData) Validate() error {
	if r.EmployeeID == "" {
		return apperror.Validation("employeeId is required")
	}
	if r.CycleID == "" {
		return apperror.Validation("cycleId is required")
	}
	if r.TemplateType == "" {
		return apperror.Validation("templateType is required")
	}
	if _, ok := models.ParseTemplateType(r.TemplateType); !ok {
		return apperror.Validation("unknown templateType")
	}
	if r.Status != "" {
		if _, ok := models.ParseAppraisalStatus(r.Status); !ok {
			return apperror.Validation("unknown status")
		}
	}
	return nil
}

// GetStatus — статус по умолчанию DRAFT.
func (r AppraisalData) GetStatus() models.AppraisalStatus {
	if r.Status == "" {
		return models.AppraisalStatusDraft
	}
	status, _ := models.ParseAppraisalStatus(r.Status)
	return status
}

type DivisionalReviewData struct {
	Decision  string `json:"decision"`
	Comments  string `json:"comments"`
	Signature string `json:"signature"`
	Status    string `json:"status"`
}

func (r DivisionalReviewData) Validate() error {
	if r.Decision == "" {
		return apperror.Validation("decision is required")
	}
	if r.Signature == "" {
		return apperror.Validation("signature is required")
	}
	if r.Status != "" {
		if _, ok := models.ParseAppraisalStatus(r.Status); !ok {
			return apperror.Validation("unknown status")
		}
	}
	return nil
}

type FinalReviewData struct {
	Decision       string `json:"decision"`
	Recommendation string `json:"recommendation"`
	Signature      string `json:"signature"`
}

func (r FinalReviewData) Validate() error {
	if r.Decision == "" {
		return apperror.Validation("decision is required")
	}
	if r.Signature == "" {
		return apperror.Validation("signature is required")
	}
	return nil
}

type CompetencyAssignData struct {
	CompetencyIDs []string `json:"competencyIds"`
}

// AppraisalFilter — параметры чтения списков (query string).
type AppraisalFilter struct {
	Page         int    `json:"page" query:"page"`
	Limit        int    `json:"limit" query:"limit"`
	EmployeeID   string `json:"employee_id" query:"employee_id"`
	SupervisorID string `json:"supervisor_id" query:"supervisor_id"`
	CycleID      string `json:"cycle_id" query:"cycle_id"`
	Status       string `json:"status" query:"status"` // явный фильтр отключает исключение SELF_EVALUATION
}

func (r AppraisalFilter) GetPage() (page, limit int) {
	return apimodels.Pagination{Page: r.Page, Limit: r.Limit}.GetPage()
}

func (r AppraisalFilter) Validate() error {
	if r.Status != "" {
		if _, ok := models.ParseAppraisalStatus(r.Status); !ok {
			return apperror.Validation("unknown status")
		}
	}
	return nil
}

type AppraisalView struct {
	ID               string                           `json:"id"`
	EmployeeID       string                           `json:"employee_id"`
	EmployeeName     string                           `json:"employee_name,omitempty"`
	CycleID          string                           `json:"cycle_id"`
	CycleName        string                           `json:"cycle_name,omitempty"`
	TemplateType     models.TemplateType              `json:"template_type,omitempty"`
	Status           models.AppraisalStatus           `json:"status"`
	OverallScore     float64                          `json:"overall_score"`
	SelfAssessment   dbmodels.SelfAssessmentPayload   `json:"self_assessment"`
	ManagerReview    dbmodels.ManagerReviewPayload    `json:"manager_review"`
	DivisionalReview dbmodels.DivisionalReviewPayload `json:"divisional_review"`
	FinalReview      dbmodels.FinalReviewPayload      `json:"final_review"`
	Competencies     []CompetencyView                 `json:"competencies,omitempty"`
	CreatedAt        time.Time                        `json:"created_at"`
	UpdatedAt        time.Time                        `json:"updated_at"`
}

type CompetencyView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

func AppraisalConvert(rec dbmodels.AppraisalInstance) AppraisalView {
	view := AppraisalView{
		ID:               rec.ID,
		EmployeeID:       rec.EmployeeID,
		CycleID:          rec.CycleID,
		Status:           rec.Status,
		OverallScore:     rec.OverallScore,
		SelfAssessment:   rec.SelfAssessment,
		ManagerReview:    rec.ManagerReview,
		DivisionalReview: rec.DivisionalReview,
		FinalReview:      rec.FinalReview,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
	if rec.Employee != nil {
		view.EmployeeName = rec.Employee.GetFullName()
	}
	if rec.Cycle != nil {
		view.CycleName = rec.Cycle.Name
	}
	if rec.Template != nil {
		view.TemplateType = rec.Template.TemplateType
	}
	for _, c := range rec.Competencies {
		cv := CompetencyView{ID: c.CompetencyID}
		if c.Competency != nil {
			cv.Name = c.Competency.Name
			cv.Category = c.Competency.Category
		}
		view.Competencies = append(view.Competencies, cv)
	}
	return view
}
