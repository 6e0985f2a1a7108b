package dictapimodels

import (
	"appraisal-backend/lib/utils/apperror"
	dbmodels "appraisal-backend/models/db"
)

type CompetencyData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (r CompetencyData) Validate() error {
	if r.Name == "" {
		return apperror.Validation("name is required")
	}
	return nil
}

type CompetencyView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

func CompetencyConvert(rec dbmodels.Competency) CompetencyView {
	return CompetencyView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    rec.Category,
	}
}
