package dbmodels

// AppraisalCompetency — связка оценки с компетенцией.
// Ровно три строки на оценку, пока оценка в статусе DRAFT.
type AppraisalCompetency struct {
	BaseModel
	AppraisalID  string      `gorm:"type:varchar(36);uniqueIndex:idx_appraisal_competency"`
	CompetencyID string      `gorm:"type:varchar(36);uniqueIndex:idx_appraisal_competency"`
	Competency   *Competency `gorm:"foreignKey:CompetencyID"`
}
