package dbmodels

type FreeTextResponse struct {
	BaseModel
	AppraisalID string `gorm:"type:varchar(36);index"`
	Question    string
	Answer      string
}
