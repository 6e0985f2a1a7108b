package dbmodels

// AppraisalAttachment — метаданные файла в S3 (подписанная форма и тп).
type AppraisalAttachment struct {
	BaseModel
	AppraisalID string `gorm:"type:varchar(36);index"`
	FileName    string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(512)"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64
}
