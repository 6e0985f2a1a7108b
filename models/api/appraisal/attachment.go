package appraisalapimodels

import (
	"time"

	dbmodels "appraisal-backend/models/db"
)

type AttachmentView struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

func AttachmentConvert(rec dbmodels.AppraisalAttachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		FileName:    rec.FileName,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		CreatedAt:   rec.CreatedAt,
	}
}
