package attachmenthandler

import (
	"bytes"
	"context"

	"github.com/google/uuid"

	"appraisal-backend/db"
	attachmentstore "appraisal-backend/lib/appraisal/attachment-store"
	appraisalstore "appraisal-backend/lib/appraisal/store"
	filestorage "appraisal-backend/lib/file-storage"
	"appraisal-backend/lib/utils/apperror"
	appraisalapimodels "appraisal-backend/models/api/appraisal"
	dbmodels "appraisal-backend/models/db"
)

type Provider interface {
	Upload(ctx context.Context, appraisalID, fileName, contentType string, body []byte) (view appraisalapimodels.AttachmentView, err error)
	List(appraisalID string) (list []appraisalapimodels.AttachmentView, err error)
	Download(ctx context.Context, attachmentID string) (body []byte, fileName string, err error)
	Delete(ctx context.Context, attachmentID string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          attachmentstore.NewInstance(db.DB),
		appraisalStore: appraisalstore.NewInstance(db.DB),
	}
}

type impl struct {
	store          attachmentstore.Provider
	appraisalStore appraisalstore.Provider
}

func (i impl) Upload(ctx context.Context, appraisalID, fileName, contentType string, body []byte) (view appraisalapimodels.AttachmentView, err error) {
	rec, err := i.appraisalStore.GetByID(appraisalID)
	if err != nil {
		return view, apperror.Dependency(err, "failed to get appraisal")
	}
	if rec == nil {
		return view, apperror.NotFound("appraisal not found")
	}
	if len(body) == 0 {
		return view, apperror.Validation("file body is required")
	}

	attachmentID := uuid.NewString()
	objectKey := filestorage.AttachmentObjectKey(appraisalID, attachmentID)
	err = filestorage.Instance.UploadFile(ctx, objectKey, contentType, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return view, apperror.Dependency(err, "failed to store file")
	}

	attachment := dbmodels.AppraisalAttachment{
		AppraisalID: appraisalID,
		FileName:    fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        int64(len(body)),
	}
	attachment.ID = attachmentID
	id, err := i.store.Create(attachment)
	if err != nil {
		return view, apperror.Dependency(err, "failed to save attachment record")
	}
	saved, err := i.store.GetByID(id)
	if err != nil || saved == nil {
		return view, apperror.Dependency(err, "failed to reload attachment record")
	}
	return appraisalapimodels.AttachmentConvert(*saved), nil
}

func (i impl) List(appraisalID string) (list []appraisalapimodels.AttachmentView, err error) {
	recList, err := i.store.ListByAppraisal(appraisalID)
	if err != nil {
		return nil, apperror.Dependency(err, "failed to list attachments")
	}
	list = make([]appraisalapimodels.AttachmentView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, appraisalapimodels.AttachmentConvert(rec))
	}
	return list, nil
}

func (i impl) Download(ctx context.Context, attachmentID string) (body []byte, fileName string, err error) {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return nil, "", apperror.Dependency(err, "failed to get attachment record")
	}
	if rec == nil {
		return nil, "", apperror.NotFound("attachment not found")
	}
	body, err = filestorage.Instance.GetFile(ctx, rec.ObjectKey)
	if err != nil {
		return nil, "", apperror.Dependency(err, "failed to read file")
	}
	return body, rec.FileName, nil
}

func (i impl) Delete(ctx context.Context, attachmentID string) error {
	rec, err := i.store.GetByID(attachmentID)
	if err != nil {
		return apperror.Dependency(err, "failed to get attachment record")
	}
	if rec == nil {
		return apperror.NotFound("attachment not found")
	}
	if err = filestorage.Instance.RemoveFile(ctx, rec.ObjectKey); err != nil {
		return apperror.Dependency(err, "failed to remove file")
	}
	if err = i.store.Delete(attachmentID); err != nil {
		return apperror.Dependency(err, "failed to delete attachment record")
	}
	return nil
}
