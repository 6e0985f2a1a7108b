package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"appraisal-backend/config"
)

// Provider — хранилище вложений оценок (S3).
type Provider interface {
	EnsureBucket(ctx context.Context) error
	UploadFile(ctx context.Context, objectKey, contentType string, fileReader io.Reader, fileSize int64) error
	GetFile(ctx context.Context, objectKey string) ([]byte, error)
	RemoveFile(ctx context.Context, objectKey string) error
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) EnsureBucket(ctx context.Context) error {
	bucketName := config.Conf.S3.BucketName
	exists, err := i.s3client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UploadFile(ctx context.Context, objectKey, contentType string, fileReader io.Reader, fileSize int64) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectKey, fileReader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "ошибка загрузки объекта %v", objectKey)
	}
	return nil
}

func (i impl) GetFile(ctx context.Context, objectKey string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения объекта %v", objectKey)
	}
	defer object.Close()
	buf := new(bytes.Buffer)
	if _, err = io.Copy(buf, object); err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения объекта %v", objectKey)
	}
	return buf.Bytes(), nil
}

func (i impl) RemoveFile(ctx context.Context, objectKey string) error {
	err := i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrapf(err, "ошибка удаления объекта %v", objectKey)
	}
	return nil
}

// AttachmentObjectKey — ключ объекта в бакете вложений.
func AttachmentObjectKey(appraisalID, attachmentID string) string {
	return fmt.Sprintf("appraisals/%s/%s", appraisalID, attachmentID)
}
