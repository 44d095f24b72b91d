package storage

import (
	"context"
	"io"
	"mindhaven-service/internal/app/contracts"
	"mindhaven-service/internal/pkg/constvars"
	"mindhaven-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// objectPutter is the subset of *minio.Client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioStorage struct {
	client objectPutter
	log    *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, log *zap.Logger) contracts.Storage {
	return &minioStorage{
		client: minioClient,
		log:    log,
	}
}

// UploadFile stores file under objectName and returns the object name.
func (m *minioStorage) UploadFile(ctx context.Context, bucketName, objectName string, file io.Reader, size int64, contentType string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	info, err := m.client.PutObject(ctx, bucketName, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		m.log.Error("minioStorage.UploadFile error putting object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucketName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, bucketName)
	}

	m.log.Info("minioStorage.UploadFile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, bucketName),
		zap.String("object", info.Key),
		zap.Int64("size", info.Size),
	)
	return objectName, nil
}
