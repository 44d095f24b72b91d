package contracts

import (
	"context"
	"io"
)

type Storage interface {
	UploadFile(ctx context.Context, bucketName, objectName string, file io.Reader, size int64, contentType string) (string, error)
}
