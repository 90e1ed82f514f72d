package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectPutter is the subset of *minio.Client the exporter needs.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinioExporter uploads charts to MinIO or any S3-compatible store.
type MinioExporter struct {
	client objectPutter
	bucket string
	prefix string
}

// NewMinioClient dials an S3-compatible endpoint with static credentials.
func NewMinioClient(endpoint, accessKey, secretKey string, useSSL bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client %s: %w", endpoint, err)
	}
	return client, nil
}

func NewMinioExporter(client objectPutter, bucket, prefix string) (*MinioExporter, error) {
	if client == nil {
		return nil, errors.New("minio export: client is nil")
	}
	if bucket == "" {
		return nil, errors.New("minio export: bucket is empty")
	}
	return &MinioExporter{client: client, bucket: bucket, prefix: prefix}, nil
}

func (e *MinioExporter) Export(ctx context.Context, name, format string, data []byte) (_ string, err error) {
	defer func() { observe("minio", err) }()

	key, err := objectKey(e.prefix, name, format)
	if err != nil {
		return "", fmt.Errorf("minio export: %w", err)
	}

	info, err := e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType(format),
	})
	if err != nil {
		return "", fmt.Errorf("minio export %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", info.Bucket, info.Key), nil
}
