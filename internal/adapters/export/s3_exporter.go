package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Exporter uploads charts to an S3 bucket through the transfer manager.
type S3Exporter struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

// NewS3Exporter accepts an *s3.Client or anything implementing the upload API.
func NewS3Exporter(client manager.UploadAPIClient, bucket, prefix string) (*S3Exporter, error) {
	if client == nil {
		return nil, errors.New("s3 export: client is nil")
	}
	if bucket == "" {
		return nil, errors.New("s3 export: bucket is empty")
	}
	return &S3Exporter{
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = 8 * 1024 * 1024
			u.Concurrency = 2
		}),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (e *S3Exporter) Export(ctx context.Context, name, format string, data []byte) (_ string, err error) {
	defer func() { observe("s3", err) }()

	key, err := objectKey(e.prefix, name, format)
	if err != nil {
		return "", fmt.Errorf("s3 export: %w", err)
	}

	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(format)),
	})
	if err != nil {
		return "", fmt.Errorf("s3 export %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
