// Package storage publishes merged recordings to S3-compatible object storage.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/config"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/observability"
)

const uploadContentType = "video/mp4"

// ObjectPutter is the subset of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader publishes local files under {session}/{folderType}/{basename}
// and removes the local copy once the object is stored.
type S3Uploader struct {
	client ObjectPutter
	bucket string
	logger *slog.Logger
}

// NewS3Uploader builds an uploader from static credentials in cfg. When no
// access key is configured, the default AWS credential chain is used.
func NewS3Uploader(ctx context.Context, cfg config.UploadConfig, logger *slog.Logger) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("upload bucket is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &S3Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		logger: observability.WithComponent(logger, "storage"),
	}, nil
}

// NewS3UploaderWithClient builds an uploader around an existing client.
func NewS3UploaderWithClient(client ObjectPutter, bucket string, logger *slog.Logger) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: bucket,
		logger: observability.WithComponent(logger, "storage"),
	}
}

// Upload stores localPath in the bucket and returns the public object URL.
// The local file is deleted after a successful upload.
func (u *S3Uploader) Upload(ctx context.Context, localPath, sessionID, streamFolder string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%s/%s", sessionID, streamFolder, filepath.Base(localPath))

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(uploadContentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)

	u.logger.Info("uploaded recording",
		slog.String("key", key),
		slog.String("url", url))

	// The merged file is no longer needed locally. A failed remove is not an
	// upload failure; the object is already stored.
	if err := os.Remove(localPath); err != nil {
		u.logger.Warn("failed to remove local file after upload",
			slog.String("path", localPath),
			slog.Any("error", err))
	}

	return url, nil
}
