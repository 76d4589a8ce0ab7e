package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// MaxImageSize is the largest accepted upload, in bytes.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores uploaded images in S3
type ImageService struct {
	client    ObjectPutter
	bucket    string
	publicURL func(key string) string
}

// NewImageService creates an ImageService backed by s3Config. A nil config
// yields a service whose uploads fail with config.ErrStorageDisabled.
func NewImageService(s3Config *config.S3Config) *ImageService {
	if s3Config == nil {
		return &ImageService{}
	}
	return &ImageService{
		client:    s3Config.Client,
		bucket:    s3Config.BucketName,
		publicURL: s3Config.PublicURL,
	}
}

// NewImageServiceWithClient builds an ImageService around any ObjectPutter.
func NewImageServiceWithClient(client ObjectPutter, bucket string, publicURL func(string) string) *ImageService {
	return &ImageService{client: client, bucket: bucket, publicURL: publicURL}
}

// Enabled reports whether a bucket is configured.
func (s *ImageService) Enabled() bool {
	return s.client != nil && s.bucket != ""
}

// UploadImage validates data and stores it under images/<uuid>.<ext>,
// returning the object's public URL.
func (s *ImageService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if !s.Enabled() {
		return "", config.ErrStorageDisabled
	}
	if len(data) == 0 {
		return "", types.NewValidationError("image is required")
	}
	if len(data) > MaxImageSize {
		return "", types.NewValidationError("image must be at most 5 MB")
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", types.NewValidationError("image must be a JPEG, PNG, WebP or GIF file")
	}

	key := fmt.Sprintf("images/%s.%s", uuid.New(), ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.publicURL(key)
	slog.Info("image uploaded", "key", key, "bytes", len(data))
	return url, nil
}
