package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"chatrelay/internal/pkg/logx"
)

// s3Store implements BlobStore against any S3-compatible endpoint.
type s3Store struct {
	cfg      ServiceConfig
	client   *s3.Client
	uploader *manager.Uploader
}

var _ BlobStore = (*s3Store)(nil)

// newS3Store builds the client with static credentials and a custom endpoint.
func newS3Store(cfg ServiceConfig) (*s3Store, error) {
	sdkCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		logx.Error(err, "failed to load AWS SDK config")
		return nil, errors.New("failed to initialize blob store configuration")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Store{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, key string, contentType string, content io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      &s.cfg.S3BucketName,
		Key:         &key,
		ContentType: &contentType,
		Body:        content,
	})
	if err != nil {
		logx.Error(err, "blob upload failed", "key", key)
		return "", errors.New("failed to store uploaded file")
	}

	return s.URL(key), nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.cfg.S3BucketName,
		Key:    &key,
	})
	if err != nil {
		logx.Error(err, "blob delete failed", "key", key)
		return errors.New("failed to delete stored file")
	}

	return nil
}

func (s *s3Store) URL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.S3Endpoint, "/"), s.cfg.S3BucketName, key)
}
