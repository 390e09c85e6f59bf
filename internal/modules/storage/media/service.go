// Package media uploads editorial images to an S3-compatible bucket and
// hands back public URLs for use in content image fields.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/terravita/core/internal/config"
)

type Service struct {
	client *s3.Client
	cfg    config.S3Config
}

func NewService(cfg config.S3Config) (*Service, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Service{client: client, cfg: cfg}, nil
}

// Upload stores the file under a date-partitioned random key and returns
// its public URL. The original filename only contributes the extension.
func (s *Service) Upload(ctx context.Context, filename, contentType string, body io.Reader, size int64) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("media/%s/%s%s", time.Now().Format("2006/01"), uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *Service) publicURL(key string) string {
	if s.cfg.CustomDomain != "" {
		return strings.TrimSuffix(s.cfg.CustomDomain, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return strings.TrimSuffix(s.cfg.Endpoint, "/") + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
