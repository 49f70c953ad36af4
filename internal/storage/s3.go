package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/infopontes/leishai-backend/internal/config"
)

// PhotoStore guarda fotos de animais. Implementação padrão usa S3;
// sem bucket configurado, uploads de foto respondem erro de negócio.
type PhotoStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Store(cfg *config.Config) *S3Store {
	if cfg.S3Bucket == "" {
		return nil
	}

	client := s3.New(s3.Options{
		Region: cfg.AWSRegion,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID, cfg.AWSSecretAccess, "",
			),
		),
	})

	return &S3Store{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.AWSRegion,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return url, nil
}
