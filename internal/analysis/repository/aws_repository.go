package repository

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mamadousow/clipsentry/internal/analysis"
)

type awsRepository struct {
	client        *s3.Client
	preSignClient *s3.PresignClient
	bucket        string
}

func NewAwsRepository(awsClient *s3.Client, preSignClient *s3.PresignClient, bucket string) analysis.ArchiveRepository {
	return &awsRepository{
		client:        awsClient,
		preSignClient: preSignClient,
		bucket:        bucket,
	}
}

func (a *awsRepository) PutObject(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := a.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:      &a.bucket,
			Key:         &key,
			ContentType: &contentType,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload file : %w", err)
	}
	return nil
}

func (a *awsRepository) RemoveObject(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to remove file : %w", err)
	}
	return nil
}

func (a *awsRepository) GetPresignedURL(ctx context.Context, key string) (string, error) {
	getObjectReq, err := a.preSignClient.PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: &a.bucket,
			Key:    &key,
		},
		s3.WithPresignExpires(60*time.Minute),
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign get object : %w", err)
	}
	return getObjectReq.URL, nil
}
