package providers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// TemplatePublisher uploads the role template to the public bucket the
// console launch link points at.
type TemplatePublisher struct {
	client S3Client
}

// NewTemplatePublisher creates a publisher using the caller's AWS configuration
func NewTemplatePublisher(ctx context.Context, creds AWSCredentials) (*TemplatePublisher, error) {
	cfg, err := LoadAWSConfig(ctx, creds)
	if err != nil {
		return nil, err
	}
	return NewTemplatePublisherWithClient(s3.NewFromConfig(cfg)), nil
}

// NewTemplatePublisherWithClient creates a publisher from an explicit client
func NewTemplatePublisherWithClient(client S3Client) *TemplatePublisher {
	return &TemplatePublisher{client: client}
}

// Publish uploads body to bucket/key and returns its path-style URL
func (p *TemplatePublisher) Publish(ctx context.Context, bucket, key string, body []byte) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key are required")
	}

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("text/yaml"),
		CacheControl: aws.String("max-age=300"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload template to s3://%s/%s: %w", bucket, key, err)
	}

	return fmt.Sprintf("https://s3.amazonaws.com/%s/%s", bucket, key), nil
}
