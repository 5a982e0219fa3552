package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client archives uploaded flyer images and their raw OCR text.
type S3Client struct {
	client     *s3.Client
	bucketName string
	region     string
}

// S3Config holds configuration for the S3 client.
type S3Config struct {
	BucketName string
	Region     string
	Profile    string // AWS profile to use
}

// S3UploadResult represents the result of an S3 upload operation.
type S3UploadResult struct {
	Key         string    `json:"key"`
	ETag        string    `json:"etag"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ContentType string    `json:"content_type"`
	PublicURL   string    `json:"public_url"`
}

// NewS3Client creates an S3 client for the given bucket.
func NewS3Client(bucketName string) (*S3Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Client{
		client:     s3.NewFromConfig(cfg),
		bucketName: bucketName,
		region:     cfg.Region,
	}, nil
}

// NewS3ClientWithConfig creates an S3 client with custom configuration.
func NewS3ClientWithConfig(s3Config S3Config) (*S3Client, error) {
	var cfg aws.Config
	var err error

	if s3Config.Profile != "" {
		cfg, err = config.LoadDefaultConfig(
			context.TODO(),
			config.WithSharedConfigProfile(s3Config.Profile),
		)
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if s3Config.Region != "" {
		cfg.Region = s3Config.Region
	}

	return &S3Client{
		client:     s3.NewFromConfig(cfg),
		bucketName: s3Config.BucketName,
		region:     cfg.Region,
	}, nil
}

// UploadFlyerImage archives the original flyer image under the scan's key.
func (s *S3Client) UploadFlyerImage(ctx context.Context, scanID string, imageBytes []byte, contentType string) (*S3UploadResult, error) {
	key := fmt.Sprintf("flyers/%s/original%s", scanID, extensionFor(contentType))
	return s.upload(ctx, key, imageBytes, contentType)
}

// UploadRawText archives the OCR text alongside the flyer image, so a scan
// can be re-extracted later without another OCR call.
func (s *S3Client) UploadRawText(ctx context.Context, scanID, rawText string) (*S3UploadResult, error) {
	key := fmt.Sprintf("flyers/%s/ocr.txt", scanID)
	return s.upload(ctx, key, []byte(rawText), "text/plain; charset=utf-8")
}

func (s *S3Client) upload(ctx context.Context, key string, data []byte, contentType string) (*S3UploadResult, error) {
	result, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	etag := ""
	if result.ETag != nil {
		etag = *result.ETag
	}

	return &S3UploadResult{
		Key:         key,
		ETag:        etag,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
		ContentType: contentType,
		PublicURL:   s.GetPublicURL(key),
	}, nil
}

// DeleteFlyer removes every archived object for a scan.
func (s *S3Client) DeleteFlyer(ctx context.Context, scanID string) error {
	prefix := fmt.Sprintf("flyers/%s/", scanID)

	listing, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return fmt.Errorf("failed to list flyer objects: %w", err)
	}

	for _, object := range listing.Contents {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucketName),
			Key:    object.Key,
		})
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", aws.ToString(object.Key), err)
		}
	}

	return nil
}

// GetPublicURL returns the public URL for a stored object.
func (s *S3Client) GetPublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)
}

// GetBucketName returns the configured bucket.
func (s *S3Client) GetBucketName() string {
	return s.bucketName
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ".bin"
	}
}
