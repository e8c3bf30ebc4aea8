package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// StorageService uploads carousel images to an S3 bucket and answers
// existence checks for already-uploaded objects.
type StorageService struct {
	BucketName string
	Client     *s3.Client
}

// NewStorageService initializes the S3 storage service.
func NewStorageService(ctx context.Context, region, bucketName string) (*StorageService, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &StorageService{
		BucketName: bucketName,
		Client:     s3.NewFromConfig(cfg),
	}, nil
}

// UploadImage stores the file under a timestamped key and returns its public
// URL. The caller owns the file handle and closes it.
func (s *StorageService) UploadImage(ctx context.Context, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	key := fmt.Sprintf("%d%s", time.Now().UnixMilli(), path.Ext(fileHeader.Filename))

	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return s.publicURL(key), nil
}

// Exists reports whether the object an image URL points to is present in the
// bucket. Only the final path segment identifies the object, so URLs from
// older bucket hostnames still resolve.
func (s *StorageService) Exists(ctx context.Context, imageURL string) (bool, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || path.Base(parsed.Path) == "." || path.Base(parsed.Path) == "/" {
		return false, nil
	}
	key := path.Base(parsed.Path)

	_, err = s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object in S3: %w", err)
	}
	return true, nil
}

func (s *StorageService) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, key)
}
