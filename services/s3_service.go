package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appConfig "github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/utils"
)

// MediaAsset identifies an uploaded file on the media host: a stable public
// URL for clients plus the opaque key needed to delete it later
type MediaAsset struct {
	URL string `json:"url"`
	Key string `json:"public_id"`
}

// S3Interface defines the interface for media storage operations
type S3Interface interface {
	UploadFile(fileHeader *multipart.FileHeader, folder string) (MediaAsset, error)
	DeleteFile(key string) error
}

// S3Service handles all S3-related operations
type S3Service struct {
	client *s3.Client
	bucket string
	region string
}

var s3ServiceInstance S3Interface

// InitS3Service initializes the S3 service with AWS credentials
func InitS3Service() (S3Interface, error) {
	cfg := appConfig.GetConfig()

	// Load AWS configuration with explicit options
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	s3ServiceInstance = &S3Service{
		client: client,
		bucket: cfg.AWSS3Bucket,
		region: cfg.AWSRegion,
	}

	return s3ServiceInstance, nil
}

// GetS3Service returns the initialized S3 service instance
func GetS3Service() S3Interface {
	return s3ServiceInstance
}

// SetS3Service sets the S3 service instance (primarily for testing)
func SetS3Service(service S3Interface) {
	s3ServiceInstance = service
}

// UploadFile uploads a file to S3 and returns its public URL and object key.
// The folder groups objects by purpose ("custom-orders", "products", ...).
func (s *S3Service) UploadFile(fileHeader *multipart.FileHeader, folder string) (MediaAsset, error) {
	// Open the uploaded file
	file, err := fileHeader.Open()
	if err != nil {
		return MediaAsset{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("warning: failed to close file: %v", closeErr)
		}
	}()

	// Read file content
	content, err := io.ReadAll(file)
	if err != nil {
		return MediaAsset{}, fmt.Errorf("failed to read file: %w", err)
	}

	// Generate a collision-free object key
	// Format: {folder}/{timestamp}_{uuid}{ext}
	key := fmt.Sprintf("%s/%d_%s%s",
		folder,
		time.Now().Unix(),
		uuid.NewString(),
		filepath.Ext(fileHeader.Filename))

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(utils.ImageContentType(fileHeader)),
	})
	if err != nil {
		return MediaAsset{}, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return MediaAsset{
		URL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Key: key,
	}, nil
}

// DeleteFile deletes a file from S3
func (s *S3Service) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
