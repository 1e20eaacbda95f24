package services

import (
	"fmt"
	"log"
	"mime/multipart"

	"github.com/stitch-n-style/stitch-n-style-api/utils"
)

// ImageService validates and uploads images through the media host
type ImageService interface {
	// UploadImage validates and uploads a single image file
	UploadImage(fileHeader *multipart.FileHeader, folder string) (MediaAsset, error)

	// UploadImages validates and uploads a batch of reference images.
	// Any validation or upload failure aborts the whole batch.
	UploadImages(fileHeaders []*multipart.FileHeader, folder string) ([]MediaAsset, error)

	// DeleteImage removes an image from storage
	DeleteImage(key string) error
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadImage validates and uploads an image file to S3
func (s *S3ImageService) UploadImage(fileHeader *multipart.FileHeader, folder string) (MediaAsset, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return MediaAsset{}, err
	}

	asset, err := s.s3Service.UploadFile(fileHeader, folder)
	if err != nil {
		return MediaAsset{}, fmt.Errorf("failed to upload image: %w", err)
	}

	return asset, nil
}

// UploadImages validates the batch first, then uploads each file. If an
// upload fails partway, already-uploaded objects are removed so a failed
// order creation leaves nothing behind on the media host.
func (s *S3ImageService) UploadImages(fileHeaders []*multipart.FileHeader, folder string) ([]MediaAsset, error) {
	if err := utils.ValidateReferenceImages(fileHeaders); err != nil {
		return nil, err
	}

	assets := make([]MediaAsset, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		asset, err := s.s3Service.UploadFile(fh, folder)
		if err != nil {
			for _, uploaded := range assets {
				if delErr := s.s3Service.DeleteFile(uploaded.Key); delErr != nil {
					log.Printf("warning: failed to clean up uploaded image %s: %v", uploaded.Key, delErr)
				}
			}
			return nil, fmt.Errorf("failed to upload image %s: %w", fh.Filename, err)
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

// DeleteImage deletes an image from S3
func (s *S3ImageService) DeleteImage(key string) error {
	if key == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(key); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
