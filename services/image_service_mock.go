package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/stitch-n-style/stitch-n-style-api/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	uploadedImages map[string][]byte // map of image key to file content
	failUploads    bool
	mu             sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedImages: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance for testing
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// FailUploads makes every subsequent upload return an error, simulating a
// media host outage
func (m *MockImageService) FailUploads(fail bool) {
	m.mu.Lock()
	m.failUploads = fail
	m.mu.Unlock()
}

// UploadImage simulates uploading an image
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader, folder string) (MediaAsset, error) {
	// Validate the image file
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return MediaAsset{}, err
	}

	m.mu.RLock()
	fail := m.failUploads
	m.mu.RUnlock()
	if fail {
		return MediaAsset{}, fmt.Errorf("mock image service: upload failure")
	}

	// Open and read the file
	file, err := fileHeader.Open()
	if err != nil {
		return MediaAsset{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return MediaAsset{}, fmt.Errorf("failed to read file: %w", err)
	}

	// Generate mock image key
	key := fmt.Sprintf("%s/mock_%s", folder, fileHeader.Filename)

	// Store in mock storage
	m.mu.Lock()
	m.uploadedImages[key] = content
	m.mu.Unlock()

	return MediaAsset{
		URL: fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s", key),
		Key: key,
	}, nil
}

// UploadImages simulates uploading a batch of reference images
func (m *MockImageService) UploadImages(fileHeaders []*multipart.FileHeader, folder string) ([]MediaAsset, error) {
	if err := utils.ValidateReferenceImages(fileHeaders); err != nil {
		return nil, err
	}

	assets := make([]MediaAsset, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		asset, err := m.UploadImage(fh, folder)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

// DeleteImage simulates deleting an image
func (m *MockImageService) DeleteImage(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedImages, key)
	m.mu.Unlock()

	return nil
}

// GetUploadedImages returns all uploaded images (for testing assertions)
func (m *MockImageService) GetUploadedImages() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	images := make(map[string][]byte, len(m.uploadedImages))
	for k, v := range m.uploadedImages {
		images[k] = v
	}
	return images
}

// ImageExists checks if an image exists in mock storage
func (m *MockImageService) ImageExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedImages[key]
	return exists
}

// Clear removes all images from mock storage
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.uploadedImages = make(map[string][]byte)
	m.mu.Unlock()
}
