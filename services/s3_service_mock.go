package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	uploadedFiles map[string][]byte // map of object key to file content
	failUploads   bool
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// FailUploads makes every subsequent UploadFile call return an error,
// simulating a media host outage
func (m *MockS3Service) FailUploads(fail bool) {
	m.mu.Lock()
	m.failUploads = fail
	m.mu.Unlock()
}

// UploadFile simulates uploading a file to the media host
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader, folder string) (MediaAsset, error) {
	m.mu.RLock()
	fail := m.failUploads
	m.mu.RUnlock()
	if fail {
		return MediaAsset{}, fmt.Errorf("mock S3: upload failure")
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

	// Generate mock object key
	key := fmt.Sprintf("%s/mock_%s", folder, fileHeader.Filename)

	// Store in mock storage
	m.mu.Lock()
	m.uploadedFiles[key] = content
	m.mu.Unlock()

	return MediaAsset{
		URL: fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s", key),
		Key: key,
	}, nil
}

// DeleteFile simulates deleting a file from the media host
func (m *MockS3Service) DeleteFile(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedFiles, key)
	m.mu.Unlock()

	return nil
}

// GetUploadedFiles returns all uploaded files (for testing assertions)
func (m *MockS3Service) GetUploadedFiles() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	files := make(map[string][]byte, len(m.uploadedFiles))
	for k, v := range m.uploadedFiles {
		files[k] = v
	}
	return files
}

// FileExists checks if a file exists in mock storage
func (m *MockS3Service) FileExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedFiles[key]
	return exists
}

// Clear removes all files from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.uploadedFiles = make(map[string][]byte)
	m.mu.Unlock()
}
