package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 5MB in bytes
	MaxFileSize = 5 * 1024 * 1024
	// MaxReferenceImages is the most images a single custom order may carry
	MaxReferenceImages = 5
)

// allowedImageExtensions are the image formats accepted for upload
var allowedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only PNG, JPEG and WebP images are allowed",
		}
	}

	// Check declared MIME type when the client set one
	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" {
		if !strings.HasPrefix(contentType, "image/") {
			return &FileUploadError{
				Code:    "INVALID_FILE_FORMAT",
				Message: "Only image files are allowed",
			}
		}
	}

	return nil
}

// ValidateReferenceImages validates a batch of reference images for a custom
// order: at most MaxReferenceImages files, each an image within the size limit
func ValidateReferenceImages(fileHeaders []*multipart.FileHeader) error {
	if len(fileHeaders) > MaxReferenceImages {
		return &FileUploadError{
			Code:    "TOO_MANY_FILES",
			Message: fmt.Sprintf("At most %d reference images are allowed", MaxReferenceImages),
		}
	}

	for _, fh := range fileHeaders {
		if err := ValidateImageFile(fh); err != nil {
			return err
		}
	}

	return nil
}

// ImageContentType returns the MIME type for an uploaded image based on its
// file extension, defaulting to the browser-supplied Content-Type header
func ImageContentType(fileHeader *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if contentType, ok := allowedImageExtensions[ext]; ok {
		return contentType
	}
	return fileHeader.Header.Get("Content-Type")
}
