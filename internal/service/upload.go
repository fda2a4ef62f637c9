package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/najino/Cooko-application-api/config"
)

// IUploadService defines the interface for upload operations
type IUploadService interface {
	UploadFile(ctx context.Context, upload *FileUpload) (string, error)
}

// FileUpload is one file received from a client.
type FileUpload struct {
	OriginalName string
	MimeType     string
	Data         []byte
	// Type is the logical target ("category", "ingredient") selecting the
	// object-key prefix.
	Type string
}

// directoryMap maps logical upload types to object-key prefixes.
var directoryMap = map[string]string{
	"category":   "categories",
	"ingredient": "ingredients",
}

// UploadService stores uploaded files in the object store and hands back
// their public URLs.
type UploadService struct {
	s3Config *config.S3Config
}

// NewUploadService creates a new UploadService instance
func NewUploadService(s3Config *config.S3Config) *UploadService {
	return &UploadService{s3Config: s3Config}
}

// UploadFile writes the file to the bucket under a generated unique name and
// returns the public URL.
func (s *UploadService) UploadFile(ctx context.Context, upload *FileUpload) (string, error) {
	directory, ok := directoryMap[upload.Type]
	if !ok {
		return "", NewBadRequest(fmt.Sprintf("Unknown upload type '%s'", upload.Type))
	}

	objectName := fmt.Sprintf("%s/%s%s", directory, uuid.New().String(), filepath.Ext(upload.OriginalName))
	log.Printf("[UploadService] Uploading file: %s as %s", upload.OriginalName, objectName)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(objectName),
		Body:        bytes.NewReader(upload.Data),
		ContentType: aws.String(upload.MimeType),
		Metadata: map[string]string{
			"original-name": upload.OriginalName,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	publicURL := s.s3Config.PublicURL(objectName)
	log.Printf("[UploadService] File uploaded successfully: %s", publicURL)
	return publicURL, nil
}
