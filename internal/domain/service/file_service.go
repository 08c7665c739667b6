package service

import (
	"context"
	"io"
)

// FileUploadService is the object storage collaborator: it uploads bytes and
// returns a public reference URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
