package ports

import (
	"context"
	"io"

	"filevault-api/internal/domain/file_record"
	"filevault-api/internal/domain/user"
)

type UploadInput struct {
	Content      io.Reader
	OriginalName string
	ContentType  string
	Size         int64
}

type ReconcileReport struct {
	DiskOnly     []string
	MetadataOnly []string
}

type FileService interface {
	Upload(ctx context.Context, owner *user.User, in UploadInput) (*file_record.FileRecord, error)
	Download(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, io.ReadCloser, error)
	Delete(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, error)
	List(ctx context.Context, owner *user.User) (file_record.FileRecords, error)
	Reconcile(ctx context.Context, owner *user.User) (*ReconcileReport, error)
}
