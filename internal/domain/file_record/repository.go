package file_record

import (
	"context"

	"filevault-api/internal/domain/user"
)

// Repository is the metadata registry. Every lookup is filtered by owner,
// a record is never reachable by stored name alone.
type Repository interface {
	CreateFileRecord(ctx context.Context, req *FileRecord) (*FileRecord, error)
	FetchByOwnerAndStoredName(ctx context.Context, ownerID user.ID, storedFileName string) (*FileRecord, error)
	FetchByOwner(ctx context.Context, ownerID user.ID) (FileRecords, error)
	DeleteFileRecord(ctx context.Context, req *FileRecord) error
}
