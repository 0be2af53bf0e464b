package ports

import (
	"io"

	"filevault-api/internal/domain/user"
)

type FileStorage interface {
	Store(content io.Reader, originalName string, ownerID user.ID) (string, error)
	Load(storedName string, ownerID user.ID) (io.ReadCloser, error)
	Delete(storedName string, ownerID user.ID) bool
	PathFor(ownerID user.ID, storedName string) (string, error)
	Exists(ownerID user.ID, storedName string) (bool, error)
	ListStored(ownerID user.ID) ([]string, error)
}
