package file_record

import (
	"time"

	"filevault-api/internal/domain/user"
)

type (
	FileRecord struct {
		ID      int64
		OwnerID user.ID

		FileName       string
		StoredFileName string
		ContentType    string
		SizeBytes      int64
		StoragePath    string

		UploadedAt time.Time
	}
	FileRecords []*FileRecord
)
