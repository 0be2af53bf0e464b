package file_record

import (
	"time"
)

type (
	FileRecord struct {
		ID      int64
		OwnerID int64

		FileName       string
		StoredFileName string
		ContentType    string
		SizeBytes      int64
		StoragePath    string

		UploadedAt time.Time
	}
	FileRecords []*FileRecord
)
