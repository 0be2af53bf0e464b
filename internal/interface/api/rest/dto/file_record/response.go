package file_record

type (
	FileRecord struct {
		ID             int64  `json:"id"`
		FileName       string `json:"fileName"`
		StoredFileName string `json:"storedFileName"`
		ContentType    string `json:"contentType"`
		Size           int64  `json:"size"`
		UploadedAt     string `json:"uploadedAt"`
	}
	FileRecords []FileRecord

	ReconcileReport struct {
		DiskOnly     []string `json:"diskOnly"`
		MetadataOnly []string `json:"metadataOnly"`
	}
)
