package file_record

import (
	domain "filevault-api/internal/domain/file_record"
	"filevault-api/internal/domain/user"
)

func fromDBModel(model *FileRecord) *domain.FileRecord {
	var fr = &domain.FileRecord{
		ID:      model.ID,
		OwnerID: user.ID(model.OwnerID),

		FileName:       model.FileName,
		StoredFileName: model.StoredFileName,
		ContentType:    model.ContentType,
		SizeBytes:      model.SizeBytes,
		StoragePath:    model.StoragePath,

		UploadedAt: model.UploadedAt,
	}

	return fr
}

func fromDBModels(models *FileRecords) domain.FileRecords {
	frs := make(domain.FileRecords, len(*models))
	for idx, fr := range *models {
		frs[idx] = fromDBModel(fr)
	}

	return frs
}
