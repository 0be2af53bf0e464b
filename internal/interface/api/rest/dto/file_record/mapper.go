package file_record

import (
	"time"

	"filevault-api/internal/application/ports"
	"filevault-api/internal/domain/file_record"
)

func ToResponseFileRecord(d file_record.FileRecord) FileRecord {
	return FileRecord{
		ID:             d.ID,
		FileName:       d.FileName,
		StoredFileName: d.StoredFileName,
		ContentType:    d.ContentType,
		Size:           d.SizeBytes,
		UploadedAt:     d.UploadedAt.UTC().Format(time.RFC3339),
	}
}

func ToResponseFileRecords(ds file_record.FileRecords) FileRecords {
	out := make(FileRecords, len(ds))
	for idx, d := range ds {
		out[idx] = ToResponseFileRecord(*d)
	}

	return out
}

func ToReconcileReport(r ports.ReconcileReport) ReconcileReport {
	out := ReconcileReport{DiskOnly: r.DiskOnly, MetadataOnly: r.MetadataOnly}
	if out.DiskOnly == nil {
		out.DiskOnly = []string{}
	}
	if out.MetadataOnly == nil {
		out.MetadataOnly = []string{}
	}

	return out
}
