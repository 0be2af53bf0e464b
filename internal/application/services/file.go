package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"filevault-api/internal/application/ports"
	"filevault-api/internal/domain/file_record"
	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/metrics"
	"filevault-api/internal/infrastructure/mq"
	"filevault-api/internal/infrastructure/storage/filestore"
)

const defaultContentType = "application/octet-stream"

type FileService struct {
	storage        ports.FileStorage
	fileRepository file_record.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
	now            func() time.Time
}

func NewFileService(
	storage ports.FileStorage,
	fileRepository file_record.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.FileService {
	return &FileService{
		storage:        storage,
		fileRepository: fileRepository,
		events:         events,
		mCounter:       mCounter,
		logger:         logger,
		now:            time.Now,
	}
}

type fileEventPayload struct {
	FileName       string `json:"file_name"`
	StoredFileName string `json:"stored_file_name"`
	Size           int64  `json:"size"`
}

// Upload writes the content to disk and then records it. A failed record
// insert is compensated by removing the written file; if that also fails
// the file is left orphaned and logged.
func (fs *FileService) Upload(
	ctx context.Context,
	owner *user.User,
	in ports.UploadInput,
) (*file_record.FileRecord, error) {
	if in.Size == 0 {
		return nil, ErrEmptyFile
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	storedName, err := fs.storage.Store(in.Content, in.OriginalName, owner.ID)
	if err != nil {
		return nil, err
	}

	path, err := fs.storage.PathFor(owner.ID, storedName)
	if err != nil {
		fs.compensate(owner, storedName, "", err)
		return nil, err
	}

	rec, err := fs.fileRepository.CreateFileRecord(ctx, &file_record.FileRecord{
		OwnerID:        owner.ID,
		FileName:       in.OriginalName,
		StoredFileName: storedName,
		ContentType:    contentType,
		SizeBytes:      in.Size,
		StoragePath:    path,
		UploadedAt:     fs.now().UTC(),
	})
	if err != nil {
		fs.compensate(owner, storedName, path, err)
		return nil, fmt.Errorf("create file record: %w", err)
	}

	fs.events.Publish(mq.NewEvent(mq.RoutingFileUploaded, int64(owner.ID), fileEventPayload{
		FileName:       rec.FileName,
		StoredFileName: rec.StoredFileName,
		Size:           rec.SizeBytes,
	}))
	fs.mCounter.WithLabelValues(metrics.FileUploadedTotal).Inc()

	return rec, nil
}

// compensate removes a stored file whose upload could not complete. A file
// that cannot be removed is logged as orphaned.
func (fs *FileService) compensate(owner *user.User, storedName, path string, cause error) {
	if fs.storage.Delete(storedName, owner.ID) {
		return
	}
	fs.logger.Error("orphaned file on disk",
		zap.Int64("owner_id", int64(owner.ID)),
		zap.String("stored_name", storedName),
		zap.String("path", path),
		zap.Error(cause),
	)
	fs.mCounter.WithLabelValues(metrics.FileOrphanTotal).Inc()
}

// Download never touches the disk for files the owner has no record of.
// The caller closes the returned reader.
func (fs *FileService) Download(
	ctx context.Context,
	owner *user.User,
	storedName string,
) (*file_record.FileRecord, io.ReadCloser, error) {
	rec, err := fs.lookup(ctx, owner, storedName)
	if err != nil {
		return nil, nil, err
	}

	rc, err := fs.storage.Load(rec.StoredFileName, owner.ID)
	if err != nil {
		fs.logger.Error("metadata present but file unreadable",
			zap.Int64("owner_id", int64(owner.ID)),
			zap.String("stored_name", rec.StoredFileName),
			zap.String("path", rec.StoragePath),
			zap.Error(err),
		)
		fs.mCounter.WithLabelValues(metrics.FileInconsistent).Inc()
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageInconsistent, err)
	}

	fs.mCounter.WithLabelValues(metrics.FileDownloadedTotal).Inc()

	return rec, rc, nil
}

// Delete removes the file from disk, then its record. A record is only
// removed once the file is provably gone; otherwise it is kept and
// ErrStorageInconsistent is returned.
func (fs *FileService) Delete(
	ctx context.Context,
	owner *user.User,
	storedName string,
) (*file_record.FileRecord, error) {
	rec, err := fs.lookup(ctx, owner, storedName)
	if err != nil {
		return nil, err
	}

	if !fs.storage.Delete(rec.StoredFileName, owner.ID) {
		exists, err := fs.storage.Exists(owner.ID, rec.StoredFileName)
		if err != nil || exists {
			fs.logger.Error("file could not be removed from disk, keeping metadata",
				zap.Int64("owner_id", int64(owner.ID)),
				zap.String("stored_name", rec.StoredFileName),
				zap.String("path", rec.StoragePath),
				zap.Bool("exists", exists),
				zap.Error(err),
			)
			fs.mCounter.WithLabelValues(metrics.FileInconsistent).Inc()
			return nil, ErrStorageInconsistent
		}

		fs.logger.Warn("file already absent on disk, removing stale metadata",
			zap.Int64("owner_id", int64(owner.ID)),
			zap.String("stored_name", rec.StoredFileName),
			zap.String("path", rec.StoragePath),
		)
		fs.mCounter.WithLabelValues(metrics.FileReconciledTotal).Inc()
	}

	if err = fs.fileRepository.DeleteFileRecord(ctx, rec); err != nil {
		if errors.Is(err, file_record.ErrNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("delete file record: %w", err)
	}

	fs.events.Publish(mq.NewEvent(mq.RoutingFileDeleted, int64(owner.ID), fileEventPayload{
		FileName:       rec.FileName,
		StoredFileName: rec.StoredFileName,
		Size:           rec.SizeBytes,
	}))
	fs.mCounter.WithLabelValues(metrics.FileDeletedTotal).Inc()

	return rec, nil
}

func (fs *FileService) List(ctx context.Context, owner *user.User) (file_record.FileRecords, error) {
	return fs.fileRepository.FetchByOwner(ctx, owner.ID)
}

// Reconcile reports disagreements between disk and metadata for one owner.
// It repairs nothing.
func (fs *FileService) Reconcile(ctx context.Context, owner *user.User) (*ports.ReconcileReport, error) {
	recs, err := fs.fileRepository.FetchByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	onDisk, err := fs.storage.ListStored(owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list stored files: %w", err)
	}

	known := make(map[string]struct{}, len(recs))
	report := &ports.ReconcileReport{DiskOnly: []string{}, MetadataOnly: []string{}}

	for _, r := range recs {
		known[r.StoredFileName] = struct{}{}
		exists, err := fs.storage.Exists(owner.ID, r.StoredFileName)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", r.StoredFileName, err)
		}
		if !exists {
			report.MetadataOnly = append(report.MetadataOnly, r.StoredFileName)
		}
	}
	for _, name := range onDisk {
		if _, ok := known[name]; !ok {
			report.DiskOnly = append(report.DiskOnly, name)
		}
	}
	sort.Strings(report.DiskOnly)
	sort.Strings(report.MetadataOnly)

	return report, nil
}

func (fs *FileService) lookup(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, error) {
	rec, err := fs.fileRepository.FetchByOwnerAndStoredName(ctx, owner.ID, storedName)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrFileNotFound
	}
	return rec, nil
}

// IsInvalidName reports whether err was caused by an unacceptable file name.
func IsInvalidName(err error) bool {
	return errors.Is(err, filestore.ErrInvalidFileName) || errors.Is(err, filestore.ErrInvalidPath)
}
