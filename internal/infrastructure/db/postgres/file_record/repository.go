package file_record

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"filevault-api/internal/domain/file_record"
	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DBTX
}

func NewRepository(db postgres.DBTX) file_record.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchByOwner(ctx context.Context, ownerID user.ID) (file_record.FileRecords, error) {
	rows, err := r.db.Query(ctx, SelectFileRecordsByOwner, int64(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	frs := make(FileRecords, 0)
	for rows.Next() {
		fr := new(FileRecord)

		if err = rows.Scan(
			&fr.ID,
			&fr.OwnerID,

			&fr.FileName,
			&fr.StoredFileName,
			&fr.ContentType,
			&fr.SizeBytes,
			&fr.StoragePath,

			&fr.UploadedAt,
		); err != nil {
			return nil, err
		}

		frs = append(frs, fr)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&frs), nil
}

func (r *Repository) FetchByOwnerAndStoredName(
	ctx context.Context,
	ownerID user.ID,
	storedFileName string,
) (*file_record.FileRecord, error) {
	fr := new(FileRecord)
	err := r.db.QueryRow(ctx, SelectFileRecordByOwnerAndStoredName, int64(ownerID), storedFileName).Scan(
		&fr.ID,
		&fr.OwnerID,

		&fr.FileName,
		&fr.StoredFileName,
		&fr.ContentType,
		&fr.SizeBytes,
		&fr.StoragePath,

		&fr.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(fr), nil
}

func (r *Repository) CreateFileRecord(ctx context.Context, req *file_record.FileRecord) (*file_record.FileRecord, error) {
	fr := new(FileRecord)

	err := r.db.QueryRow(
		ctx,
		InsertFileRecord,
		int64(req.OwnerID), req.FileName, req.StoredFileName, req.ContentType, req.SizeBytes, req.StoragePath, req.UploadedAt,
	).Scan(
		&fr.ID,
		&fr.OwnerID,

		&fr.FileName,
		&fr.StoredFileName,
		&fr.ContentType,
		&fr.SizeBytes,
		&fr.StoragePath,

		&fr.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(fr), nil
}

func (r *Repository) DeleteFileRecord(ctx context.Context, req *file_record.FileRecord) error {
	tag, err := r.db.Exec(ctx, DeleteFileRecordByIDAndOwner, req.ID, int64(req.OwnerID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return file_record.ErrNotFound
	}

	return nil
}
