package file_record

const (
	SelectFileRecordsByOwner = `
		SELECT id, owner_id, file_name, stored_file_name, content_type, size_bytes, storage_path, uploaded_at
		FROM file_records
		WHERE owner_id = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	SelectFileRecordByOwnerAndStoredName = `
		SELECT id, owner_id, file_name, stored_file_name, content_type, size_bytes, storage_path, uploaded_at
		FROM file_records
		WHERE owner_id = $1 AND stored_file_name = $2
	`
	InsertFileRecord = `
		INSERT INTO file_records (owner_id, file_name, stored_file_name, content_type, size_bytes, storage_path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, owner_id, file_name, stored_file_name, content_type, size_bytes, storage_path, uploaded_at
	`
	DeleteFileRecordByIDAndOwner = `
		DELETE FROM file_records
		WHERE id = $1 AND owner_id = $2
	`
)
