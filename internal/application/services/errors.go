package services

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrFileNotFound        = errors.New("file not found")
	ErrEmptyFile           = errors.New("file is empty")
	ErrStorageInconsistent = errors.New("file storage is inconsistent with metadata")
)
