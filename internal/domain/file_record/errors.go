package file_record

import "errors"

var ErrNotFound = errors.New("file record not found")
