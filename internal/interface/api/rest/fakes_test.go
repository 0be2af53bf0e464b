package rest

import (
	"context"
	"errors"
	"io"

	"filevault-api/internal/application/ports"
	"filevault-api/internal/domain/file_record"
	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/jwt"
)

type FakeAuthService struct {
	RegisterFunc func(ctx context.Context, username, email, password string) (*user.User, error)
	LoginFunc    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
}

func (f *FakeAuthService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	if f.RegisterFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterFunc(ctx, username, email, password)
}
func (f *FakeAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if f.LoginFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LoginFunc(ctx, username, password)
}

type FakeUserService struct {
	FindByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
}

func (f *FakeUserService) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.FindByUsernameFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByUsernameFunc(ctx, username)
}

type FakeFileService struct {
	UploadFunc    func(ctx context.Context, owner *user.User, in ports.UploadInput) (*file_record.FileRecord, error)
	DownloadFunc  func(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, io.ReadCloser, error)
	DeleteFunc    func(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, error)
	ListFunc      func(ctx context.Context, owner *user.User) (file_record.FileRecords, error)
	ReconcileFunc func(ctx context.Context, owner *user.User) (*ports.ReconcileReport, error)
}

func (f *FakeFileService) Upload(ctx context.Context, owner *user.User, in ports.UploadInput) (*file_record.FileRecord, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, owner, in)
}
func (f *FakeFileService) Download(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, io.ReadCloser, error) {
	if f.DownloadFunc == nil {
		return nil, nil, errors.New("not used")
	}
	return f.DownloadFunc(ctx, owner, storedName)
}
func (f *FakeFileService) Delete(ctx context.Context, owner *user.User, storedName string) (*file_record.FileRecord, error) {
	if f.DeleteFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeleteFunc(ctx, owner, storedName)
}
func (f *FakeFileService) List(ctx context.Context, owner *user.User) (file_record.FileRecords, error) {
	if f.ListFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListFunc(ctx, owner)
}
func (f *FakeFileService) Reconcile(ctx context.Context, owner *user.User) (*ports.ReconcileReport, error) {
	if f.ReconcileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ReconcileFunc(ctx, owner)
}

// fakeTokens accepts "Bearer <username>" for any username in the set.
type fakeTokens map[string]bool

func (f fakeTokens) Generate(identity string, _ []string) (string, error) {
	return identity, nil
}

func (f fakeTokens) Validate(token string) (*jwt.Identity, error) {
	if !f[token] {
		return nil, jwt.ErrBadSignature
	}
	return &jwt.Identity{Username: token, Roles: []string{"ROLE_USER"}}, nil
}

type FakeFileRecordRepository struct {
	CreateFileRecordFunc          func(ctx context.Context, rec *file_record.FileRecord) (*file_record.FileRecord, error)
	FetchByOwnerAndStoredNameFunc func(ctx context.Context, owner user.ID, storedName string) (*file_record.FileRecord, error)
	FetchByOwnerFunc              func(ctx context.Context, owner user.ID) (file_record.FileRecords, error)
	DeleteFileRecordFunc          func(ctx context.Context, rec *file_record.FileRecord) error
}

func (f *FakeFileRecordRepository) CreateFileRecord(ctx context.Context, rec *file_record.FileRecord) (*file_record.FileRecord, error) {
	if f.CreateFileRecordFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateFileRecordFunc(ctx, rec)
}
func (f *FakeFileRecordRepository) FetchByOwnerAndStoredName(ctx context.Context, owner user.ID, storedName string) (*file_record.FileRecord, error) {
	if f.FetchByOwnerAndStoredNameFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByOwnerAndStoredNameFunc(ctx, owner, storedName)
}
func (f *FakeFileRecordRepository) FetchByOwner(ctx context.Context, owner user.ID) (file_record.FileRecords, error) {
	if f.FetchByOwnerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchByOwnerFunc(ctx, owner)
}
func (f *FakeFileRecordRepository) DeleteFileRecord(ctx context.Context, rec *file_record.FileRecord) error {
	if f.DeleteFileRecordFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFileRecordFunc(ctx, rec)
}
