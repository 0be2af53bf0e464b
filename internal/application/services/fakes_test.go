package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"filevault-api/internal/domain/file_record"
	"filevault-api/internal/domain/user"
	"filevault-api/internal/infrastructure/mq"
)

type FakeUserRepository struct {
	FetchUserByUsernameFunc func(ctx context.Context, username string) (*user.User, error)
	ExistsByUsernameFunc    func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFunc       func(ctx context.Context, email string) (bool, error)
	CreateUserFunc          func(ctx context.Context, u user.User) (*user.User, error)
}

func (f *FakeUserRepository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.FetchUserByUsernameFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchUserByUsernameFunc(ctx, username)
}
func (f *FakeUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if f.ExistsByUsernameFunc == nil {
		return false, errors.New("not used")
	}
	return f.ExistsByUsernameFunc(ctx, username)
}
func (f *FakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.ExistsByEmailFunc == nil {
		return false, errors.New("not used")
	}
	return f.ExistsByEmailFunc(ctx, email)
}
func (f *FakeUserRepository) CreateUser(ctx context.Context, u user.User) (*user.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, u)
}

// memFileRepository is an in-memory file_record.Repository.
type memFileRepository struct {
	mu        sync.Mutex
	nextID    int64
	recs      map[int64]*file_record.FileRecord
	createErr error
	deleteErr error
}

func newMemFileRepository() *memFileRepository {
	return &memFileRepository{recs: map[int64]*file_record.FileRecord{}}
}

func (m *memFileRepository) CreateFileRecord(_ context.Context, rec *file_record.FileRecord) (*file_record.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	cp := *rec
	cp.ID = m.nextID
	m.recs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memFileRepository) FetchByOwnerAndStoredName(_ context.Context, owner user.ID, storedName string) (*file_record.FileRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.recs {
		if r.OwnerID == owner && r.StoredFileName == storedName {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memFileRepository) FetchByOwner(_ context.Context, owner user.ID) (file_record.FileRecords, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := file_record.FileRecords{}
	for _, r := range m.recs {
		if r.OwnerID == owner {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memFileRepository) DeleteFileRecord(_ context.Context, rec *file_record.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	r, ok := m.recs[rec.ID]
	if !ok || r.OwnerID != rec.OwnerID {
		return file_record.ErrNotFound
	}
	delete(m.recs, rec.ID)
	return nil
}

func (m *memFileRepository) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}

type FakeStorage struct {
	StoreFunc      func(content io.Reader, originalName string, ownerID user.ID) (string, error)
	LoadFunc       func(storedName string, ownerID user.ID) (io.ReadCloser, error)
	DeleteFunc     func(storedName string, ownerID user.ID) bool
	PathForFunc    func(ownerID user.ID, storedName string) (string, error)
	ExistsFunc     func(ownerID user.ID, storedName string) (bool, error)
	ListStoredFunc func(ownerID user.ID) ([]string, error)
}

func (f *FakeStorage) Store(content io.Reader, originalName string, ownerID user.ID) (string, error) {
	if f.StoreFunc == nil {
		return "", errors.New("not used")
	}
	return f.StoreFunc(content, originalName, ownerID)
}
func (f *FakeStorage) Load(storedName string, ownerID user.ID) (io.ReadCloser, error) {
	if f.LoadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.LoadFunc(storedName, ownerID)
}
func (f *FakeStorage) Delete(storedName string, ownerID user.ID) bool {
	if f.DeleteFunc == nil {
		return false
	}
	return f.DeleteFunc(storedName, ownerID)
}
func (f *FakeStorage) PathFor(ownerID user.ID, storedName string) (string, error) {
	if f.PathForFunc == nil {
		return "/data/" + storedName, nil
	}
	return f.PathForFunc(ownerID, storedName)
}
func (f *FakeStorage) Exists(ownerID user.ID, storedName string) (bool, error) {
	if f.ExistsFunc == nil {
		return false, errors.New("not used")
	}
	return f.ExistsFunc(ownerID, storedName)
}
func (f *FakeStorage) ListStored(ownerID user.ID) ([]string, error) {
	if f.ListStoredFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListStoredFunc(ownerID)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *recordingPublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
