package app_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"docscan/internal/scanner/domain/entities"
)

// memStore - хранилище учетных данных в памяти.
type memStore struct {
	mu      sync.Mutex
	pair    *entities.TokenPair
	clears  int
	saveErr error
}

func (s *memStore) Save(_ context.Context, pair *entities.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.pair = pair.Clone()
	return nil
}

func (s *memStore) Load(_ context.Context) (*entities.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Clone(), nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.pair = nil
	return nil
}

func (s *memStore) Stored() *entities.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Clone()
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

type mockDocumentRepository struct {
	mock.Mock
}

func (m *mockDocumentRepository) List(ctx context.Context) ([]entities.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Document), args.Error(1)
}

func (m *mockDocumentRepository) Get(ctx context.Context, id string) (*entities.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *mockDocumentRepository) Save(ctx context.Context, doc *entities.Document) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *mockDocumentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPDFAssembler struct {
	mock.Mock
}

func (m *mockPDFAssembler) Assemble(ctx context.Context, imagePaths []string, destPath string) error {
	return m.Called(ctx, imagePaths, destPath).Error(0)
}
