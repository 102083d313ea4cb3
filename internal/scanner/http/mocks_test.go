package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*entities.UserInfo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserInfo), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAuthService) Restore(ctx context.Context) (*entities.UserInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserInfo), args.Error(1)
}

func (m *mockAuthService) ReloadUser(ctx context.Context) (*entities.UserInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserInfo), args.Error(1)
}

func (m *mockAuthService) CurrentUser() *entities.UserInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entities.UserInfo)
}

type mockEmployeeService struct {
	mock.Mock
}

func (m *mockEmployeeService) FetchPage(ctx context.Context, query dto.EmployeeQuery) (*entities.EmployeePage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EmployeePage), args.Error(1)
}

type mockWaitDocumentService struct {
	mock.Mock
}

func (m *mockWaitDocumentService) Create(ctx context.Context, payload *dto.WaitDocumentPayload, filePath string) (map[string]any, error) {
	args := m.Called(ctx, payload, filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *mockWaitDocumentService) List(ctx context.Context, opts dto.WaitDocumentListOptions) (*entities.WaitDocumentList, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WaitDocumentList), args.Error(1)
}

type mockLibraryService struct {
	mock.Mock
}

func (m *mockLibraryService) List(ctx context.Context) ([]entities.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Document), args.Error(1)
}

func (m *mockLibraryService) AddFromImages(ctx context.Context, imagePaths []string) (*entities.Document, error) {
	args := m.Called(ctx, imagePaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *mockLibraryService) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
