package services

import (
	"context"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
)

// AuthService управляет входом, выходом и профилем текущего пользователя.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*entities.UserInfo, error)

	Logout(ctx context.Context) error

	Restore(ctx context.Context) (*entities.UserInfo, error)

	ReloadUser(ctx context.Context) (*entities.UserInfo, error)

	CurrentUser() *entities.UserInfo
}

// EmployeeService ищет сотрудников на бэкенде.
type EmployeeService interface {
	FetchPage(ctx context.Context, query dto.EmployeeQuery) (*entities.EmployeePage, error)
}

// WaitDocumentService загружает документы в очередь подтверждения и читает ее.
type WaitDocumentService interface {
	Create(ctx context.Context, payload *dto.WaitDocumentPayload, filePath string) (map[string]any, error)

	List(ctx context.Context, opts dto.WaitDocumentListOptions) (*entities.WaitDocumentList, error)
}

// LibraryService управляет локальной библиотекой сканов.
type LibraryService interface {
	List(ctx context.Context) ([]entities.Document, error)

	AddFromImages(ctx context.Context, imagePaths []string) (*entities.Document, error)

	Remove(ctx context.Context, id string) error
}
