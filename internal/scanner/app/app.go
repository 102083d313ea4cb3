package app

import "docscan/internal/scanner/ports/services"

var (
	_ services.AuthService         = (*AuthUseCase)(nil)
	_ services.EmployeeService     = (*EmployeeUseCase)(nil)
	_ services.WaitDocumentService = (*WaitDocumentUseCase)(nil)
	_ services.LibraryService      = (*LibraryUseCase)(nil)
)
