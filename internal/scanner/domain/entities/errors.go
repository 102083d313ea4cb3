package entities

import "errors"

// Доменные ошибки сканера.
var (
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrInvalidLogin     = errors.New("login response is missing tokens")
	ErrUnknownUser      = errors.New("cannot determine user id: not authenticated or token invalid")
	ErrUnknownDocType   = errors.New("unknown document type")
	ErrNoImages         = errors.New("at least one page image is required")
	ErrEmptyFilePath    = errors.New("file path is required")
)
