package repositories

import "errors"

// ErrDocumentNotFound возвращается, если документа нет в индексе.
var ErrDocumentNotFound = errors.New("document not found")
