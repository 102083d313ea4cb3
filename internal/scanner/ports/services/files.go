package services

import "context"

// FileStore раскладывает файлы библиотеки документов на диске.
type FileStore interface {
	// ImagePath возвращает путь страницы idx документа id с расширением ext.
	ImagePath(id string, idx int, ext string) string
	// PDFPath возвращает путь собранного PDF документа id.
	PDFPath(id string) string
	// Copy копирует файл src в dst, создавая каталоги.
	Copy(ctx context.Context, src, dst string) error
	// Remove удаляет файлы; отсутствующие пропускаются.
	Remove(ctx context.Context, paths ...string) error
}
