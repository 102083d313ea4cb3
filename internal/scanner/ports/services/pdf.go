package services

import "context"

// PDFAssembler собирает PDF из изображений: одна страница на изображение.
type PDFAssembler interface {
	Assemble(ctx context.Context, imagePaths []string, destPath string) error
}
