package entities

import "time"

// Document - локально сохраненный скан: страницы-изображения и собранный PDF.
type Document struct {
	ID        string    `json:"id"`
	Pages     []string  `json:"pages"`
	PDFPath   string    `json:"pdfUri"`
	CreatedAt time.Time `json:"createdAt"`
}
