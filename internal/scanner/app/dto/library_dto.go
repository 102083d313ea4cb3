package dto

// AddDocumentRequest - список путей к изображениям страниц.
type AddDocumentRequest struct {
	Images []string `json:"images"`
}
