package entities

// WaitDocument - документ в очереди на подтверждение на бэкенде.
type WaitDocument struct {
	ID           int64  `json:"id"`
	Tip          string `json:"tip"`
	Subtip       string `json:"subtip,omitempty"`
	File         string `json:"file"`
	FileURL      string `json:"fileUrl,omitempty"`
	Aproved      bool   `json:"aproved"`
	Angajat      *int64 `json:"angajat,omitempty"`
	UserUsername string `json:"user_username,omitempty"`
}

// WaitDocumentList - страница очереди документов.
type WaitDocumentList struct {
	Rows     []WaitDocument `json:"rows"`
	Total    int            `json:"total"`
	Filtered int            `json:"filtered"`
}

// WaitDocumentColumns - порядок колонок, который ожидает бэкенд при листинге.
var WaitDocumentColumns = []string{"id", "tip", "subtip", "file", "aproved", "angajat", "user_username"}
