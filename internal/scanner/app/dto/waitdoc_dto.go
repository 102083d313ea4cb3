package dto

import (
	"encoding/json"

	"docscan/internal/scanner/domain/entities"
)

// WaitDocumentPayload - поля документа для загрузки в очередь.
// Поля-указатели отправляются, только если заданы; пустая строка тоже отправляется.
// Category используется только на клиенте и не отправляется на сервер.
type WaitDocumentPayload struct {
	Angajat  *int64               `json:"angajat,omitempty" form:"angajat"`
	Tip      string               `json:"tip" form:"tip"`
	Subtip   *string              `json:"subtip,omitempty" form:"subtip"`
	Note     *string              `json:"note,omitempty" form:"note"`
	Aproved  *bool                `json:"aproved,omitempty" form:"aproved"`
	Category entities.DocCategory `json:"category,omitempty" form:"category"`
}

// Порядок сортировки списка.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// WaitDocumentListOptions - параметры листинга очереди.
// Aproved: nil - все, 0 - неподтвержденные, 1 - подтвержденные.
type WaitDocumentListOptions struct {
	Start    int
	Length   int
	Search   string
	Aproved  *int
	OrderCol int
	OrderDir string
}

// WaitDocumentListResponse - ответ /documentescanate/ в формате DataTables.
type WaitDocumentListResponse struct {
	Data            []entities.WaitDocument `json:"data"`
	RecordsTotal    json.Number             `json:"recordsTotal"`
	RecordsFiltered json.Number             `json:"recordsFiltered"`
}
