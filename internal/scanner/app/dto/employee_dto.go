package dto

// DefaultPageSize - размер страницы сотрудников по умолчанию.
const DefaultPageSize = 20

// EmployeeQuery - параметры поиска сотрудников.
type EmployeeQuery struct {
	Search string `query:"search"`
	Offset int    `query:"offset"`
	Limit  int    `query:"limit"`
}

// EmployeeRow - строка ответа /angajati_serverside_list/.
type EmployeeRow struct {
	ID       int64   `json:"id"`
	Nume     string  `json:"nume"`
	Prenume  string  `json:"prenume"`
	Username string  `json:"username"`
	Marca    string  `json:"marca"`
	Telefon  string  `json:"telefon"`
	Imagine  *string `json:"imagine"`
}

// EmployeeListResponse - страница в формате DRF LimitOffsetPagination.
type EmployeeListResponse struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []EmployeeRow `json:"results"`
}
