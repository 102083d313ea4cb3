package entities

// Employee - сотрудник, к которому привязывается документ.
type Employee struct {
	ID       int64  `json:"id"`
	Nume     string `json:"nume,omitempty"`
	Prenume  string `json:"prenume,omitempty"`
	Name     string `json:"name"`
	Marca    string `json:"marca,omitempty"`
	Telefon  string `json:"telefon,omitempty"`
	ImageURL string `json:"imagine,omitempty"`
}

// EmployeePage - страница результатов поиска сотрудников.
type EmployeePage struct {
	Items      []Employee `json:"items"`
	HasMore    bool       `json:"hasMore"`
	NextOffset int        `json:"nextOffset"`
}
