package entities

// UserInfo - профиль пользователя бэкенда.
type UserInfo struct {
	UserID    int64    `json:"userid"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Groups    []string `json:"groups"`
	Marca     string   `json:"marca,omitempty"`
}
