package model

// Member участник группы в том виде, в котором его отдаёт portal API
type Member struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"` // 'ADMIN', 'MEMBER'
}

// IsAdmin проверяет, является ли участник администратором группы
func (m *Member) IsAdmin() bool {
	return IsAdminRole(m.Role)
}
