package model

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
)

// staff判定。旧APIの "admin" も昇格ロール扱い。
func (r Role) Staff() bool {
	return r == RoleStaff || r == "admin"
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// 表示名（full_nameが空ならemail）
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
