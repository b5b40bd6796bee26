package domain

type Role string

const (
	RoleStaff      Role = "staff"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

// StaffAccount is the upstream identity a session is minted for.
type StaffAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Hotel    string `json:"hotel"`
}

// StaffMember is one entry of a department roster.
type StaffMember struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	IsActive   bool   `json:"isActive"`
}
