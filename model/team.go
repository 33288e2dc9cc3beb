package model

// TeamMember is a directory record for a BDE or admin user.
type TeamMember struct {
	ID     string `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Role   string `json:"role" db:"role"`
	Avatar string `json:"avatar" db:"avatar"`
	Online bool   `json:"online" db:"online"`
}

// UserRole distinguishes the two login roles.
type UserRole string

const (
	RoleBDE         UserRole = "BDE"
	RoleMasterclass UserRole = "Masterclass"
)
