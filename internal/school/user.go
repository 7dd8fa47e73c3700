package school

import (
	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/record"
)

// User is a staff account of the platform.
type User struct {
	ID     string        `json:"id"`
	Name   string        `json:"name" validate:"required,min=3"`
	Email  string        `json:"email" validate:"required,email"`
	Role   string        `json:"role" validate:"required,oneof=ADMIN TEACHER COORDINATOR SECRETARY"`
	Phone  string        `json:"phone,omitempty"`
	Status record.Status `json:"status,omitempty"`
}

// RecordID implements record.Record.
func (u User) RecordID() string { return u.ID }

// RecordStatus implements record.Record.
func (u User) RecordStatus() record.Status { return u.Status }

// Users is the users module.
func Users() *console.Definition[User] {
	return &console.Definition[User]{
		Resource: "users",
		Alias:    []string{"user", "staff"},
		Singular: "User",
		Plural:   "Users",
		Category: "role",
		Headers:  []string{"Name", "Email", "Role", "Phone"},
		Cells:    func(u User) []string { return []string{u.Name, u.Email, u.Role, u.Phone} },
		Label:    func(u User) string { return u.Name },
		Search:   func(u User) []string { return []string{u.Name, u.Email} },
		Classify: func(u User) string { return u.Role },
	}
}
