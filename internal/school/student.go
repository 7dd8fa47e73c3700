package school

import (
	"strings"
	"time"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/record"
)

// Student is an enrolled pupil.
type Student struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"firstName" validate:"required,min=2"`
	LastName       string        `json:"lastName" validate:"required,min=2"`
	Email          string        `json:"email,omitempty" validate:"omitempty,email"`
	Grade          string        `json:"grade" validate:"required"`
	Section        string        `json:"section,omitempty"`
	GuardianName   string        `json:"guardianName,omitempty"`
	GuardianPhone  string        `json:"guardianPhone,omitempty"`
	EnrollmentDate time.Time     `json:"enrollmentDate"`
	Status         record.Status `json:"status,omitempty"`
}

// RecordID implements record.Record.
func (s Student) RecordID() string { return s.ID }

// RecordStatus implements record.Record.
func (s Student) RecordStatus() record.Status { return s.Status }

// FullName returns "First Last".
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Students is the students module.
func Students() *console.Definition[Student] {
	return &console.Definition[Student]{
		Resource: "students",
		Alias:    []string{"student", "pupils"},
		Singular: "Student",
		Plural:   "Students",
		Category: "grade",
		Headers:  []string{"Name", "Email", "Grade", "Section", "Enrolled"},
		Cells: func(s Student) []string {
			return []string{s.FullName(), s.Email, s.Grade, s.Section, formatDate(s.EnrollmentDate)}
		},
		Label:    Student.FullName,
		Search:   func(s Student) []string { return []string{s.FirstName, s.LastName, s.FullName(), s.Email} },
		Classify: func(s Student) string { return s.Grade },
	}
}
