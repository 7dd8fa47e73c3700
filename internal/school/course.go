package school

import (
	"strconv"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/record"
)

// Course is a subject offered in a school year.
type Course struct {
	ID      string        `json:"id"`
	Name    string        `json:"name" validate:"required,min=3"`
	Code    string        `json:"code" validate:"required"`
	Level   string        `json:"level" validate:"required,oneof=PRIMARY MIDDLE HIGH"`
	Teacher string        `json:"teacher,omitempty"`
	Credits int           `json:"credits" validate:"gte=0"`
	Status  record.Status `json:"status,omitempty"`
}

// RecordID implements record.Record.
func (c Course) RecordID() string { return c.ID }

// RecordStatus implements record.Record.
func (c Course) RecordStatus() record.Status { return c.Status }

// Courses is the courses module.
func Courses() *console.Definition[Course] {
	return &console.Definition[Course]{
		Resource: "courses",
		Alias:    []string{"course", "subjects"},
		Singular: "Course",
		Plural:   "Courses",
		Category: "level",
		Headers:  []string{"Code", "Name", "Level", "Teacher", "Credits"},
		Cells: func(c Course) []string {
			return []string{c.Code, c.Name, c.Level, c.Teacher, strconv.Itoa(c.Credits)}
		},
		Label:    func(c Course) string { return c.Name },
		Search:   func(c Course) []string { return []string{c.Name, c.Code, c.Teacher} },
		Classify: func(c Course) string { return c.Level },
	}
}
