package school

import (
	"time"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/record"
)

// BehaviorRecord is a disciplinary or commendation note about a student.
type BehaviorRecord struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"studentId" validate:"required"`
	StudentName string        `json:"studentName,omitempty"`
	Description string        `json:"description" validate:"required,min=10"`
	Severity    string        `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH"`
	Date        time.Time     `json:"date" validate:"required"`
	ReportedBy  string        `json:"reportedBy,omitempty"`
	Status      record.Status `json:"status,omitempty"`
}

// RecordID implements record.Record.
func (b BehaviorRecord) RecordID() string { return b.ID }

// RecordStatus implements record.Record.
func (b BehaviorRecord) RecordStatus() record.Status { return b.Status }

// BehaviorRecords is the behavior records module.
func BehaviorRecords() *console.Definition[BehaviorRecord] {
	return &console.Definition[BehaviorRecord]{
		Resource: "behavior-records",
		Alias:    []string{"behavior", "behaviour", "incidents"},
		Singular: "Behavior record",
		Plural:   "Behavior records",
		Category: "severity",
		Headers:  []string{"Student", "Severity", "Date", "Reported by", "Description"},
		Cells: func(b BehaviorRecord) []string {
			return []string{b.StudentName, b.Severity, formatDate(b.Date), b.ReportedBy, truncate(b.Description, descriptionWidth)}
		},
		Label: func(b BehaviorRecord) string {
			if b.StudentName == "" {
				return b.ID
			}
			return b.StudentName + " (" + formatDate(b.Date) + ")"
		},
		Search:   func(b BehaviorRecord) []string { return []string{b.StudentName, b.Description, b.ReportedBy} },
		Classify: func(b BehaviorRecord) string { return b.Severity },
	}
}
