package school

import (
	"time"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/record"
)

// Event is a scheduled school activity.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title" validate:"required,min=3"`
	Description string        `json:"description" validate:"required,min=10"`
	Type        string        `json:"type" validate:"required,oneof=ACADEMIC SPORTS CULTURAL MEETING"`
	Location    string        `json:"location,omitempty"`
	StartDate   time.Time     `json:"startDate" validate:"required"`
	EndDate     time.Time     `json:"endDate" validate:"required,gtefield=StartDate"`
	Status      record.Status `json:"status,omitempty"`
}

// RecordID implements record.Record.
func (e Event) RecordID() string { return e.ID }

// RecordStatus implements record.Record.
func (e Event) RecordStatus() record.Status { return e.Status }

// Events is the events module.
func Events() *console.Definition[Event] {
	return &console.Definition[Event]{
		Resource: "events",
		Alias:    []string{"event", "calendar"},
		Singular: "Event",
		Plural:   "Events",
		Category: "type",
		Headers:  []string{"Title", "Type", "Location", "Starts", "Ends"},
		Cells: func(e Event) []string {
			return []string{e.Title, e.Type, e.Location, formatDate(e.StartDate), formatDate(e.EndDate)}
		},
		Label:    func(e Event) string { return e.Title },
		Search:   func(e Event) []string { return []string{e.Title, e.Description, e.Location} },
		Classify: func(e Event) string { return e.Type },
	}
}
