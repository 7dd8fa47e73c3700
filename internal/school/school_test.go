package school_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/schoolconsole/internal/record"
	"github.com/rshade/schoolconsole/internal/school"
	"github.com/rshade/schoolconsole/internal/validate"
)

func TestRegistryOrderAndAliases(t *testing.T) {
	registry := school.Registry()

	names := make([]string, 0, 5)
	for _, m := range registry.All() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"students", "users", "events", "behavior-records", "courses"}, names)

	tests := []struct {
		alias string
		want  string
	}{
		{alias: "Student", want: "students"},
		{alias: "staff", want: "users"},
		{alias: "calendar", want: "events"},
		{alias: "behaviour", want: "behavior-records"},
		{alias: "subjects", want: "courses"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			m, err := registry.Lookup(tt.alias)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Name())
		})
	}
}

func TestStudentCells(t *testing.T) {
	def := school.Students()
	s := school.Student{
		ID:             "stu-001",
		FirstName:      "Ana",
		LastName:       "Gómez",
		Email:          "ana@school.test",
		Grade:          "5",
		Section:        "A",
		EnrollmentDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:         record.StatusActive,
	}

	cells := def.Cells(s)
	require.Len(t, cells, len(def.Headers))
	assert.Equal(t, "Ana Gómez", cells[0])
	assert.Equal(t, "2024-03-01", cells[len(cells)-1])
	assert.Equal(t, "Ana Gómez", def.Label(s))
	assert.Equal(t, "5", def.Classify(s))
}

func TestCellsMatchHeaders(t *testing.T) {
	assert.Len(t, school.Users().Cells(school.User{}), len(school.Users().Headers))
	assert.Len(t, school.Events().Cells(school.Event{}), len(school.Events().Headers))
	assert.Len(t, school.BehaviorRecords().Cells(school.BehaviorRecord{}), len(school.BehaviorRecords().Headers))
	assert.Len(t, school.Courses().Cells(school.Course{}), len(school.Courses().Headers))
}

func TestEventValidation(t *testing.T) {
	start := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	event := school.Event{
		Title:       "Science fair",
		Description: "Annual science fair in the gym",
		Type:        "ACADEMIC",
		StartDate:   start,
		EndDate:     start.Add(-time.Hour),
	}

	err := validate.Struct(event)
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	_, ok := verrs.Field("endDate")
	assert.True(t, ok)

	event.EndDate = start.Add(2 * time.Hour)
	require.NoError(t, validate.Struct(event))
}
