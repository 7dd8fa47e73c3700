package school

import (
	"time"
	"unicode/utf8"

	"github.com/rshade/schoolconsole/internal/console"
)

const (
	dateLayout       = "2006-01-02"
	descriptionWidth = 40
)

// Registry returns every module in display order.
func Registry() *console.Registry {
	return console.NewRegistry(
		Students(),
		Users(),
		Events(),
		BehaviorRecords(),
		Courses(),
	)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
