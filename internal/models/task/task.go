package task

import (
	"fmt"
	"strings"
	"time"
)

type ID int64

type Task struct {
	ID          ID        `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Completed   bool      `json:"completed" db:"completed"`
	Priority    Priority  `json:"priority" db:"priority"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
}

type Priority string

const PriorityLow Priority = "Low"
const PriorityMedium Priority = "Medium"
const PriorityHigh Priority = "High"

const DefaultPriority = PriorityMedium

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

func ParsePriority(s string) (Priority, error) {
	for _, known := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q: expected Low, Medium or High", s)
}

// DateLayout is the on-disk format of due_date.
const DateLayout = "2006-01-02"

// legacyDateLayout matches dates written by the calendar widget of the old app.
const legacyDateLayout = "1/2/06"

func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(legacyDateLayout, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func (t *Task) IsOverdue(today time.Time) bool {
	return !t.Completed && t.DueDate.Before(DateOf(today))
}
