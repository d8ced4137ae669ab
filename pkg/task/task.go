package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors returned by the parse helpers. The store itself never
// validates; callers check input before it reaches a mutation.
var (
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrInvalidDate       = errors.New("invalid date")
)

// Priority is a task's urgency. The empty value means no priority was set.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Priorities lists the selectable priorities in display order.
var Priorities = []Priority{Low, Medium, High}

// ParsePriority accepts any casing of low, medium or high. An empty string
// yields the empty Priority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, p := range Priorities {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Label returns the capitalized form shown in pickers.
func (p Priority) Label() string {
	if p == "" {
		return "None"
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Recurrence marks a repeating task. The empty value is a one-off task.
type Recurrence string

const (
	Daily   Recurrence = "Daily"
	Weekly  Recurrence = "Weekly"
	Monthly Recurrence = "Monthly"
)

// Recurrences lists the selectable recurrences in display order.
var Recurrences = []Recurrence{Daily, Weekly, Monthly}

// ParseRecurrence accepts any casing of daily, weekly or monthly. Empty and
// "none" yield the one-off value.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return "", nil
	}
	for _, r := range Recurrences {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
}

// Label returns the picker text, "None" for one-off tasks.
func (r Recurrence) Label() string {
	if r == "" {
		return "None"
	}
	return string(r)
}

// Task is one entry in the ordered task list.
type Task struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Completed bool       `json:"completed" yaml:"completed"`
	Priority  Priority   `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate   Date       `json:"dueDate,omitzero" yaml:"dueDate,omitempty"`
	Recurring Recurrence `json:"recurring,omitempty" yaml:"recurring,omitempty"`
}

// Payload carries the fields of a new task.
type Payload struct {
	Title     string     `json:"title"`
	Priority  Priority   `json:"priority,omitempty"`
	DueDate   Date       `json:"dueDate,omitzero"`
	Recurring Recurrence `json:"recurring,omitempty"`
}

// Validate reports the first problem with the payload, if any.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if _, err := ParsePriority(string(p.Priority)); err != nil {
		return err
	}
	if _, err := ParseRecurrence(string(p.Recurring)); err != nil {
		return err
	}
	return nil
}

// Patch is a partial edit. Nil fields are left untouched; a pointer to the
// zero value clears an optional field.
type Patch struct {
	Title     *string     `json:"title,omitempty"`
	Priority  *Priority   `json:"priority,omitempty"`
	DueDate   *Date       `json:"dueDate,omitempty"`
	Recurring *Recurrence `json:"recurring,omitempty"`
}

// Validate rejects a patch that would blank the title or set an unknown enum.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.Priority != nil {
		if _, err := ParsePriority(string(*p.Priority)); err != nil {
			return err
		}
	}
	if p.Recurring != nil {
		if _, err := ParseRecurrence(string(*p.Recurring)); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the patch sets no field.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Priority == nil && p.DueDate == nil && p.Recurring == nil
}

func (p Patch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	return t
}

// Date is a calendar day with no time-of-day or zone. The zero Date means
// "no due date".
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// NewDate returns the calendar day y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses YYYY-MM-DD. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String formats d as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// AddDays returns the day n days after d.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// DaysUntil returns the whole number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the date as a plain YAML string.
func (d Date) MarshalYAML() (any, error) { return d.String(), nil }

// QuickDate is a labelled due-date shortcut offered by date pickers.
type QuickDate struct {
	Label string
	Date  Date
}

// QuickDates returns the Today / Tomorrow / Next Week choices relative to now.
func QuickDates(now time.Time) []QuickDate {
	today := DateOf(now)
	return []QuickDate{
		{Label: "Today", Date: today},
		{Label: "Tomorrow", Date: today.AddDays(1)},
		{Label: "Next Week", Date: today.AddDays(7)},
	}
}
