package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type PeriodKind string

const (
	PeriodWeekly    PeriodKind = "weekly"
	PeriodMonthly   PeriodKind = "monthly"
	PeriodQuarterly PeriodKind = "quarterly"
	PeriodYearly    PeriodKind = "yearly"
	PeriodCustom    PeriodKind = "custom"
)

// DateLayout is the wire format for date-only values.
const DateLayout = "2006-01-02"

// PeriodWindow is a date range inclusive on both ends.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

type PeriodInput struct {
	Kind      PeriodKind
	Reference time.Time
	// Start and End are only read for PeriodCustom.
	Start time.Time
	End   time.Time
}

func NormalizePeriodKind(kind string) (PeriodKind, error) {
	normalized := PeriodKind(strings.ToLower(strings.TrimSpace(kind)))
	if normalized == "" {
		return PeriodMonthly, nil
	}

	switch normalized {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly, PeriodCustom:
		return normalized, nil
	default:
		return "", NewValidationError("period", ErrInvalidPeriodKind)
	}
}

// DateOnly truncates t to midnight of its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns the UTC date.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, ErrDateRequired
	}

	if parsed, err := time.Parse(DateLayout, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return DateOnly(parsed), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return DateOnly(t).Format(DateLayout)
}

// ResolvePeriod computes the window of the period containing input.Reference.
func ResolvePeriod(input PeriodInput) (PeriodWindow, error) {
	if input.Kind == PeriodCustom {
		return NewPeriodWindow(input.Start, input.End)
	}

	if input.Reference.IsZero() {
		return PeriodWindow{}, NewValidationError("reference_date", ErrDateRequired)
	}
	ref := DateOnly(input.Reference)
	year, month := ref.Year(), ref.Month()

	switch input.Kind {
	case PeriodWeekly:
		start := ref.AddDate(0, 0, -int(ref.Weekday()))
		return PeriodWindow{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case PeriodMonthly:
		return PeriodWindow{
			Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC),
		}, nil
	case PeriodQuarterly:
		firstMonth := time.Month((int(month)-1)/3*3 + 1)
		return PeriodWindow{
			Start: time.Date(year, firstMonth, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, firstMonth+3, 0, 0, 0, 0, 0, time.UTC),
		}, nil
	case PeriodYearly:
		return PeriodWindow{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	default:
		return PeriodWindow{}, NewValidationError("period", ErrInvalidPeriodKind)
	}
}

// NewPeriodWindow builds an explicit window, truncating both ends to UTC dates.
func NewPeriodWindow(start, end time.Time) (PeriodWindow, error) {
	if start.IsZero() {
		return PeriodWindow{}, NewValidationError("start_date", ErrDateRequired)
	}
	if end.IsZero() {
		return PeriodWindow{}, NewValidationError("end_date", ErrDateRequired)
	}

	window := PeriodWindow{Start: DateOnly(start), End: DateOnly(end)}
	if window.End.Before(window.Start) {
		return PeriodWindow{}, NewValidationError("end_date", ErrInvalidDateRange)
	}
	return window, nil
}

// PreviousWindow returns the period immediately before window. Custom windows
// are shifted back by their own length.
func PreviousWindow(kind PeriodKind, window PeriodWindow) (PeriodWindow, error) {
	if kind == PeriodCustom {
		days := window.Days()
		end := window.Start.AddDate(0, 0, -1)
		return PeriodWindow{Start: end.AddDate(0, 0, -(days - 1)), End: end}, nil
	}
	return ResolvePeriod(PeriodInput{Kind: kind, Reference: window.Start.AddDate(0, 0, -1)})
}

// Contains reports whether the UTC date of t falls inside the window.
func (w PeriodWindow) Contains(t time.Time) bool {
	day := DateOnly(t)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days is the number of calendar days covered, counting both ends.
func (w PeriodWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

type periodWindowJSON struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (w PeriodWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(periodWindowJSON{StartDate: FormatDate(w.Start), EndDate: FormatDate(w.End)})
}

func (w *PeriodWindow) UnmarshalJSON(data []byte) error {
	var raw periodWindowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := ParseDate(raw.StartDate)
	if err != nil {
		return NewValidationError("start_date", err)
	}
	end, err := ParseDate(raw.EndDate)
	if err != nil {
		return NewValidationError("end_date", err)
	}
	window, err := NewPeriodWindow(start, end)
	if err != nil {
		return err
	}
	*w = window
	return nil
}
