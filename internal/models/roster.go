package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// RowSource says where a roster row came from.
type RowSource string

const (
	// RowSourceScheduled rows are backed by live scheduler assignments.
	RowSourceScheduled RowSource = "scheduled"
	// RowSourceManual rows exist only because a pricing record was added for
	// the (student, subject) pair.
	RowSourceManual RowSource = "manual"
)

// ScheduleEntry is one merged time block for a roster row. StartTime and
// EndTime are 24h "15:04" strings so lexical order matches temporal order;
// Time carries the formatted display range and Days the weekday letters
// (e.g. "MWF").
type ScheduleEntry struct {
	StartTime string `json:"-"`
	EndTime   string `json:"-"`
	Time      string `json:"time"`
	Days      string `json:"days"`
}

// FormatTimeRange renders the display range for the entry's current bounds.
func (e *ScheduleEntry) FormatTimeRange() {
	e.Time = fmt.Sprintf("%s - %s", formatClock(e.StartTime), formatClock(e.EndTime))
}

func formatClock(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

// weekdayLetters indexes by time.Weekday / Postgres DOW (0 = Sunday).
var weekdayLetters = [7]string{"Su", "M", "T", "W", "Th", "F", "Sa"}

// WeekdayLetters renders a weekday set as the concatenated letter string,
// ascending by day-of-week ("MWF", "TTh", ...).
func WeekdayLetters(days []int) string {
	var b strings.Builder
	for d := 0; d < 7; d++ {
		for _, day := range days {
			if day == d {
				b.WriteString(weekdayLetters[d])
				break
			}
		}
	}
	return b.String()
}

// StudentSubjectRow is the unit rendered and billed: one row per
// (student, subject) pair, or a single subject-less row for students with no
// subjects at all.
type StudentSubjectRow struct {
	StudentID     int64           `json:"student_id"`
	Name          string          `json:"name"`
	LocalizedName *string         `json:"localized_name"`
	SecondaryName *string         `json:"secondary_name"`
	TeacherName   *string         `json:"teacher_name"`
	Schedules     []ScheduleEntry `json:"schedules"`
	Subject       Subject         `json:"subject"`
	Source        RowSource       `json:"source"`
	RowKey        string          `json:"row_key"`
}

// RowKey returns the composite row key, e.g. "41-Math" or "41-default".
func RowKey(studentID int64, subject Subject) string {
	return fmt.Sprintf("%d-%s", studentID, subject.Key())
}

var bracketedName = regexp.MustCompile(`\[([^\]]+)\]`)
var trailingBracket = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)

// SplitDisplayName separates a scheduler display name into the clean name and
// the bracketed localized segment, e.g. "Kim Ji Hye [김지혜]" into
// ("Kim Ji Hye", "김지혜"). The localized part is nil when no bracket exists.
func SplitDisplayName(raw string) (string, *string) {
	match := bracketedName.FindStringSubmatch(raw)
	clean := strings.TrimSpace(trailingBracket.ReplaceAllString(raw, ""))
	if match == nil {
		return clean, nil
	}
	localized := match[1]
	return clean, &localized
}

// YearMonth is a billing period.
type YearMonth struct {
	Year  int
	Month int
}

// Index linearises the period for ordering comparisons.
func (ym YearMonth) Index() int {
	return ym.Year*12 + ym.Month
}

// MonthBounds returns the first and last date of the period as YYYY-MM-DD.
func (ym YearMonth) MonthBounds() (string, string) {
	first := time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// Days returns the number of days in the period's month.
func (ym YearMonth) Days() int {
	first := time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
