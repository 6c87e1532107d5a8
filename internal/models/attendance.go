package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusTA      AttendanceStatus = "ta"
	AttendanceStatusNoShow  AttendanceStatus = "noshow"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusTA, AttendanceStatusNoShow:
		return true
	default:
		return false
	}
}

// Markable reports whether the status may be written through the direct set
// operation. No-show is reachable only by cycling.
func (s AttendanceStatus) Markable() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusTA:
		return true
	default:
		return false
	}
}

// Next returns the status the cycle operation advances to, with ok=false once
// the cycle falls off the end (noshow clears the record).
func (s AttendanceStatus) Next() (AttendanceStatus, bool) {
	switch s {
	case AttendanceStatusPresent:
		return AttendanceStatusAbsent, true
	case AttendanceStatusAbsent:
		return AttendanceStatusTA, true
	case AttendanceStatusTA:
		return AttendanceStatusNoShow, true
	default:
		return "", false
	}
}

// AttendanceRecord is one mark for a (student, date, subject) key. Dates are
// plain YYYY-MM-DD strings end to end; the repositories TO_CHAR them out of
// Postgres so no timezone arithmetic ever shifts a class day.
type AttendanceRecord struct {
	ID        string           `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	Date      string           `db:"date" json:"date"`
	Subject   Subject          `db:"subject" json:"subject"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     *string          `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// ToggleResult is what the cycle operation produces: the stored record after
// an upsert step, or just the cleared key with a null status after the final
// step.
type ToggleResult struct {
	StudentID int64             `json:"student_id"`
	Date      string            `json:"date"`
	Subject   Subject           `json:"subject"`
	Status    *AttendanceStatus `json:"status"`
	Record    *AttendanceRecord `json:"record,omitempty"`
}

// StudentSummary aggregates one student's marks for a month.
type StudentSummary struct {
	PresentCount int `db:"present_count" json:"present_count"`
	AbsentCount  int `db:"absent_count" json:"absent_count"`
	TotalRecords int `db:"total_records" json:"total_records"`
}

// MonthlySummaryRow is the per-student slice of the month-wide summary.
type MonthlySummaryRow struct {
	StudentID     int64   `db:"student_id" json:"student_id"`
	Name          string  `json:"name"`
	SecondaryName *string `json:"secondary_name,omitempty"`
	PresentCount  int     `db:"present_count" json:"present_count"`
	AbsentCount   int     `db:"absent_count" json:"absent_count"`
}

// Note is free text attached to a (student, year, month, subject) cell,
// independent of any attendance record's lifecycle.
type Note struct {
	StudentID int64     `db:"student_id" json:"student_id"`
	Year      int       `db:"year" json:"year"`
	Month     int       `db:"month" json:"month"`
	Subject   Subject   `db:"subject" json:"subject"`
	Notes     string    `db:"notes" json:"notes"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
