package models

import "time"

// Teacher is the slice of scheduler teacher data this app cares about.
type Teacher struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CommissionRecord stores the per-class commission rate for a
// (teacher, student) pair.
type CommissionRecord struct {
	TeacherID          int64     `db:"teacher_id" json:"teacher_id"`
	StudentID          int64     `db:"student_id" json:"student_id"`
	CommissionPerClass float64   `db:"commission_per_class" json:"commission_per_class"`
	Currency           Currency  `db:"currency" json:"currency"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherPaymentRecord tracks whether a (teacher, student) commission has been
// paid out for a billing month.
type TeacherPaymentRecord struct {
	TeacherID   int64   `db:"teacher_id" json:"teacher_id"`
	StudentID   int64   `db:"student_id" json:"student_id"`
	Year        int     `db:"year" json:"year"`
	Month       int     `db:"month" json:"month"`
	Paid        bool    `db:"paid" json:"paid"`
	PaymentDate *string `db:"payment_date" json:"payment_date"`
	Notes       *string `db:"notes" json:"notes"`
}

// CommissionRow is one (primary teacher, student) pairing with its rate,
// class count and payment state for a month.
type CommissionRow struct {
	ID                 string   `json:"id"`
	StudentID          int64    `json:"student_id"`
	StudentName        string   `json:"student_name"`
	LocalizedName      *string  `json:"localized_name"`
	SecondaryName      *string  `json:"secondary_name"`
	TeacherID          int64    `json:"teacher_id"`
	TeacherName        string   `json:"teacher_name"`
	CommissionPerClass float64  `json:"commission_per_class"`
	Currency           Currency `json:"currency"`
	ClassCount         int      `json:"class_count"`
	TotalCommission    float64  `json:"total_commission"`
	Paid               bool     `json:"paid"`
	PaymentDate        *string  `json:"payment_date"`
	PaymentNotes       *string  `json:"payment_notes"`
}
