package models

import "time"

// HiddenRow marks a roster row as suppressed from a billing period onwards.
// This is a visibility cut, not a soft delete: periods strictly before the
// hide-from month keep showing the row.
type HiddenRow struct {
	StudentID       int64     `db:"student_id" json:"student_id"`
	Subject         Subject   `db:"subject" json:"subject"`
	HiddenFromYear  int       `db:"hidden_from_year" json:"hidden_from_year"`
	HiddenFromMonth int       `db:"hidden_from_month" json:"hidden_from_month"`
	HiddenAt        time.Time `db:"hidden_at" json:"hidden_at"`
}

// HidesFrom reports whether the row is suppressed when viewing the given
// period. A nil period means the legacy behavior: hidden unconditionally.
func (h HiddenRow) HidesFrom(asOf *YearMonth) bool {
	if asOf == nil || h.HiddenFromYear == 0 || h.HiddenFromMonth == 0 {
		return true
	}
	return asOf.Index() >= YearMonth{Year: h.HiddenFromYear, Month: h.HiddenFromMonth}.Index()
}

// HiddenRowView enriches a hidden row with student names resolved from the
// scheduler for admin listings.
type HiddenRowView struct {
	HiddenRow
	StudentName   string  `json:"student_name"`
	LocalizedName *string `json:"localized_name"`
	SecondaryName *string `json:"secondary_name"`
}
