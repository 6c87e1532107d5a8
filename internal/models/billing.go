package models

import "time"

// Currency codes the business bills in.
type Currency string

const (
	CurrencyPHP Currency = "PHP"
	CurrencyKRW Currency = "KRW"
)

// Valid returns true when the currency is a supported code.
func (c Currency) Valid() bool {
	return c == CurrencyPHP || c == CurrencyKRW
}

// PricingRecord stores the per-class price for a (student, subject) pair.
// Changing the currency re-saves the then-current number under the new code:
// the raw amount is preserved, only its unit changes.
type PricingRecord struct {
	StudentID     int64     `db:"student_id" json:"student_id"`
	Subject       string    `db:"subject" json:"subject"`
	PricePerClass float64   `db:"price_per_class" json:"price_per_class"`
	Currency      Currency  `db:"currency" json:"currency"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// PaymentRecord tracks whether a (student, subject) row has been paid for a
// billing month. PaymentDate is stamped when flipping to paid and cleared when
// flipping back.
type PaymentRecord struct {
	StudentID   int64   `db:"student_id" json:"student_id"`
	Subject     string  `db:"subject" json:"subject"`
	Year        int     `db:"year" json:"year"`
	Month       int     `db:"month" json:"month"`
	Paid        bool    `db:"paid" json:"paid"`
	PaymentDate *string `db:"payment_date" json:"payment_date"`
	Notes       *string `db:"notes" json:"notes"`
}

// BillingRow is a roster row joined with pricing, shared presence count and
// payment state for one month.
type BillingRow struct {
	StudentSubjectRow
	PricePerClass float64  `json:"price_per_class"`
	Currency      Currency `json:"currency"`
	PresentCount  int      `json:"present_count"`
	TotalTuition  float64  `json:"total_tuition"`
	Paid          bool     `json:"paid"`
	PaymentDate   *string  `json:"payment_date"`
	PaymentNotes  *string  `json:"payment_notes"`
}

// CurrencyTotals accumulates one currency's slice of a summary. A paid row
// always lands in the paid bucket; an unpaid row counts only when it actually
// owes something.
type CurrencyTotals struct {
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Unpaid      float64 `json:"unpaid"`
	PaidCount   int     `json:"paid_count"`
	UnpaidCount int     `json:"unpaid_count"`
}

// Add folds one row's total into the bucket.
func (t *CurrencyTotals) Add(total float64, paid bool) {
	t.Total += total
	if paid {
		t.Paid += total
		t.PaidCount++
	} else if total > 0 {
		t.Unpaid += total
		t.UnpaidCount++
	}
}

// BillingSummary is the month-wide tuition reduction grouped by currency.
type BillingSummary struct {
	TotalRows    int                          `json:"total_rows"`
	TotalPresent int                          `json:"total_present"`
	PaidCount    int                          `json:"paid_count"`
	UnpaidCount  int                          `json:"unpaid_count"`
	ByCurrency   map[Currency]*CurrencyTotals `json:"by_currency"`
}

// CommissionSummary is the month-wide commission reduction grouped by currency.
type CommissionSummary struct {
	TotalRows    int                          `json:"total_rows"`
	TotalClasses int                          `json:"total_classes"`
	PaidCount    int                          `json:"paid_count"`
	UnpaidCount  int                          `json:"unpaid_count"`
	ByCurrency   map[Currency]*CurrencyTotals `json:"by_currency"`
}
