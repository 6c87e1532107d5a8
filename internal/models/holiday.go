package models

import "time"

// Holiday is a no-class date. The grid uses these to suppress marking and
// percentage computation; the server only stores them.
type Holiday struct {
	ID        string    `db:"id" json:"id"`
	Date      string    `db:"date" json:"date"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
