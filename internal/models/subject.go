package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Subject is an explicit optional value. A row keyed on "no subject" and a row
// keyed on a named subject are distinct identities and are never coalesced;
// all comparisons go through structural equality instead of SQL NULL special
// cases.
type Subject struct {
	Name  string
	Valid bool
}

// NewSubject returns a present subject.
func NewSubject(name string) Subject {
	return Subject{Name: name, Valid: true}
}

// NoSubject returns the absent subject value.
func NoSubject() Subject {
	return Subject{}
}

// SubjectOf maps an optional request field to a Subject. Both a missing field
// and an empty string mean "no subject".
func SubjectOf(raw *string) Subject {
	if raw == nil || *raw == "" {
		return Subject{}
	}
	return Subject{Name: *raw, Valid: true}
}

// Equal reports structural equality: absent == absent, present values compare
// by name, absent never equals present.
func (s Subject) Equal(other Subject) bool {
	if s.Valid != other.Valid {
		return false
	}
	return !s.Valid || s.Name == other.Name
}

// Key renders the subject for composite row keys, using "default" for the
// absent value.
func (s Subject) Key() string {
	if !s.Valid {
		return "default"
	}
	return s.Name
}

// Sort returns the collation string: absent sorts before every named subject.
func (s Subject) Sort() string {
	if !s.Valid {
		return ""
	}
	return s.Name
}

// MarshalJSON renders the absent value as null.
func (s Subject) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Name)
}

// UnmarshalJSON accepts null, a string, or an empty string as absent.
func (s *Subject) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = Subject{}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "" {
		*s = Subject{}
		return nil
	}
	*s = Subject{Name: name, Valid: true}
	return nil
}

// Value implements driver.Valuer.
func (s Subject) Value() (driver.Value, error) {
	if !s.Valid {
		return nil, nil
	}
	return s.Name, nil
}

// Scan implements sql.Scanner.
func (s *Subject) Scan(src interface{}) error {
	if src == nil {
		*s = Subject{}
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = Subject{Name: v, Valid: true}
	case []byte:
		*s = Subject{Name: string(v), Valid: true}
	default:
		return fmt.Errorf("scan subject: unsupported type %T", src)
	}
	return nil
}
