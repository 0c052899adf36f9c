// Package ingest maps loosely-typed spreadsheet rows onto student candidates.
// Upload tooling exports rows with inconsistent header spellings, so each
// logical field carries an ordered list of accepted key aliases.
package ingest

import (
	"fmt"
	"strings"
)

// Row is one untyped record from a bulk upload.
type Row map[string]any

// Candidate is a row that mapped onto the student shape. Validity is checked
// separately so callers can count rejects.
type Candidate struct {
	Name       string
	Phone      string
	Address    *string
	PrevCourse *string
}

// Accepted key aliases per logical field, evaluated in priority order.
// The first alias holding a non-empty value wins.
var (
	nameAliases       = []string{"Name", "name"}
	phoneAliases      = []string{"Phone", "phone"}
	addressAliases    = []string{"Address", "address"}
	prevCourseAliases = []string{"Previous Course", "PreviousCourse", "prev_course", "previous course"}
)

// lookup returns the first non-empty value among the aliases, stringified.
func lookup(row Row, aliases []string) string {
	for _, key := range aliases {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		s := fmt.Sprintf("%v", v)
		if s != "" {
			return s
		}
	}
	return ""
}

// optional returns a pointer to the looked-up value, nil when absent.
func optional(row Row, aliases []string) *string {
	s := lookup(row, aliases)
	if s == "" {
		return nil
	}
	return &s
}

// MapRow extracts a student candidate from a raw upload row.
func MapRow(row Row) Candidate {
	return Candidate{
		Name:       strings.TrimSpace(lookup(row, nameAliases)),
		Phone:      strings.TrimSpace(lookup(row, phoneAliases)),
		Address:    optional(row, addressAliases),
		PrevCourse: optional(row, prevCourseAliases),
	}
}

// Valid reports whether the candidate survives ingestion. Rows without a name
// or phone are dropped, as is the literal "undefined" phone that broken
// exports produce.
func (c Candidate) Valid() bool {
	return c.Name != "" && c.Phone != "" && c.Phone != "undefined"
}
