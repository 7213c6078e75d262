package queries

import "fmt"

// Sort is a validated ordering clause. Sort keys arrive from query strings
// and only ever reach the store layer through an explicit allow-list; an
// unrecognized key silently falls back to the default instead of propagating.
type Sort struct {
	Column     string
	Descending bool
}

// ParseSort resolves a client-supplied sort key and order against the
// allowed key-to-column mapping.
func ParseSort(key, order string, allowed map[string]string, fallback string) Sort {
	column, ok := allowed[key]
	if !ok {
		column = fallback
	}
	return Sort{Column: column, Descending: order != "asc"}
}

// Clause renders the ORDER BY expression for the store layer.
func (v Sort) Clause() string {
	if v.Descending {
		return fmt.Sprintf("%s DESC", v.Column)
	}
	return fmt.Sprintf("%s ASC", v.Column)
}
