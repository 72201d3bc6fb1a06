// Package checks defines the per-host check records healthdigest summarises.
// Each monitored unit type owns its column list and its CSV form; the
// records are immutable once built.
package checks

import (
	"fmt"
	"strings"
)

const (
	fieldSep  = ","
	noneToken = "None"
)

// Result is one host's check record. CSV renders it as a single row whose
// cells line up with Header.
type Result interface {
	Header() string
	CSV() string
	Unit() string
	IPv4() string
}

// opt renders an optional cell.
func opt(v *string) string {
	if v == nil {
		return noneToken
	}
	return *v
}

// Str returns a pointer to s, for building records in code.
func Str(s string) *string {
	return &s
}

// FormatIPv4 right-aligns every octet to width three so addresses line up
// in a fixed-width column. Already aligned input comes back unchanged.
func FormatIPv4(ipv4 string) string {
	octets := strings.Split(ipv4, ".")
	for i, o := range octets {
		octets[i] = fmt.Sprintf("%3s", strings.TrimLeft(o, " "))
	}
	return strings.Join(octets, ".")
}

// DeserialiseCSV splits a record line into optional cells. Cells are
// trimmed, the address cell loses its alignment spaces, and "None" becomes
// nil.
func DeserialiseCSV(line string) ([]*string, error) {
	raw := strings.Split(line, fieldSep)
	if len(raw) < 2 {
		return nil, fmt.Errorf("record has %d cells, need at least time and ipv4", len(raw))
	}

	cells := make([]*string, len(raw))
	for i, cell := range raw {
		cell = strings.TrimSpace(cell)
		if i == 1 {
			cell = strings.ReplaceAll(cell, " ", "")
		}
		if cell == noneToken {
			continue
		}
		cells[i] = Str(cell)
	}
	return cells, nil
}

// JoinOptional packs several optional values into one multi-component cell.
// It returns nil when every value is missing; otherwise gaps are written as
// "None" and values are joined with "_".
func JoinOptional(values []*string) *string {
	parts := make([]string, len(values))
	present := false
	for i, v := range values {
		if v != nil {
			present = true
		}
		parts[i] = opt(v)
	}
	if !present {
		return nil
	}
	return Str(strings.Join(parts, "_"))
}
