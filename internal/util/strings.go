// Package util holds small string helpers for user-facing messages.
package util

import (
	"strconv"
	"strings"
)

// JoinOrNone joins strings with ", " or returns "(none)" for empty slices.
func JoinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Suffix returns ext unless count is exactly 1, for building words like
// "status"+Suffix(n, "es").
func Suffix(count int, ext string) string {
	return Pluralize(count, "", ext)
}

// Count prefixes the counted word with its count: "1 record", "3 records".
func Count(count int, singular, plural string) string {
	return strconv.Itoa(count) + " " + Pluralize(count, singular, plural)
}
