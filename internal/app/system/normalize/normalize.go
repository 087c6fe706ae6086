// Package normalize holds the small string normalizers applied to user input
// before it reaches the store. Every email that ends up in a filter or a
// document goes through Email so that lookups and the unique indexes agree.
package normalize

import "strings"

// Email trims whitespace and lowercases.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role trims and lowercases a role value.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status trims and lowercases an application status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
