package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for tenant and arte fields.
const (
	maxNameLen     = 200
	maxEmailLen    = 300
	maxTitleLen    = 300
	maxSegmentLen  = 100
	minPasswordLen = 8
	maxColorLen    = 9 // "#RRGGBBAA"
)

// validateCompany checks company inputs and returns the first error found.
func validateCompany(name string, segment, primaryColor, secondaryColor *string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	if segment != nil && utf8.RuneCountInString(*segment) > maxSegmentLen {
		return "segment is too long (max 100 characters)"
	}
	if msg := validateColor(primaryColor, "primary_color"); msg != "" {
		return msg
	}
	if msg := validateColor(secondaryColor, "secondary_color"); msg != "" {
		return msg
	}
	return ""
}

func validateColor(c *string, field string) string {
	if c == nil || *c == "" {
		return ""
	}
	if !strings.HasPrefix(*c, "#") || len(*c) > maxColorLen {
		return field + " must be a hex color like #1A2B3C"
	}
	return ""
}

// validateUser checks new-user inputs and returns the first error found.
func validateUser(email, displayName, password string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "a valid email is required"
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "email is too long (max 300 characters)"
	}
	if strings.TrimSpace(displayName) == "" {
		return "display_name is required"
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	return ""
}

// validateTemplate checks template inputs and returns the first error found.
func validateTemplate(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	return ""
}

// validateArte checks arte inputs and returns the first error found.
func validateArte(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	return ""
}
