package behavior

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateContact checks every field and returns the error message per
// invalid field name. An empty map means the message is valid.
func ValidateContact(msg ContactMessage) map[string]string {
	errs := make(map[string]string)
	values := map[string]string{
		FieldName:    msg.Name,
		FieldEmail:   msg.Email,
		FieldSubject: msg.Subject,
		FieldMessage: msg.Message,
	}
	for _, field := range formFields {
		if text := validateField(field, values[field]); text != "" {
			errs[field] = text
		}
	}
	return errs
}

// validateField returns the error message for one field, or "" when valid.
func validateField(field, value string) string {
	value = strings.TrimSpace(value)
	switch field {
	case FieldName:
		if value == "" {
			return "Name is required"
		}
		if utf8.RuneCountInString(value) < 2 {
			return "Name must be at least 2 characters"
		}
	case FieldEmail:
		if value == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldMessage:
		if value == "" {
			return "Message is required"
		}
		if utf8.RuneCountInString(value) < 10 {
			return "Message must be at least 10 characters"
		}
	}
	return ""
}
