package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation rule patterns
var (
	// Email validation pattern, matched case-insensitively
	EmailPattern = `(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Student identifier: letters, digits and dashes
	StudentIDPattern = `^[A-Za-z0-9][A-Za-z0-9\-]{2,19}$`

	// Phone: optional leading plus, 7 to 15 digits
	PhonePattern = `^\+?[0-9]{7,15}$`

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// DateLayout is the accepted date_of_birth format
	DateLayout = "2006-01-02"
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	StudentID *regexp.Regexp
	Phone     *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
	Phone:     regexp.MustCompile(PhonePattern),
}

// StringValidation checks a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// FieldError describes one failed rule
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field errors
type Errors []FieldError

// Error implements error
func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Checker accumulates field errors
type Checker struct {
	errs Errors
}

// Check records message against field unless ok
func (c *Checker) Check(ok bool, field, message string) *Checker {
	if !ok {
		c.errs = append(c.errs, FieldError{Field: field, Message: message})
	}
	return c
}

// Err returns the collected errors, or nil
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}

// StudentID reports whether id is a well-formed student identifier
func StudentID(id string) bool {
	return NewStringValidation(id).WithPattern(CompiledPatterns.StudentID).Validate()
}

// Email reports whether email is well formed
func Email(email string) bool {
	return NewStringValidation(email).WithMaxLength(254).WithPattern(CompiledPatterns.Email).Validate()
}

// Phone reports whether an optional phone number is well formed
func Phone(phone string) bool {
	return NewStringValidation(phone).WithRequired(false).WithPattern(CompiledPatterns.Phone).Validate()
}

// Name reports whether a person's name has an acceptable length
func Name(name string) bool {
	return NewStringValidation(name).WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate()
}

// ParseDate parses an optional date. An empty string yields nil.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
