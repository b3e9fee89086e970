package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Field validators mirror the rules applied on the dashboard forms. Each
// function returns a human-readable message, or "" when the value passes.
// Validators never panic and never return errors as Go errors; the caller
// collects messages into an Errors map and gates submission on it.

var (
	codedIDPattern    = regexp.MustCompile(`^[A-Z]{4}\d{3}$`)
	capitalizedText   = regexp.MustCompile(`^[A-Z][a-zA-Z\s]*$`)
	datePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	strictEmailDomain = regexp.MustCompile(`^[a-z0-9._%+-]+@(gmail|outlook)\.com$`)
)

// Errors maps a field name to its validation message. An empty string means
// the field is valid; a populated map entry blocks submission.
type Errors map[string]string

// OK reports whether every entry in the map is empty.
func (e Errors) OK() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Merge copies every entry of other into e, overwriting existing keys.
func (e Errors) Merge(other Errors) {
	for field, msg := range other {
		e[field] = msg
	}
}

// First returns the first non-empty message, or "" when the map is clean.
// Map iteration order is unspecified, so this is only for logging.
func (e Errors) First() string {
	for _, msg := range e {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// Required rejects empty or whitespace-only values.
func Required(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", field)
	}
	return ""
}

// CodedID validates identifiers of the form ABCD123: exactly four uppercase
// letters followed by three digits.
func CodedID(field, value string) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	if !codedIDPattern.MatchString(value) {
		return fmt.Sprintf("%s must be 4 uppercase letters followed by 3 digits (e.g. FARM009)", field)
	}
	return ""
}

// CapitalizedText validates free-text fields (names, locations, zones): a
// leading capital letter followed by letters and spaces only. A maxLen of 0
// disables the length bound.
func CapitalizedText(field, value string, maxLen int) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	if !capitalizedText.MatchString(value) {
		return fmt.Sprintf("%s must start with a capital letter and contain only letters and spaces", field)
	}
	if maxLen > 0 && len(value) > maxLen {
		return fmt.Sprintf("%s must be at most %d characters", field, maxLen)
	}
	return ""
}

// Date validates YYYY-MM-DD formatted values. Only the shape is checked, the
// same way the forms did it.
func Date(field, value string) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	if !datePattern.MatchString(value) {
		return fmt.Sprintf("%s must use the YYYY-MM-DD format", field)
	}
	return ""
}

// Number validates a decimal value within [min, max]. Exclusive of max when
// maxExclusive is set (quantities use "< 999").
func Number(field, value string, min, max float64, maxExclusive bool) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Sprintf("%s must be a number", field)
	}
	if n < min {
		return fmt.Sprintf("%s must be at least %s", field, trimFloat(min))
	}
	if maxExclusive {
		if n >= max {
			return fmt.Sprintf("%s must be less than %s", field, trimFloat(max))
		}
	} else if n > max {
		return fmt.Sprintf("%s must be at most %s", field, trimFloat(max))
	}
	return ""
}

// PositiveNumber is a shorthand for a strictly positive, unbounded value.
func PositiveNumber(field, value string) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Sprintf("%s must be a number", field)
	}
	if n <= 0 {
		return fmt.Sprintf("%s must be greater than zero", field)
	}
	return ""
}

// StrictEmail enforces the dashboard's strict-domain rule: lowercase local
// part and a gmail.com or outlook.com domain. Used by the record forms.
func StrictEmail(field, value string) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	if !strictEmailDomain.MatchString(value) {
		return fmt.Sprintf("%s must be a lowercase gmail.com or outlook.com address", field)
	}
	return ""
}

// LooseEmail is the auth-stub variant: any value containing "@" passes.
// Kept distinct from StrictEmail on purpose; the two rules coexist in the
// product and unifying them is a pending product decision.
func LooseEmail(field, value string) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	if !strings.Contains(value, "@") {
		return fmt.Sprintf("%s must be a valid email address", field)
	}
	return ""
}

// Enum checks membership in a fixed allowed list.
func Enum(field, value string, allowed []string) string {
	if msg := Required(field, value); msg != "" {
		return msg
	}
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", "))
}

// MinLen rejects values shorter than n characters.
func MinLen(field, value string, n int) string {
	if len(value) < n {
		return fmt.Sprintf("%s must be at least %d characters", field, n)
	}
	return ""
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
