package validator

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUID regex: hex groups separated by dashes, any RFC 4122 version.
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func IsValidUUID(uuid string) bool {
	return uuidRegex.MatchString(strings.ToLower(uuid))
}

// DateLayout is the single wire format for calendar dates. Everything
// crossing the persistence or HTTP boundary uses it so dates never
// shift across timezones.
const DateLayout = "2006-01-02"

// ParseDate parses a plain YYYY-MM-DD date string.
func ParseDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// FormatDate renders t as a plain YYYY-MM-DD date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateSet parses a list of YYYY-MM-DD strings into a deduplicated,
// sorted day slice. The bool result is false if any entry is malformed.
func ParseDateSet(dateStrs []string) ([]time.Time, bool) {
	seen := make(map[string]struct{}, len(dateStrs))
	dates := make([]time.Time, 0, len(dateStrs))
	for _, s := range dateStrs {
		d, ok := ParseDate(s)
		if !ok {
			return nil, false
		}
		key := FormatDate(d)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, true
}

// IsInSlice reports whether value appears in slice.
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
