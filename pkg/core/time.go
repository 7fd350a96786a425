package core

import "regexp"

// timePattern accepts "MM:SS" and "HH:MM:SS" with 1-2 digit leading fields.
var timePattern = regexp.MustCompile(`^(?:\d{1,2}:)?[0-5]?\d:[0-5]\d$`)

// ValidTime reports whether s is a playback timestamp in "MM:SS" or
// "HH:MM:SS" form. The empty string is valid and means "untimed".
func ValidTime(s string) bool {
	if s == "" {
		return true
	}
	return timePattern.MatchString(s)
}
