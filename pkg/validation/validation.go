package validation

import (
	"regexp"
	"strings"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// characters that are unsafe in a download filename
	filenameStripper = strings.NewReplacer(
		"<", "", ">", "", ":", "", "\"", "", "/", "", "\\", "", "|", "", "?", "", "*", "",
	)
)

// ValidateUsername validates username format
func ValidateUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return false
	}
	return usernameRegex.MatchString(username)
}

// ValidatePassword validates password strength
func ValidatePassword(password string) bool {
	return len(password) >= 6
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}

// SanitizeFilename strips characters that break Content-Disposition
// filenames or path handling on common filesystems.
func SanitizeFilename(name string) string {
	name = SanitizeString(name)
	name = filenameStripper.Replace(name)
	return strings.TrimSpace(name)
}
