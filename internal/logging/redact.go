package logging

import "strings"

// secretKeyPatterns are key-name substrings that indicate sensitive
// values. Matching is case-insensitive. Passphrases for repositories are
// the main concern; the rest covers credentials that commonly end up in
// attribute maps.
var secretKeyPatterns = []string{
	"PASSPHRASE",
	"PASSCOMMAND",
	"PASSWORD",
	"SECRET",
	"TOKEN",
	"KEY",
	"CREDENTIAL",
}

// ShouldMask reports whether the key name suggests a sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// MaskValue redacts a sensitive string. Short values are fully masked;
// longer ones keep the last 4 characters so distinct secrets remain
// distinguishable in logs.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}
