package logging

import (
	"regexp"
	"strings"
)

const redactionPlaceholder = "***"

// SanitizeArgs returns a sanitized preview of formatted option strings.
// Configuration documents routinely carry credentials for the processes they
// describe, so values of sensitive-looking keys are redacted before the
// strings reach a diagnostics stream.
func SanitizeArgs(args []string) string {
	if len(args) == 0 {
		return ""
	}
	sanitized := make([]string, len(args))
	for i, arg := range args {
		sanitized[i] = sanitizeArg(arg)
	}
	return strings.Join(sanitized, " ")
}

func sanitizeArg(arg string) string {
	eq := strings.Index(arg, "=")
	if eq <= 0 {
		return arg
	}
	key := arg[:eq]
	if isSensitiveKey(key) {
		return key + "=" + redactionPlaceholder
	}
	return arg
}

var sensitivePattern = regexp.MustCompile(`(?i)(password|passphrase|secret|token|apikey|privatekey)=([^\s]{1,128})`)

// SanitizeText redacts sensitive key/value pairs inside freeform strings.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}
	return sensitivePattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := strings.SplitN(match, "=", 2)
		if len(parts) != 2 {
			return match
		}
		return parts[0] + "=" + redactionPlaceholder
	})
}

func isSensitiveKey(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "password") ||
		strings.Contains(lower, "passphrase") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "apikey") ||
		strings.Contains(lower, "privatekey")
}
