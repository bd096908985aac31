package respond

import (
	"regexp"
)

var (
	// Applied in order: the Anthropic pattern must run before the generic
	// "sk-" one, which in turn never matches an already masked key.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	googleKeyPattern    = regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)

	// Credentials embedded in a connection URL, e.g. redis://:secret@host:6379.
	urlPasswordPattern = regexp.MustCompile(`://([^:/@]*):([^@/]+)@`)
)

// SanitizeError returns the error message with API keys and URL passwords masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = googleKeyPattern.ReplaceAllString(msg, "AIza****")
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
