// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. It scrubs credentials,
// session and OAuth tokens, connection strings, file paths and other details
// that might be included in error messages from the store or identity providers.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// rule pairs a pattern with its replacement. Replacements may reference
// capture groups using regexp.Expand syntax.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; earlier rules take priority over later, broader ones.
var rules = []rule{
	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},

	// Connection strings with embedded credentials
	{
		regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|rediss?|mongodb|db|database|connection)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},

	// JWT token pattern - matches the standard three-part base64url-encoded JWT token format
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},

	// Opaque bearer tokens (e.g. provider access tokens)
	{regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/=]{8,}`), "Bearer [REDACTED_TOKEN]"},

	// OAuth form and query parameters
	{
		regexp.MustCompile(`(?i)\b(code|state|client_secret|access_token|refresh_token|id_token)=[^&\s"']{4,}`),
		"${1}=" + RedactedCredentialPlaceholder,
	},

	// Credentials and keys
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{
		regexp.MustCompile(`(?i)(api[_-]?key|token|secret|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		RedactedKeyPlaceholder,
	},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},

	// SQL queries and fragments
	{
		regexp.MustCompile(
			`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|GRANT)\b[\s\w,*().]+(?:FROM|INTO|SET|TABLE|DATABASE|SCHEMA|VIEW)\b(?:[\s\w,*().=$'"]+)?`,
		),
		"[REDACTED_SQL]",
	},

	// File paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},

	// Session identifiers
	{
		regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`),
		"[REDACTED_UUID]",
	},

	// Host names
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		"[REDACTED_HOST]",
	},

	{regexp.MustCompile(`(?i)(?:no such file|file not found|can't open|cannot open|file error)`), "[REDACTED_FILE_ERROR]"},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
