package util

import "strings"

// SanitizePostgresText strips invalid UTF-8 sequences and NUL bytes, neither
// of which Postgres accepts in a text column. Entity text goes through this
// before it is stored alongside its embedding.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}
