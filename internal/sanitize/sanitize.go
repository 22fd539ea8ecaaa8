// Package sanitize maps URL fragments to filesystem-safe path segments.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	protocolPrefix = regexp.MustCompile(`^https?://`)
	hostPrefix     = regexp.MustCompile(`https?://[^/]+/`)
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// Filename turns the trailing segment of a URL into a safe file name
// (without extension). Any protocol-and-host prefix is dropped and every
// character outside [A-Za-z0-9_-] becomes an underscore.
func Filename(segment string) string {
	segment = hostPrefix.ReplaceAllString(segment, "")
	return unsafeChars.ReplaceAllString(segment, "_")
}

// Foldername turns a bucket key into a safe folder name. The protocol
// prefix is stripped, unsafe characters become underscores, and leading or
// trailing underscores are trimmed.
func Foldername(key string) string {
	key = protocolPrefix.ReplaceAllString(key, "")
	key = unsafeChars.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}
