package util

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// Underscored replaces every run of whitespace with a single underscore.
func Underscored(s string) string {
	return whitespaceRun.ReplaceAllString(s, "_")
}
