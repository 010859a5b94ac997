package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

// CleanFilename turns "Daft_Punk-Around_The_World.mp3" into a searchable
// "Daft Punk Around The World". Used when an audio file carries no tags.
func CleanFilename(filename string) string {
	ext := filepath.Ext(filename)
	clean := strings.TrimSuffix(filename, ext)
	clean = strings.ReplaceAll(clean, "_", " ")
	clean = strings.ReplaceAll(clean, "-", " ")
	return clean
}

// SanitizeYear extracts a 4-digit year from a date string like "1987-05-01".
func SanitizeYear(dateStr string) string {
	if len(dateStr) >= 4 {
		year := dateStr[:4]
		if match, _ := regexp.MatchString(`^\d{4}$`, year); match {
			return year
		}
	}
	return "0000"
}
