package tui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const truncateIndicator = "..."

// pluralize returns "1 node" or "N nodes".
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// truncate sanitizes s and shortens it to maxLen, adding an indicator if
// truncated.
func truncate(s string, maxLen int) string {
	s = safeString(s)
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= len(truncateIndicator) {
		return truncateIndicator
	}
	return s[:maxLen-len(truncateIndicator)] + truncateIndicator
}

// truncateString truncates a string to maxLen with ellipsis.
func truncateString(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// safeString sanitizes a string for display by removing control characters
// and limiting newlines.
func safeString(s string) string {
	// Remove ANSI escape sequences
	s = stripANSI(s)

	// Replace newlines with spaces
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	// Remove other control characters (except space)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	// Collapse multiple spaces
	result := sb.String()
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}

	return strings.TrimSpace(result)
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// wordWrap wraps text to fit within the given width.
func wordWrap(text string, width int) string {
	if width < 1 {
		width = 1
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		for len(line) > width {
			// Find a good break point
			breakAt := width
			for j := width; j > 0; j-- {
				if line[j-1] == ' ' {
					breakAt = j
					break
				}
			}

			result.WriteString(strings.TrimRight(line[:breakAt], " "))
			result.WriteString("\n")
			line = strings.TrimLeft(line[breakAt:], " ")
		}
		result.WriteString(line)
	}

	return result.String()
}
