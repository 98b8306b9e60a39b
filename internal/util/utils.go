package util

import (
	"bytes"
	"fmt"
	"strings"
)

// GetLineAndColumn maps a byte offset to a 1-based line and rune column.
// An offset at len(src) points just past the last character.
func GetLineAndColumn(src string, pos int) (line int, column int) {
	line = 1
	column = 1
	for i, char := range src {
		if i >= pos {
			break
		}
		if char == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

// GetContextLines formats up to two lines before errorLine, the line itself,
// and a caret under errorCol followed by message.
func GetContextLines(src string, errorLine, errorCol int, message string) string {
	var result bytes.Buffer

	lines := strings.Split(src, "\n")
	if errorLine < 1 {
		errorLine = 1
	}
	if errorLine > len(lines) {
		errorLine = len(lines)
	}

	// Show 2 lines before the error line (if available)
	startLine := errorLine - 2
	if startLine < 1 {
		startLine = 1
	}

	for i := startLine; i <= errorLine; i++ {
		lineContent := strings.TrimSuffix(lines[i-1], "\r")

		if i == errorLine {
			margin := fmt.Sprintf("  >  %3d | ", i)
			result.WriteString(fmt.Sprintf("%s%s\n", margin, lineContent))
			result.WriteString(fmt.Sprintf("%s^ %s",
				replaceVisibleWithSpaces(margin+runePrefix(lineContent, errorCol-1)), message))
		} else {
			result.WriteString(fmt.Sprintf("     %3d | %s\n", i, lineContent))
		}
	}

	return result.String()
}

// runePrefix returns the first n runes of s, or all of s when it is shorter.
func runePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// replaceVisibleWithSpaces replaces all non-whitespace characters with spaces
// while preserving tabs for correct alignment.
func replaceVisibleWithSpaces(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		if c == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}
	return buf.String()
}
