package cpptools

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// FormatResult is the outcome of Format.
type FormatResult struct {
	Formatted string `json:"formatted"`
	Changes   int    `json:"changes"`
	Message   string `json:"message"`
}

var spacedKeywords = []string{"if", "else", "for", "while", "switch", "return", "class", "struct", "public", "private", "protected"}

var keywordCallPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(spacedKeywords))
	for i, kw := range spacedKeywords {
		patterns[i] = regexp.MustCompile(`\b` + kw + `\(`)
	}
	return patterns
}()

var (
	braceAfterParen = regexp.MustCompile(`\)\s*\{`)
	elseAfterBrace  = regexp.MustCompile(`\}\s*else`)
	trailingBlanks  = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Format applies the cosmetic passes in order. Only keyword spacing fixes are counted as changes.
func Format(code string) FormatResult {
	formatted := code
	changes := 0

	for i, re := range keywordCallPatterns {
		changes += len(re.FindAllStringIndex(formatted, -1))
		formatted = re.ReplaceAllLiteralString(formatted, spacedKeywords[i]+" (")
	}

	formatted = braceAfterParen.ReplaceAllLiteralString(formatted, ") {")
	formatted = elseAfterBrace.ReplaceAllLiteralString(formatted, "} else")

	formatted = spaceAfterOperators(formatted)
	formatted = spaceBeforeOperators(formatted)

	formatted = trailingBlanks.ReplaceAllLiteralString(formatted, "")

	if !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}

	return FormatResult{
		Formatted: formatted,
		Changes:   changes,
		Message:   fmt.Sprintf("Formatted code with %d changes", changes),
	}
}

func isOperator(r rune) bool {
	switch r {
	case '=', '+', '-', '*', '/', '<', '>', '!':
		return true
	}
	return false
}

// spaceAfterOperators inserts a space after an operator followed by anything but whitespace or '='.
// Neighbours are always read from the input, so every operator is judged independently.
func spaceAfterOperators(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range runes {
		b.WriteRune(r)
		if isOperator(r) && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) && runes[i+1] != '=' {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// spaceBeforeOperators inserts a space before an operator preceded by anything but whitespace or '='.
func spaceBeforeOperators(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range runes {
		if isOperator(r) && i > 0 && !unicode.IsSpace(runes[i-1]) && runes[i-1] != '=' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
