package cpptools

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Severity grades a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Diagnostic is one lint finding. Line and Column are 1-based.
type Diagnostic struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
}

// LintSummary counts diagnostics by severity.
type LintSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Hints    int `json:"hints"`
}

const maxLineLength = 120

var (
	rawNewAssignment = regexp.MustCompile(`\w+\s*\*\s*\w+\s*=\s*new\s+`)
	cStyleCast       = regexp.MustCompile(`\(\s*(int|float|double|char|long)\s*\)`)
	magicNumber      = regexp.MustCompile(`[^0-9.][0-9]{2,}[^0-9.]`)
)

// columnOf returns the 1-based character column of the first substr in line,
// or 0 when it does not occur.
func columnOf(line, substr string) int {
	i := strings.Index(line, substr)
	if i < 0 {
		return 0
	}
	return utf8.RuneCountInString(line[:i]) + 1
}

// Lint runs every line check over code and returns the findings in line order.
func Lint(code string) []Diagnostic {
	diagnostics := []Diagnostic{}

	for index, line := range strings.Split(code, "\n") {
		lineNum := index + 1

		if strings.Contains(line, "using namespace std") {
			diagnostics = append(diagnostics, Diagnostic{
				Line:     lineNum,
				Column:   columnOf(line, "using"),
				Severity: SeverityWarning,
				Message:  "Avoid 'using namespace std' - prefer explicit std:: prefix",
				Code:     "W001",
			})
		}

		if rawNewAssignment.MatchString(line) {
			diagnostics = append(diagnostics, Diagnostic{
				Line:     lineNum,
				Column:   columnOf(line, "new"),
				Severity: SeverityWarning,
				Message:  "Consider using smart pointers (std::unique_ptr or std::shared_ptr) instead of raw pointers",
				Code:     "W002",
			})
		}

		if cStyleCast.MatchString(line) {
			diagnostics = append(diagnostics, Diagnostic{
				Line:     lineNum,
				Column:   1,
				Severity: SeverityInfo,
				Message:  "Consider using C++ style casts (static_cast, dynamic_cast, etc.)",
				Code:     "I001",
			})
		}

		if magicNumber.MatchString(line) {
			diagnostics = append(diagnostics, Diagnostic{
				Line:     lineNum,
				Column:   1,
				Severity: SeverityHint,
				Message:  "Consider defining constants for magic numbers",
				Code:     "H001",
			})
		}

		if utf8.RuneCountInString(line) > maxLineLength {
			diagnostics = append(diagnostics, Diagnostic{
				Line:     lineNum,
				Column:   maxLineLength + 1,
				Severity: SeverityInfo,
				Message:  "Line exceeds 120 characters - consider breaking it up",
				Code:     "I002",
			})
		}

		if strings.Contains(line, "TODO") || strings.Contains(line, "FIXME") {
			column := columnOf(line, "TODO")
			if column == 0 {
				column = columnOf(line, "FIXME")
			}
			diagnostics = append(diagnostics, Diagnostic{
				Line:     lineNum,
				Column:   column,
				Severity: SeverityInfo,
				Message:  "Unresolved TODO/FIXME comment",
				Code:     "I003",
			})
		}
	}

	return diagnostics
}

// Summarize counts diagnostics per severity.
func Summarize(diagnostics []Diagnostic) LintSummary {
	var summary LintSummary
	for _, d := range diagnostics {
		switch d.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Info++
		case SeverityHint:
			summary.Hints++
		}
	}
	return summary
}
