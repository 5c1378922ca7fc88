package cpptools

import (
	"regexp"
	"strings"
)

// Analysis is the complexity estimate for a code snippet.
type Analysis struct {
	Complexity  ComplexityMetrics `json:"complexity"`
	Performance PerformanceReport `json:"performance"`
}

type ComplexityMetrics struct {
	Cyclomatic  int `json:"cyclomatic"`
	Cognitive   int `json:"cognitive"`
	LinesOfCode int `json:"linesOfCode"`
	Functions   int `json:"functions"`
	Classes     int `json:"classes"`
}

type PerformanceReport struct {
	EstimatedComplexity string   `json:"estimatedComplexity"`
	Suggestions         []string `json:"suggestions"`
}

const (
	ComplexityConstant    = "O(1)"
	ComplexityLinear      = "O(n)"
	ComplexityQuadratic   = "O(n²)"
	ComplexityExponential = "O(2^n) - consider memoization"
)

var (
	functionDefinition = regexp.MustCompile(`\w+\s+\w+\s*\([^)]*\)\s*\{`)
	classDeclaration   = regexp.MustCompile(`class\s+\w+`)

	ifKeyword    = regexp.MustCompile(`\bif\b`)
	forKeyword   = regexp.MustCompile(`\bfor\b`)
	whileKeyword = regexp.MustCompile(`\bwhile\b`)
	caseKeyword  = regexp.MustCompile(`\bcase\b`)
	catchKeyword = regexp.MustCompile(`\bcatch\b`)

	recursionHint      = regexp.MustCompile(`\brecursive\b|\breturn\s+\w+\s*\(`)
	returnCall         = regexp.MustCompile(`return\s+\w+\s*\(`)
	sizeInLoopHeader   = regexp.MustCompile(`for\s*\([^;]*;\s*[^;]*\.size\(\)`)
	nestedForLoop      = regexp.MustCompile(`for\s*\([^)]*\)\s*\{\s*for\s*\([^)]*\)`)
	decrementingReturn = regexp.MustCompile(`return\s+\w+\s*\([^)]*-\s*1`)
)

func countMatches(re *regexp.Regexp, code string) int {
	return len(re.FindAllStringIndex(code, -1))
}

// Analyze estimates complexity from keyword and pattern counts.
func Analyze(code string) Analysis {
	nonEmpty := 0
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) != "" {
			nonEmpty++
		}
	}

	forCount := countMatches(forKeyword, code)
	whileCount := countMatches(whileKeyword, code)

	cyclomatic := 1 +
		countMatches(ifKeyword, code) +
		forCount +
		whileCount +
		countMatches(caseKeyword, code) +
		countMatches(catchKeyword, code) +
		strings.Count(code, "&&") +
		strings.Count(code, "||")

	cognitive := cyclomatic + countMatches(recursionHint, code)*3

	suggestions := []string{}
	if strings.Contains(code, "vector") && !strings.Contains(code, "reserve") {
		suggestions = append(suggestions, "Consider using vector.reserve() when the size is known in advance")
	}
	if sizeInLoopHeader.MatchString(code) {
		suggestions = append(suggestions, "Cache container size in loop condition to avoid repeated calls")
	}
	if strings.Contains(code, "string") && strings.Contains(code, "+") {
		suggestions = append(suggestions, "Consider using string concatenation with reserve() or stringstream for better performance")
	}
	if strings.Contains(code, "new") && !strings.Contains(code, "unique_ptr") && !strings.Contains(code, "shared_ptr") {
		suggestions = append(suggestions, "Use smart pointers to avoid memory leaks")
	}
	if strings.Contains(code, "recursive") || returnCall.MatchString(code) {
		suggestions = append(suggestions, "Consider tail recursion optimization or iterative approach")
	}

	estimated := ComplexityConstant
	if nestedForLoop.MatchString(code) {
		estimated = ComplexityQuadratic
	} else if forCount > 0 || whileCount > 0 {
		estimated = ComplexityLinear
	}
	if strings.Contains(code, "recursive") || decrementingReturn.MatchString(code) {
		estimated = ComplexityExponential
	}

	return Analysis{
		Complexity: ComplexityMetrics{
			Cyclomatic:  cyclomatic,
			Cognitive:   cognitive,
			LinesOfCode: nonEmpty,
			Functions:   countMatches(functionDefinition, code),
			Classes:     countMatches(classDeclaration, code),
		},
		Performance: PerformanceReport{
			EstimatedComplexity: estimated,
			Suggestions:         suggestions,
		},
	}
}
