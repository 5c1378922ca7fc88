package dto

import "github.com/devfolio/portfolio-api/internal/cpptools"

// CppToolsRequest is the body of POST /api/cpp-tools.
type CppToolsRequest struct {
	Code   string `json:"code"`
	Action string `json:"action"`
}

// LintResponse pairs diagnostics with their per-severity counts.
type LintResponse struct {
	Diagnostics []cpptools.Diagnostic `json:"diagnostics"`
	Summary     cpptools.LintSummary  `json:"summary"`
}

// AnalyzeResponse wraps a complexity analysis.
type AnalyzeResponse struct {
	Analysis cpptools.Analysis `json:"analysis"`
}

// ResumeTextRequest is the JSON alternative to the multipart resume upload.
type ResumeTextRequest struct {
	Text string `json:"text"`
}
