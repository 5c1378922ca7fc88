package resume

// SectionScore grades one resume section.
type SectionScore struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type Keywords struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

type ATSCompatibility struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

// SampleAnalysis is the fixed report returned when no inference key is configured.
// Only WordCount and EstimatedReadTime depend on the input.
type SampleAnalysis struct {
	OverallScore      int                     `json:"overallScore"`
	Sections          map[string]SectionScore `json:"sections"`
	Keywords          Keywords                `json:"keywords"`
	Suggestions       []string                `json:"suggestions"`
	ATSCompatibility  ATSCompatibility        `json:"atsCompatibility"`
	WordCount         int                     `json:"wordCount"`
	EstimatedReadTime string                  `json:"estimatedReadTime"`
}

func (SampleAnalysis) isAnalysis() {}

// Sample builds the canned analysis for text.
func Sample(text string) *SampleAnalysis {
	words := WordCount(text)
	return &SampleAnalysis{
		OverallScore: 78,
		Sections: map[string]SectionScore{
			"contact":    {Score: 95, Feedback: "Contact information is complete and professional."},
			"summary":    {Score: 72, Feedback: "Consider adding more specific achievements and quantifiable results."},
			"experience": {Score: 80, Feedback: "Good experience section. Add more action verbs and metrics."},
			"education":  {Score: 85, Feedback: "Education section is well-formatted."},
			"skills":     {Score: 70, Feedback: "Consider organizing skills by category and adding proficiency levels."},
		},
		Keywords: Keywords{
			Found:   []string{"JavaScript", "React", "Node.js", "TypeScript", "Python", "AWS", "Docker"},
			Missing: []string{"CI/CD", "Agile", "Scrum", "Testing", "GraphQL"},
		},
		Suggestions: []string{
			"Add quantifiable achievements (e.g., 'Increased performance by 40%')",
			"Include relevant certifications",
			"Use more action verbs at the start of bullet points",
			"Add a professional summary section",
			"Include links to portfolio or GitHub",
			"Optimize for ATS by using standard section headings",
		},
		ATSCompatibility: ATSCompatibility{
			Score: 75,
			Issues: []string{
				"Consider using a simpler format for better ATS parsing",
				"Some section headers may not be recognized by ATS",
			},
		},
		WordCount:         words,
		EstimatedReadTime: ReadTime(words),
	}
}
