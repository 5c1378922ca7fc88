// Package resume scores resume text, either with hosted models or with a fixed sample report.
package resume

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/devfolio/portfolio-api/internal/inference"
)

var (
	sectionLabels = []string{"work experience", "education", "technical skills", "projects", "certifications"}
	skillLabels   = []string{"programming", "leadership", "communication", "problem solving", "teamwork"}
)

const (
	formatScore       = 75
	strengthThreshold = 60
	keywordThreshold  = 0.3
	wordsPerMinute    = 200
)

// Models is the subset of the inference client the analyzer needs.
type Models interface {
	Summarize(ctx context.Context, text string) (string, error)
	ClassifyZeroShot(ctx context.Context, text string, labels []string) (inference.Classification, error)
	Sentiment(ctx context.Context, text string) ([]inference.SentimentScore, error)
}

// Analysis is either a SampleAnalysis or a ModelAnalysis.
type Analysis interface {
	isAnalysis()
}

// Analyzer produces resume analyses.
type Analyzer struct {
	models Models
}

// NewAnalyzer returns an analyzer. With nil models every call yields the sample report.
func NewAnalyzer(models Models) *Analyzer {
	return &Analyzer{models: models}
}

// Analyze scores text. Callers must reject empty input beforehand.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	if a.models == nil {
		return Sample(text), nil
	}
	analysis, err := a.analyzeWithModels(ctx, text)
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// ModelAnalysis is derived from summarization and zero-shot classification.
type ModelAnalysis struct {
	OverallScore    int                       `json:"overallScore"`
	ExperienceScore int                       `json:"experienceScore"`
	EducationScore  int                       `json:"educationScore"`
	SkillsScore     int                       `json:"skillsScore"`
	FormatScore     int                       `json:"formatScore"`
	Summary         string                    `json:"summary"`
	Strengths       []string                  `json:"strengths"`
	Improvements    []string                  `json:"improvements"`
	Keywords        []string                  `json:"keywords"`
	Sentiment       *inference.SentimentScore `json:"sentiment,omitempty"`
}

func (ModelAnalysis) isAnalysis() {}

func (a *Analyzer) analyzeWithModels(ctx context.Context, text string) (*ModelAnalysis, error) {
	var (
		summary   string
		sections  inference.Classification
		skills    inference.Classification
		sentiment []inference.SentimentScore
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = a.models.Summarize(gctx, text)
		return err
	})
	g.Go(func() error {
		var err error
		sections, err = a.models.ClassifyZeroShot(gctx, text, sectionLabels)
		return err
	})
	g.Go(func() error {
		var err error
		sentiment, err = a.models.Sentiment(gctx, text)
		return err
	})
	g.Go(func() error {
		var err error
		skills, err = a.models.ClassifyZeroShot(gctx, text, skillLabels)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze resume: %w", err)
	}

	experience := sections.Score("work experience") * 100
	education := sections.Score("education") * 100
	technical := sections.Score("technical skills") * 100
	overall := (experience + education + technical + formatScore) / 4

	out := &ModelAnalysis{
		OverallScore:    round(overall),
		ExperienceScore: round(experience),
		EducationScore:  round(education),
		SkillsScore:     round(technical),
		FormatScore:     formatScore,
		Summary:         summary,
		Strengths:       []string{},
		Improvements:    []string{},
		Keywords:        []string{},
	}

	grade := func(score float64, strength, improvement string) {
		if score > strengthThreshold {
			out.Strengths = append(out.Strengths, strength)
		} else {
			out.Improvements = append(out.Improvements, improvement)
		}
	}
	grade(experience, "Strong work experience section", "Expand your work experience descriptions")
	grade(education, "Well-documented education", "Add more details about your education")
	grade(technical, "Good technical skills coverage", "Include more relevant technical skills")

	for _, label := range skillLabels {
		if skills.Score(label) > keywordThreshold {
			out.Keywords = append(out.Keywords, label)
		}
	}

	if len(sentiment) > 0 {
		top := sentiment[0]
		for _, s := range sentiment[1:] {
			if s.Score > top.Score {
				top = s
			}
		}
		out.Sentiment = &top
	}

	return out, nil
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadTime estimates reading time at 200 words per minute, rounded up.
func ReadTime(words int) string {
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	return fmt.Sprintf("%d minutes", minutes)
}

func round(v float64) int {
	return int(math.Round(v))
}
