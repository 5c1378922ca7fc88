package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/resume"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

const maxResumeBytes = 5 << 20

// ResumeHandler scores uploaded resumes.
type ResumeHandler struct {
	analyzer *resume.Analyzer
}

func NewResumeHandler(analyzer *resume.Analyzer) *ResumeHandler {
	return &ResumeHandler{analyzer: analyzer}
}

// Analyze handles POST /api/resume/analyze. It accepts a multipart form with a
// file and/or text field, or a JSON body with text. File content wins over text.
func (h *ResumeHandler) Analyze(c *fiber.Ctx) error {
	text, err := h.resumeText(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Please provide a resume file or text")
	}

	analysis, err := h.analyzer.Analyze(c.UserContext(), text)
	if err != nil {
		return apperrors.NewInternalError("Failed to analyze resume", err)
	}
	return c.JSON(fiber.Map{"analysis": analysis})
}

func (h *ResumeHandler) resumeText(c *fiber.Ctx) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var req dto.ResumeTextRequest
		if len(c.Body()) == 0 {
			return "", nil
		}
		if err := parseBody(c, &req); err != nil {
			return "", err
		}
		return req.Text, nil
	}

	text := c.FormValue("text")
	fh, err := c.FormFile("file")
	if err != nil {
		return text, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "unable to read uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxResumeBytes))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "unable to read uploaded file")
	}
	if len(content) > 0 {
		return string(content), nil
	}
	return text, nil
}
