package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/cpptools"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

// CppToolsHandler runs the C++ playground actions.
type CppToolsHandler struct{}

func NewCppToolsHandler() *CppToolsHandler {
	return &CppToolsHandler{}
}

// Run handles POST /api/cpp-tools.
func (h *CppToolsHandler) Run(c *fiber.Ctx) error {
	var req dto.CppToolsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Code is required")
	}

	switch req.Action {
	case "format":
		return c.JSON(cpptools.Format(req.Code))
	case "lint":
		diagnostics := cpptools.Lint(req.Code)
		return c.JSON(dto.LintResponse{
			Diagnostics: diagnostics,
			Summary:     cpptools.Summarize(diagnostics),
		})
	case "analyze":
		return c.JSON(dto.AnalyzeResponse{Analysis: cpptools.Analyze(req.Code)})
	case "compile":
		result, err := cpptools.Compile(c.UserContext(), req.Code)
		if err != nil {
			return apperrors.NewInternalError("Failed to process code", err)
		}
		return c.JSON(result)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid action")
	}
}
