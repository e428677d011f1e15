package controller

import (
	"errors"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/serverutils"
	"ai-style-review-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router, middleware ...fiber.Handler)
	Analyze(ctx *fiber.Ctx) error
	Suggest(ctx *fiber.Ctx) error
	Accept(ctx *fiber.Ctx) error
	Quota(ctx *fiber.Ctx) error
	Rules(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService   service.IAnalysisService
	suggestionService service.ISuggestionService
}

func NewAnalysisController(analysisService service.IAnalysisService, suggestionService service.ISuggestionService) IAnalysisController {
	return &analysisController{
		analysisService:   analysisService,
		suggestionService: suggestionService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	h := r.Group("/analysis/v1")
	for _, m := range middleware {
		h.Use(m)
	}
	h.Post("", c.Analyze)
	h.Post("suggestion", c.Suggest)
	h.Post("suggestion/accept", c.Accept)
	h.Get("quota", c.Quota)
	h.Get("rules", c.Rules)
}

func (c *analysisController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Analyze(ctx.UserContext(), &req)
	if errors.Is(err, service.ErrEmptyDocument) {
		return serverutils.BadRequest("Document has no text to analyze", err)
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze document", res))
}

func (c *analysisController) Suggest(ctx *fiber.Ctx) error {
	var req dto.SuggestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.suggestionService.Suggest(ctx.UserContext(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success resolve suggestion", res))
}

func (c *analysisController) Accept(ctx *fiber.Ctx) error {
	var req dto.AcceptSuggestionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("Invalid request body", err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.suggestionService.Accept(ctx.UserContext(), &req); err != nil {
		return serverutils.ServiceUnavailable("Could not record accepted suggestion", err)
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Accepted suggestion queued", nil))
}

func (c *analysisController) Quota(ctx *fiber.Ctx) error {
	res, err := c.suggestionService.Quota(ctx.UserContext())
	if err != nil {
		return serverutils.ServiceUnavailable("Quota state unavailable", err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get quota", res))
}

func (c *analysisController) Rules(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get rules", dto.RulesResponse{Rules: c.analysisService.RuleIDs()}))
}
