package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/waste"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// WasteHandler desperdício: categorias, eventos de perda e metas de redução.
type WasteHandler struct {
	uc *waste.UseCase
}

func NewWasteHandler(uc *waste.UseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// CreateCategory godoc
// @Summary      Criar categoria de desperdício
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteCategoryRequest  true  "Categoria"
// @Success      201   {object}  dto.WasteCategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/waste/categories [post]
func (h *WasteHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.WasteCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cat, err := h.uc.CreateCategory(c.Context(), in.Name, in.Color)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WasteCategoryResponseFrom(cat))
}

// ListCategories godoc
// @Summary      Listar categorias de desperdício
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Só ativas"
// @Success      200  {array}  dto.WasteCategoryResponse
// @Router       /api/waste/categories [get]
func (h *WasteHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.uc.ListCategories(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WasteCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.WasteCategoryResponseFrom(cat))
	}
	return c.JSON(out)
}

// RecordEvent godoc
// @Summary      Registrar perda (valoração padrão quando estimated_loss ausente)
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteEventRequest  true  "Evento de perda"
// @Success      201   {object}  dto.WasteEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/waste/events [post]
func (h *WasteHandler) RecordEvent(c *fiber.Ctx) error {
	var in dto.WasteEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e, err := h.uc.RecordEvent(c.Context(), waste.EventInput{
		CategoryID:    in.CategoryID,
		Date:          in.Date,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		EstimatedLoss: in.EstimatedLoss,
		ProductID:     in.ProductID,
		RecipeID:      in.RecipeID,
		Note:          in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WasteEventResponseFrom(e))
}

// ListEvents godoc
// @Summary      Listar perdas na janela, com filtro de escopo opcional
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        start        query  string  false  "Data inicial (RFC3339)"
// @Param        end          query  string  false  "Data final (RFC3339)"
// @Param        category_id  query  string  false  "Categoria"
// @Param        product_id   query  string  false  "Insumo"
// @Param        recipe_id    query  string  false  "Prato"
// @Param        limit        query  int     false  "Limite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.WasteEventResponse
// @Router       /api/waste/events [get]
func (h *WasteHandler) ListEvents(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	scope := repository.WasteScope{
		CategoryID: c.Query("category_id"),
		ProductID:  c.Query("product_id"),
		RecipeID:   c.Query("recipe_id"),
	}

	events, err := h.uc.ListEvents(c.Context(), start, end, scope, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WasteEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.WasteEventResponseFrom(e))
	}
	return c.JSON(out)
}

// CreateGoal godoc
// @Summary      Criar meta de redução de desperdício
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteGoalRequest  true  "Meta"
// @Success      201   {object}  dto.WasteGoalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/waste/goals [post]
func (h *WasteHandler) CreateGoal(c *fiber.Ctx) error {
	var in dto.WasteGoalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	g, err := h.uc.CreateGoal(c.Context(), waste.GoalInput{
		Description:        in.Description,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		CategoryID:         in.CategoryID,
		ProductID:          in.ProductID,
		RecipeID:           in.RecipeID,
		BaselineValue:      in.BaselineValue,
		TargetValue:        in.TargetValue,
		TargetReductionPct: in.TargetReductionPct,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WasteGoalResponseFrom(g))
}

// ListGoals godoc
// @Summary      Listar metas de redução
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Só ativas"
// @Success      200  {array}  dto.WasteGoalResponse
// @Router       /api/waste/goals [get]
func (h *WasteHandler) ListGoals(c *fiber.Ctx) error {
	goals, err := h.uc.ListGoals(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WasteGoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, dto.WasteGoalResponseFrom(g))
	}
	return c.JSON(out)
}

// CancelGoal godoc
// @Summary      Cancelar meta de redução
// @Tags         waste
// @Security     Bearer
// @Param        id   path  string  true  "ID da meta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/goals/{id} [delete]
func (h *WasteHandler) CancelGoal(c *fiber.Ctx) error {
	if err := h.uc.CancelGoal(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GoalProgress godoc
// @Summary      Progresso derivado da meta (nada é armazenado)
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da meta"
// @Success      200  {object}  dto.GoalProgressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/goals/{id}/progress [get]
func (h *WasteHandler) GoalProgress(c *fiber.Ctx) error {
	p, err := h.uc.Progress(c.Context(), c.Params("id"), time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GoalProgressResponseFrom(p))
}
