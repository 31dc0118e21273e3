package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/infrastructure/pdf"
)

// RecipeHandler fichas técnicas: pratos, insumos, custo, custos fixos e rateio.
type RecipeHandler struct {
	uc  *recipe.UseCase
	pdf *pdf.CostSheetGenerator
}

func NewRecipeHandler(uc *recipe.UseCase, pdfGen *pdf.CostSheetGenerator) *RecipeHandler {
	return &RecipeHandler{uc: uc, pdf: pdfGen}
}

// Create godoc
// @Summary      Criar prato
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecipeRequest  true  "Dados do prato"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	r, err := h.uc.CreateRecipe(c.Context(), recipeInputFrom(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecipeResponseFrom(r))
}

// Update godoc
// @Summary      Atualizar prato
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID do prato"
// @Param        body  body  dto.RecipeRequest  true  "Dados do prato"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	r, err := h.uc.UpdateRecipe(c.Context(), c.Params("id"), recipeInputFrom(in), in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecipeResponseFrom(r))
}

// GetByID godoc
// @Summary      Obter prato por ID
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do prato"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.uc.GetRecipe(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecipeResponseFrom(r))
}

// List godoc
// @Summary      Listar pratos
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Só ativos"
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	recipes, err := h.uc.ListRecipes(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, dto.RecipeResponseFrom(r))
	}
	return c.JSON(out)
}

// SetIngredient godoc
// @Summary      Inserir ou atualizar insumo da ficha técnica
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                 true  "ID do prato"
// @Param        body  body  dto.IngredientRequest  true  "Linha da ficha"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/ingredients [put]
func (h *RecipeHandler) SetIngredient(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	err := h.uc.SetIngredient(c.Context(), c.Params("id"), recipe.IngredientInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		SortIndex: in.SortIndex,
		Mandatory: in.Mandatory,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveIngredient godoc
// @Summary      Remover insumo da ficha técnica
// @Tags         recipes
// @Security     Bearer
// @Param        id         path  string  true  "ID do prato"
// @Param        productId  path  string  true  "ID do insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/ingredients/{productId} [delete]
func (h *RecipeHandler) RemoveIngredient(c *fiber.Ctx) error {
	if err := h.uc.RemoveIngredient(c.Context(), c.Params("id"), c.Params("productId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Costing godoc
// @Summary      Ficha de custo do prato (custos e preço sugerido derivados)
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do prato"
// @Success      200  {object}  dto.CostingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/costing [get]
func (h *RecipeHandler) Costing(c *fiber.Ctx) error {
	view, err := h.uc.Costing(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CostingResponseFrom(view))
}

// CostingPDF godoc
// @Summary      Ficha técnica do prato em PDF
// @Tags         recipes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do prato"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id}/costing.pdf [get]
func (h *RecipeHandler) CostingPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	r, err := h.uc.GetRecipe(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	view, err := h.uc.Costing(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.Generate(r, view)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ficha_%s.pdf"`, r.ID))
	return c.Send(doc)
}

// CreateOverhead godoc
// @Summary      Lançar custo fixo do mês
// @Tags         overheads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OverheadRequest  true  "Custo fixo"
// @Success      201   {object}  dto.OverheadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/overheads [post]
func (h *RecipeHandler) CreateOverhead(c *fiber.Ctx) error {
	var in dto.OverheadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	month, err := time.Parse("2006-01", in.Month)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	o, err := h.uc.CreateOverhead(c.Context(), recipe.OverheadInput{
		Description: in.Description,
		Amount:      in.Amount,
		Month:       month,
		Category:    in.Category,
		Recurring:   in.Recurring,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OverheadResponseFrom(o))
}

// ListOverheads godoc
// @Summary      Listar custos fixos do mês
// @Tags         overheads
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "Mês de referência (yyyy-MM)"
// @Success      200  {array}  dto.OverheadResponse
// @Router       /api/overheads [get]
func (h *RecipeHandler) ListOverheads(c *fiber.Ctx) error {
	month, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	overheads, err := h.uc.ListOverheadByMonth(c.Context(), month)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OverheadResponse, 0, len(overheads))
	for _, o := range overheads {
		out = append(out, dto.OverheadResponseFrom(o))
	}
	return c.JSON(out)
}

// DeleteOverhead godoc
// @Summary      Excluir custo fixo
// @Tags         overheads
// @Security     Bearer
// @Param        id   path  string  true  "ID do custo fixo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/overheads/{id} [delete]
func (h *RecipeHandler) DeleteOverhead(c *fiber.Ctx) error {
	if err := h.uc.DeleteOverhead(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Apportion godoc
// @Summary      Ratear os custos fixos do mês para as receitas ativas
// @Tags         overheads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApportionRequest  true  "Mês e porções esperadas"
// @Success      200   {object}  dto.ApportionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/overheads/apportion [post]
func (h *RecipeHandler) Apportion(c *fiber.Ctx) error {
	var in dto.ApportionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	month, err := time.Parse("2006-01", in.Month)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	result, err := h.uc.ApportionOverhead(c.Context(), month, in.ExpectedPortions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ApportionResponseFrom(result))
}

func recipeInputFrom(in dto.RecipeRequest) recipe.RecipeInput {
	return recipe.RecipeInput{
		Name:            in.Name,
		YieldQuantity:   in.YieldQuantity,
		YieldUnit:       in.YieldUnit,
		PortionCount:    in.PortionCount,
		PrepTimeMinutes: in.PrepTimeMinutes,
		MarginPercent:   in.MarginPercent,
	}
}
