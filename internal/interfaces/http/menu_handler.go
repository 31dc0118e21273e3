package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/menu"
)

// MenuHandler cardápios, seções, itens e a visão precificada.
type MenuHandler struct {
	uc *menu.UseCase
}

func NewMenuHandler(uc *menu.UseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create godoc
// @Summary      Criar cardápio
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MenuRequest  true  "Dados do cardápio"
// @Success      201   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.MenuRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.CreateMenu(c.Context(), menu.MenuInput{Name: in.Name, StartDate: in.StartDate, EndDate: in.EndDate})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MenuResponseFrom(m))
}

// Update godoc
// @Summary      Atualizar cardápio
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID do cardápio"
// @Param        body  body  dto.MenuRequest  true  "Dados do cardápio"
// @Success      200   {object}  dto.MenuResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.MenuRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.UpdateMenu(c.Context(), c.Params("id"), menu.MenuInput{Name: in.Name, StartDate: in.StartDate, EndDate: in.EndDate}, in.Active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MenuResponseFrom(m))
}

// GetByID godoc
// @Summary      Obter cardápio por ID
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do cardápio"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetMenu(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MenuResponseFrom(m))
}

// List godoc
// @Summary      Listar cardápios (históricos são mantidos)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Só ativos"
// @Success      200  {array}  dto.MenuResponse
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	menus, err := h.uc.ListMenus(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MenuResponse, 0, len(menus))
	for _, m := range menus {
		out = append(out, dto.MenuResponseFrom(m))
	}
	return c.JSON(out)
}

// AddSection godoc
// @Summary      Criar seção do cardápio
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID do cardápio"
// @Param        body  body  dto.SectionRequest  true  "Dados da seção"
// @Success      201   {object}  dto.SectionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/sections [post]
func (h *MenuHandler) AddSection(c *fiber.Ctx) error {
	var in dto.SectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.AddSection(c.Context(), c.Params("id"), in.Name, in.SortIndex)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SectionResponse{ID: s.ID, MenuID: s.MenuID, Name: s.Name, SortIndex: s.SortIndex})
}

// AddItem godoc
// @Summary      Vincular prato a uma seção (um item por prato na seção)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sectionId  path  string               true  "ID da seção"
// @Param        body       body  dto.MenuItemRequest  true  "Item"
// @Success      201  {object}  dto.MenuItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sections/{sectionId}/items [post]
func (h *MenuHandler) AddItem(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.uc.AddItem(c.Context(), c.Params("sectionId"), menu.ItemInput{
		RecipeID:      in.RecipeID,
		PriceOverride: in.PriceOverride,
		Featured:      in.Featured,
		Available:     in.Available,
		SortIndex:     in.SortIndex,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MenuItemResponseFrom(it))
}

// UpdateItem godoc
// @Summary      Atualizar item de cardápio (override de preço, destaque...)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID do item"
// @Param        body  body  dto.MenuItemRequest  true  "Item"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu-items/{id} [put]
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.uc.UpdateItem(c.Context(), c.Params("id"), menu.ItemInput{
		RecipeID:      in.RecipeID,
		PriceOverride: in.PriceOverride,
		Featured:      in.Featured,
		Available:     in.Available,
		SortIndex:     in.SortIndex,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MenuItemResponseFrom(it))
}

// Price godoc
// @Summary      Visão precificada do cardápio (ticket médio e margem ponderada)
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do cardápio"
// @Success      200  {object}  dto.PricedMenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menus/{id}/price [get]
func (h *MenuHandler) Price(c *fiber.Ctx) error {
	priced, err := h.uc.Price(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PricedMenuResponseFrom(priced))
}
