package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/sales"
	"github.com/cozinhapro/backoffice-api/internal/domain"
)

// SalesHandler feed de vendas (append-only, sem deduplicação).
type SalesHandler struct {
	uc *sales.UseCase
}

func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar venda no feed
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesRecordRequest  true  "Venda"
// @Success      201   {object}  dto.SalesRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Register(c *fiber.Ctx) error {
	var in dto.SalesRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Register(c.Context(), sales.RecordInput{
		Date:        in.Date,
		MenuItemID:  in.MenuItemID,
		RecipeID:    in.RecipeID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		LineTotal:   in.LineTotal,
		PeriodOfDay: in.PeriodOfDay,
		Holiday:     in.Holiday,
		Event:       in.Event,
		Weather:     in.Weather,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SalesRecordResponseFrom(s))
}

// List godoc
// @Summary      Listar vendas na janela
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start   query  string  false  "Data inicial (RFC3339)"
// @Param        end     query  string  false  "Data final (RFC3339)"
// @Param        limit   query  int     false  "Limite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.SalesRecordResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 100), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	records, err := h.uc.ListBetween(c.Context(), start, end, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SalesRecordResponse, 0, len(records))
	for _, s := range records {
		out = append(out, dto.SalesRecordResponseFrom(s))
	}
	return c.JSON(out)
}
