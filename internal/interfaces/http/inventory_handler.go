package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/catalog"
	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// InventoryHandler livro de movimentos: entradas, saídas, extrato, faltas e
// estoque mínimo recomendado.
type InventoryHandler struct {
	ledgerUC  *ledger.UseCase
	catalogUC *catalog.UseCase
}

func NewInventoryHandler(ledgerUC *ledger.UseCase, catalogUC *catalog.UseCase) *InventoryHandler {
	return &InventoryHandler{ledgerUC: ledgerUC, catalogUC: catalogUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimento de estoque (IN recalcula o custo médio)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := ledger.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Reference: in.Reference,
		Note:      in.Note,
	}

	var (
		mov *entity.LedgerMovement
		err error
	)
	switch in.Kind {
	case entity.MovementKindIN:
		mov, err = h.ledgerUC.RecordIn(c.Context(), input)
	case entity.MovementKindOUT:
		mov, err = h.ledgerUC.RecordOut(c.Context(), input)
	default:
		return respondError(c, domain.ErrInvalidInput)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponseFrom(mov))
}

// Movements godoc
// @Summary      Extrato de movimentos do insumo na ordem canônica
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID do insumo"
// @Param        from    query  string  false  "Data inicial (RFC3339)"
// @Param        to      query  string  false  "Data final (RFC3339)"
// @Param        limit   query  int     false  "Limite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	movements, err := h.catalogUC.Movements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementListFrom(movements))
}

// Shortage godoc
// @Summary      Insumos com estoque abaixo do mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/shortage [get]
func (h *InventoryHandler) Shortage(c *fiber.Ctx) error {
	products, err := h.ledgerUC.ProductsBelowMinimum(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponseFrom(p))
	}
	return c.JSON(out)
}

// RecommendStockMin godoc
// @Summary      Calcular estoque mínimo recomendado (grava se persist=true)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID do insumo"
// @Param        body  body  dto.MinStockRequest  true  "Parâmetros"
// @Success      200   {object}  dto.MinStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock-min [post]
func (h *InventoryHandler) RecommendStockMin(c *fiber.Ctx) error {
	var in dto.MinStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id := c.Params("id")
	recommended, err := h.ledgerUC.RecommendStockMin(c.Context(), id, ledger.MinStockInput{
		DailyConsumption: in.DailyConsumption,
		LeadTimeDays:     in.LeadTimeDays,
		SafetyFactor:     in.SafetyFactor,
		Persist:          in.Persist,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MinStockResponse{ProductID: id, Recommended: recommended, Persisted: in.Persist})
}

// parseTimeQuery lê um parâmetro de data opcional em RFC3339 ou yyyy-MM-dd.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}
