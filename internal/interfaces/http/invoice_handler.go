package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/catalog"
	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/ingest"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/infrastructure/nfe"
)

// InvoiceHandler importação de NF-e e consulta de notas importadas.
type InvoiceHandler struct {
	ingestUC  *ingest.UseCase
	catalogUC *catalog.UseCase
}

func NewInvoiceHandler(ingestUC *ingest.UseCase, catalogUC *catalog.UseCase) *InvoiceHandler {
	return &InvoiceHandler{ingestUC: ingestUC, catalogUC: catalogUC}
}

// Import godoc
// @Summary      Importar XML de NF-e (corpo bruto da nota)
// @Description  Reimportar a mesma chave de acesso devolve 409 com a nota existente.
// @Tags         invoices
// @Security     Bearer
// @Accept       xml
// @Produce      json
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.InvoiceResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/invoices/import [post]
func (h *InvoiceHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badBody(c)
	}
	rec, err := nfe.Parse(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_XML", Message: err.Error()})
	}
	inv, err := h.ingestUC.IngestNFe(c.Context(), rec)
	if err != nil {
		// Chave duplicada devolve a nota já importada, nada foi gravado.
		if errors.Is(err, domain.ErrDuplicateInvoice) && inv != nil {
			return c.Status(fiber.StatusConflict).JSON(dto.InvoiceResponseFrom(inv))
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.InvoiceResponseFrom(inv))
}

// List godoc
// @Summary      Listar notas importadas na janela
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        start   query  string  false  "Data inicial (RFC3339)"
// @Param        end     query  string  false  "Data final (RFC3339)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -90)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	invoices, err := h.catalogUC.ListInvoices(c.Context(), start, end, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.InvoiceResponseFrom(inv))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter nota importada com suas linhas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da nota"
// @Success      200  {object}  dto.InvoiceDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.catalogUC.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InvoiceDetailFrom(view.Invoice, view.Items))
}

// windowQuery lê a janela start/end; sem parâmetros usa os últimos
// defaultDays dias.
func windowQuery(c *fiber.Ctx, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, defaultDays)
	end := now

	if raw := c.Query("start"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	return start, end, nil
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
	}
	return t, err
}
