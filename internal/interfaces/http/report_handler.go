package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/dto"
	"github.com/cozinhapro/backoffice-api/internal/application/report"
	"github.com/cozinhapro/backoffice-api/internal/domain"
)

// ReportHandler relatórios de rentabilidade, faltas, demanda e exportações CSV.
type ReportHandler struct {
	uc *report.UseCase
}

func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Profitability godoc
// @Summary      Relatório de rentabilidade da janela
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Data inicial (RFC3339)"
// @Param        end    query  string  false  "Data final (RFC3339)"
// @Success      200  {object}  dto.ProfitabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profitability [get]
func (h *ReportHandler) Profitability(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	r, err := h.uc.Profitability(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProfitabilityResponseFrom(r))
}

// ProfitabilityCSV godoc
// @Summary      Exportar o relatório de rentabilidade em CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start  query  string  false  "Data inicial (RFC3339)"
// @Param        end    query  string  false  "Data final (RFC3339)"
// @Success      200  {file}  binary
// @Router       /api/reports/profitability.csv [get]
func (h *ReportHandler) ProfitabilityCSV(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	r, err := h.uc.Profitability(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := report.WriteProfitabilityCSV(&buf, r); err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, report.CSVFilename("rentabilidade", end), buf.Bytes())
}

// TopRecipes godoc
// @Summary      Ranking de pratos por faturamento
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Data inicial (RFC3339)"
// @Param        end    query  string  false  "Data final (RFC3339)"
// @Param        limit  query  int     false  "Tamanho do ranking"  default(10)
// @Success      200  {array}  dto.TopRecipeResponse
// @Router       /api/reports/top-recipes [get]
func (h *ReportHandler) TopRecipes(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	rows, err := h.uc.TopRecipes(c.Context(), start, end, c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TopRecipeListFrom(rows))
}

// TopRecipesCSV godoc
// @Summary      Exportar o ranking de pratos em CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        start  query  string  false  "Data inicial (RFC3339)"
// @Param        end    query  string  false  "Data final (RFC3339)"
// @Param        limit  query  int     false  "Tamanho do ranking"  default(10)
// @Success      200  {file}  binary
// @Router       /api/reports/top-recipes.csv [get]
func (h *ReportHandler) TopRecipesCSV(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	rows, err := h.uc.TopRecipes(c.Context(), start, end, c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := report.WriteTopRecipesCSV(&buf, rows); err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, report.CSVFilename("pratos_top", end), buf.Bytes())
}

// SalesBySection godoc
// @Summary      Distribuição de vendas por seção de cardápio
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Data inicial (RFC3339)"
// @Param        end    query  string  false  "Data final (RFC3339)"
// @Success      200  {array}  dto.SectionSalesResponse
// @Router       /api/reports/sections [get]
func (h *ReportHandler) SalesBySection(c *fiber.Ctx) error {
	start, end, err := windowQuery(c, -30)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	rows, err := h.uc.SalesBySection(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SectionSalesListFrom(rows))
}

// MonthlyTrend godoc
// @Summary      Série mensal de receita e custos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses retroativos"  default(6)
// @Success      200  {array}  dto.MonthTrendResponse
// @Router       /api/reports/trend [get]
func (h *ReportHandler) MonthlyTrend(c *fiber.Ctx) error {
	rows, err := h.uc.MonthlyTrend(c.Context(), c.QueryInt("months", 6))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MonthTrendListFrom(rows))
}

// ShortageCSV godoc
// @Summary      Exportar os insumos em falta em CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/reports/shortage.csv [get]
func (h *ReportHandler) ShortageCSV(c *fiber.Ctx) error {
	products, err := h.uc.Shortage(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := report.WriteShortageCSV(&buf, products); err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, report.CSVFilename("faltas", time.Now()), buf.Bytes())
}

// DemandForecast godoc
// @Summary      Leitura de demanda da janela retroativa (média por dimensão)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Janela retroativa em dias"  default(28)
// @Success      200  {object}  dto.DemandForecastResponse
// @Router       /api/reports/demand [get]
func (h *ReportHandler) DemandForecast(c *fiber.Ctx) error {
	f, err := h.uc.DemandForecast(c.Context(), time.Now(), c.QueryInt("days", 28))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DemandForecastResponseFrom(f))
}

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
