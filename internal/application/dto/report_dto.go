package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/report"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// ProfitabilityResponse relatório consolidado da janela.
type ProfitabilityResponse struct {
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	Receipts      decimal.Decimal `json:"receipts"`
	DirectCost    decimal.Decimal `json:"direct_cost"`
	IndirectCost  decimal.Decimal `json:"indirect_cost"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

func ProfitabilityResponseFrom(r *report.ProfitabilityReport) ProfitabilityResponse {
	return ProfitabilityResponse{
		Start:         r.Start,
		End:           r.End,
		Receipts:      r.Receipts,
		DirectCost:    r.DirectCost,
		IndirectCost:  r.IndirectCost,
		GrossProfit:   r.GrossProfit,
		MarginPercent: r.MarginPercent,
	}
}

// TopRecipeResponse posição do ranking de pratos.
type TopRecipeResponse struct {
	RecipeID     string          `json:"recipe_id"`
	RecipeName   string          `json:"recipe_name"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	DirectCost   decimal.Decimal `json:"direct_cost"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
}

func TopRecipeListFrom(rows []repository.TopRecipeResult) []TopRecipeResponse {
	out := make([]TopRecipeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopRecipeResponse{
			RecipeID:     r.RecipeID,
			RecipeName:   r.RecipeName,
			UnitsSold:    r.UnitsSold,
			GrossRevenue: r.GrossRevenue,
			DirectCost:   r.DirectCost,
			GrossProfit:  r.GrossProfit,
		})
	}
	return out
}

// SectionSalesResponse distribuição de vendas por seção.
type SectionSalesResponse struct {
	SectionID    string          `json:"section_id"`
	SectionName  string          `json:"section_name"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
}

func SectionSalesListFrom(rows []repository.SectionSalesResult) []SectionSalesResponse {
	out := make([]SectionSalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SectionSalesResponse{
			SectionID:    r.SectionID,
			SectionName:  r.SectionName,
			UnitsSold:    r.UnitsSold,
			GrossRevenue: r.GrossRevenue,
		})
	}
	return out
}

// MonthTrendResponse ponto da série mensal.
type MonthTrendResponse struct {
	Month        string          `json:"month"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	DirectCost   decimal.Decimal `json:"direct_cost"`
	IndirectCost decimal.Decimal `json:"indirect_cost"`
}

func MonthTrendListFrom(rows []repository.MonthTrendResult) []MonthTrendResponse {
	out := make([]MonthTrendResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthTrendResponse{
			Month:        r.Month.Format("2006-01"),
			GrossRevenue: r.GrossRevenue,
			DirectCost:   r.DirectCost,
			IndirectCost: r.IndirectCost,
		})
	}
	return out
}

// DemandPointResponse agregado de demanda por dimensão.
type DemandPointResponse struct {
	Dimension string          `json:"dimension"`
	UnitsSold decimal.Decimal `json:"units_sold"`
	AvgUnits  decimal.Decimal `json:"avg_units"`
}

// DemandForecastResponse leitura de demanda da janela retroativa.
type DemandForecastResponse struct {
	Start     time.Time             `json:"start"`
	End       time.Time             `json:"end"`
	ByWeekday []DemandPointResponse `json:"by_weekday"`
	ByPeriod  []DemandPointResponse `json:"by_period"`
}

func DemandForecastResponseFrom(f *report.DemandForecast) DemandForecastResponse {
	out := DemandForecastResponse{Start: f.Start, End: f.End}
	for _, p := range f.ByWeekday {
		out.ByWeekday = append(out.ByWeekday, DemandPointResponse{Dimension: p.Dimension, UnitsSold: p.UnitsSold, AvgUnits: p.AvgUnits})
	}
	for _, p := range f.ByPeriod {
		out.ByPeriod = append(out.ByPeriod, DemandPointResponse{Dimension: p.Dimension, UnitsSold: p.UnitsSold, AvgUnits: p.AvgUnits})
	}
	return out
}
