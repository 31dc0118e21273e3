package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopRecipeResult agregado de vendas por receita.
type TopRecipeResult struct {
	RecipeID     string
	RecipeName   string
	UnitsSold    decimal.Decimal
	GrossRevenue decimal.Decimal
	DirectCost   decimal.Decimal
	GrossProfit  decimal.Decimal
}

// SectionSalesResult distribuição de vendas por seção de cardápio.
type SectionSalesResult struct {
	SectionID    string
	SectionName  string
	UnitsSold    decimal.Decimal
	GrossRevenue decimal.Decimal
}

// MonthTrendResult ponto da série mensal de receita e custo.
type MonthTrendResult struct {
	Month        time.Time
	GrossRevenue decimal.Decimal
	DirectCost   decimal.Decimal
	IndirectCost decimal.Decimal
}

// DemandPoint agregado do leitor de previsão de demanda (só consome vendas).
type DemandPoint struct {
	Dimension string          // dia da semana ou período do dia
	UnitsSold decimal.Decimal
	AvgUnits  decimal.Decimal // média simples por ocorrência da dimensão
}

// ReportRepository consultas de leitura para rentabilidade e demanda.
// Nunca escreve; com dados ausentes as agregações retornam zeros.
type ReportRepository interface {
	ReceiptsBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// DirectCostOfSales soma quantity × custo direto por porção da receita
	// vendida (direta ou via item de cardápio). O rateio de custo fixo não
	// entra aqui; o relatório soma o período de overhead_costs à parte.
	DirectCostOfSales(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	TopRecipes(ctx context.Context, start, end time.Time, limit int) ([]TopRecipeResult, error)
	SalesBySection(ctx context.Context, start, end time.Time) ([]SectionSalesResult, error)
	MonthlyTrend(ctx context.Context, months int) ([]MonthTrendResult, error)
	DemandByWeekday(ctx context.Context, start, end time.Time) ([]DemandPoint, error)
	DemandByPeriod(ctx context.Context, start, end time.Time) ([]DemandPoint, error)
}
