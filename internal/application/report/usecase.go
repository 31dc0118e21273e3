package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/costing"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// UseCase monta os relatórios de rentabilidade e o leitor de previsão de
// demanda. Só lê: com dados ausentes devolve zeros, nunca erro.
type UseCase struct {
	reportRepo   repository.ReportRepository
	overheadRepo repository.OverheadRepository
	productRepo  repository.ProductRepository
}

func NewUseCase(
	reportRepo repository.ReportRepository,
	overheadRepo repository.OverheadRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		reportRepo:   reportRepo,
		overheadRepo: overheadRepo,
		productRepo:  productRepo,
	}
}

// ProfitabilityReport resultado consolidado da janela.
type ProfitabilityReport struct {
	Start         time.Time
	End           time.Time
	Receipts      decimal.Decimal
	DirectCost    decimal.Decimal
	IndirectCost  decimal.Decimal
	GrossProfit   decimal.Decimal
	MarginPercent decimal.Decimal
}

// Profitability consolida a janela [start, end]: faturamento, custo direto
// das vendas, custo fixo do período, lucro bruto e margem sobre o
// faturamento (zero quando não houve faturamento).
func (uc *UseCase) Profitability(ctx context.Context, start, end time.Time) (*ProfitabilityReport, error) {
	if start.IsZero() || end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	receipts, err := uc.reportRepo.ReceiptsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	direct, err := uc.reportRepo.DirectCostOfSales(ctx, start, end)
	if err != nil {
		return nil, err
	}
	indirect, err := uc.overheadRepo.SumBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	r := &ProfitabilityReport{
		Start:        start,
		End:          end,
		Receipts:     receipts,
		DirectCost:   direct,
		IndirectCost: indirect,
	}
	r.GrossProfit = receipts.Sub(direct.Add(indirect))
	if receipts.GreaterThan(decimal.Zero) {
		r.MarginPercent = r.GrossProfit.Div(receipts).Mul(decimal.NewFromInt(100)).RoundBank(costing.TotalPlaces)
	}
	return r, nil
}

// TopRecipes ranking dos pratos por faturamento na janela.
func (uc *UseCase) TopRecipes(ctx context.Context, start, end time.Time, limit int) ([]repository.TopRecipeResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.reportRepo.TopRecipes(ctx, start, end, limit)
}

// SalesBySection distribuição de vendas por seção de cardápio.
func (uc *UseCase) SalesBySection(ctx context.Context, start, end time.Time) ([]repository.SectionSalesResult, error) {
	return uc.reportRepo.SalesBySection(ctx, start, end)
}

// MonthlyTrend série dos últimos n meses de receita e custos.
func (uc *UseCase) MonthlyTrend(ctx context.Context, months int) ([]repository.MonthTrendResult, error) {
	if months <= 0 {
		months = 6
	}
	return uc.reportRepo.MonthlyTrend(ctx, months)
}

// Shortage lista os insumos com estoque abaixo do mínimo.
func (uc *UseCase) Shortage(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListBelowMinimum(ctx)
}

// DemandForecast é a leitura de demanda derivada só do feed de vendas:
// média simples de unidades por dia da semana e por período do dia na
// janela retroativa.
type DemandForecast struct {
	Start     time.Time
	End       time.Time
	ByWeekday []repository.DemandPoint
	ByPeriod  []repository.DemandPoint
}

// DemandForecast agrega a janela retroativa de dias a partir de ref.
func (uc *UseCase) DemandForecast(ctx context.Context, ref time.Time, windowDays int) (*DemandForecast, error) {
	if windowDays <= 0 {
		windowDays = 28
	}
	end := ref
	start := ref.AddDate(0, 0, -windowDays)

	byWeekday, err := uc.reportRepo.DemandByWeekday(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byPeriod, err := uc.reportRepo.DemandByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &DemandForecast{Start: start, End: end, ByWeekday: byWeekday, ByPeriod: byPeriod}, nil
}
