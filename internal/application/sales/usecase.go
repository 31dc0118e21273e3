package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// UseCase recebe o feed de vendas do sistema de frente de caixa. O feed é
// append-only e sem dedupe: a chave de idempotência é responsabilidade do
// emissor.
type UseCase struct {
	salesRepo repository.SalesRepository
}

func NewUseCase(salesRepo repository.SalesRepository) *UseCase {
	return &UseCase{salesRepo: salesRepo}
}

// RecordInput entrada de venda. Exatamente um entre MenuItemID e RecipeID.
// LineTotal zero é preenchido com Quantity · UnitPrice.
type RecordInput struct {
	Date        time.Time
	MenuItemID  string
	RecipeID    string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	PeriodOfDay string
	Holiday     bool
	Event       string
	Weather     string
}

func (in RecordInput) validate() error {
	if in.Date.IsZero() || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if (in.MenuItemID == "") == (in.RecipeID == "") {
		return domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) || in.LineTotal.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Register grava a venda. As dimensões de calendário (dia da semana, semana do
// mês, mês) são derivadas da data para alimentar o leitor de demanda.
func (uc *UseCase) Register(ctx context.Context, in RecordInput) (*entity.SalesRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	total := in.LineTotal
	if total.IsZero() {
		total = in.Quantity.Mul(in.UnitPrice)
	}
	s := &entity.SalesRecord{
		ID:          uuid.New().String(),
		Date:        in.Date,
		MenuItemID:  in.MenuItemID,
		RecipeID:    in.RecipeID,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		LineTotal:   total,
		PeriodOfDay: in.PeriodOfDay,
		DayOfWeek:   int(in.Date.Weekday()),
		WeekOfMonth: (in.Date.Day()-1)/7 + 1,
		Month:       int(in.Date.Month()),
		Holiday:     in.Holiday,
		Event:       in.Event,
		Weather:     in.Weather,
		CreatedAt:   time.Now(),
	}
	if err := uc.salesRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ListBetween lista vendas na janela, paginadas.
func (uc *UseCase) ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.SalesRecord, error) {
	return uc.salesRepo.ListBetween(ctx, start, end, limit, offset)
}
