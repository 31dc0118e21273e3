package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/costing"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// UseCase é a única autoridade sobre mutação de estoque. Entradas aplicam o
// custo médio ponderado; saídas validam disponibilidade. Cada operação roda
// em uma transação com bloqueio de fila do produto (SELECT FOR UPDATE) e
// Commit/Rollback: ou as quatro etapas persistem, ou nenhuma.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewUseCase constrói o caso de uso do livro de movimentos.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para registrar um movimento.
// UnitCost é obrigatório (>= 0) em entradas; saídas usam o custo médio atual.
type MovementInput struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Reference string
	RefID     string
	Note      string
}

// RecordIn registra uma entrada: bloqueia o produto, recalcula o custo médio
// ponderado, soma o estoque e anexa o movimento IN, tudo atomicamente.
func (uc *UseCase) RecordIn(ctx context.Context, in MovementInput) (*entity.LedgerMovement, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.LedgerMovement
	err := uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository) error {
		var err error
		mov, err = uc.RecordInTx(ctx, ledgerRepo, productRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordInTx executa a entrada usando repositórios já atados à transação do
// chamador (usado pela importação de NF-e, que grava vários itens no mesmo tx).
func (uc *UseCase) RecordInTx(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
	now time.Time,
) (*entity.LedgerMovement, error) {
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	unitCost := *in.UnitCost
	newCost := costing.WeightedAverageCost(product.StockOnHand, product.UnitCost, in.Quantity, unitCost)
	newStock := product.StockOnHand.Add(in.Quantity)

	if err := productRepo.UpdateCostAndStock(ctx, product.ID, newCost, newStock); err != nil {
		return nil, err
	}

	mov := &entity.LedgerMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Kind:      entity.MovementKindIN,
		Quantity:  in.Quantity,
		UnitCost:  unitCost, // custo do evento = preço da entrada
		Date:      now,
		Reference: in.Reference,
		RefID:     in.RefID,
		Note:      in.Note,
		CreatedAt: now,
	}
	if err := ledgerRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordOut registra uma saída. Falha com ErrInsufficientStock (e rollback)
// se a quantidade pedida deixaria o estoque negativo.
func (uc *UseCase) RecordOut(ctx context.Context, in MovementInput) (*entity.LedgerMovement, error) {
	if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.LedgerMovement
	err := uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository, productRepo repository.ProductRepository) error {
		var err error
		mov, err = uc.RecordOutTx(ctx, ledgerRepo, productRepo, in, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordOutTx executa a saída na transação do chamador. O movimento sai ao
// custo médio vigente do produto.
func (uc *UseCase) RecordOutTx(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
	now time.Time,
) (*entity.LedgerMovement, error) {
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.StockOnHand.LessThan(in.Quantity) {
		return nil, domain.ErrInsufficientStock
	}

	newStock := product.StockOnHand.Sub(in.Quantity)
	if err := productRepo.UpdateCostAndStock(ctx, product.ID, product.UnitCost, newStock); err != nil {
		return nil, err
	}

	mov := &entity.LedgerMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Kind:      entity.MovementKindOUT,
		Quantity:  in.Quantity,
		UnitCost:  product.UnitCost,
		Date:      now,
		Reference: in.Reference,
		RefID:     in.RefID,
		Note:      in.Note,
		CreatedAt: now,
	}
	if err := ledgerRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ProductsBelowMinimum lista os produtos com estoque abaixo do mínimo.
func (uc *UseCase) ProductsBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListBelowMinimum(ctx)
}

// MinStockInput parâmetros para recomendar estoque mínimo de um produto.
type MinStockInput struct {
	DailyConsumption decimal.Decimal
	LeadTimeDays     decimal.Decimal
	SafetyFactor     decimal.Decimal
	Persist          bool
}

// RecommendStockMin calcula o estoque mínimo recomendado e, se pedido,
// grava o valor no produto. O recálculo só acontece sob demanda.
func (uc *UseCase) RecommendStockMin(ctx context.Context, productID string, in MinStockInput) (decimal.Decimal, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	recommended := costing.RecommendedMinStock(in.DailyConsumption, in.LeadTimeDays, in.SafetyFactor)
	if in.Persist {
		if err := uc.productRepo.UpdateStockMin(ctx, productID, recommended); err != nil {
			return decimal.Zero, err
		}
	}
	return recommended, nil
}
