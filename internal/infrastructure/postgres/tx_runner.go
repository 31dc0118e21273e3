package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cozinhapro/backoffice-api/internal/application/ingest"
	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ ingest.TxRunner = (*TxRunner)(nil)
var _ recipe.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com os
// repositórios atados à tx. Falha de serialização vira ErrConcurrency para o
// chamador poder tentar de novo.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run roda um movimento de estoque (lock do produto, custo médio, append).
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewLedgerRepository(tx), NewProductRepository(tx))
	})
}

// RunIngest roda a importação completa de uma NF-e em uma única transação.
func (r *TxRunner) RunIngest(ctx context.Context, fn func(
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewSupplierRepository(tx),
			NewProductRepository(tx),
			NewInvoiceRepository(tx),
			NewLedgerRepository(tx),
		)
	})
}

// RunRecipes roda o rateio mensal (soma dos custos fixos + UPDATE em lote).
func (r *TxRunner) RunRecipes(ctx context.Context, fn func(
	recipeRepo repository.RecipeRepository,
	overheadRepo repository.OverheadRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewRecipeRepository(tx), NewOverheadRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrency
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConcurrency
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
