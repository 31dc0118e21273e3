package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// UseCase importa uma NF-e validada: upsert de fornecedor e produtos, criação
// da nota com seus itens e uma entrada no livro de estoque por item, tudo em
// uma transação. Importar a mesma chave duas vezes devolve a nota existente
// com ErrDuplicateInvoice e não muda estado algum.
type UseCase struct {
	txRunner    TxRunner
	ledgerUC    *ledger.UseCase
	invoiceRepo repository.InvoiceRepository
}

// NewUseCase constrói o caso de uso de importação.
func NewUseCase(txRunner TxRunner, ledgerUC *ledger.UseCase, invoiceRepo repository.InvoiceRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ledgerUC: ledgerUC, invoiceRepo: invoiceRepo}
}

// IngestNFe executa a importação. Retorna a nota criada ou, no caso de
// chave duplicada, a nota já existente junto com ErrDuplicateInvoice.
func (uc *UseCase) IngestNFe(ctx context.Context, rec *NFeRecord) (*entity.Invoice, error) {
	if rec == nil {
		return nil, domain.ErrInvalidInput
	}
	if rec.Cancelled {
		// Sem fluxo de cancelamento: nota cancelada não entra no estoque.
		return nil, domain.ErrInvalidInput
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	// Idempotência: chave já importada devolve a nota existente.
	existing, err := uc.invoiceRepo.GetByAccessKey(ctx, rec.AccessKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, domain.ErrDuplicateInvoice
	}

	now := time.Now()
	var created *entity.Invoice

	err = uc.txRunner.RunIngest(ctx, func(
		supplierRepo repository.SupplierRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		supplier, err := uc.upsertSupplier(ctx, supplierRepo, rec.Supplier, now)
		if err != nil {
			return err
		}

		inv := &entity.Invoice{
			ID:             uuid.New().String(),
			AccessKey:      rec.AccessKey,
			Number:         rec.Number,
			Series:         rec.Series,
			SupplierID:     supplier.ID,
			EmittedAt:      rec.EmittedAt,
			ProductsTotal:  rec.Totals.Products,
			FreightTotal:   rec.Totals.Freight,
			InsuranceTotal: rec.Totals.Insurance,
			DiscountTotal:  rec.Totals.Discount,
			TaxTotal:       rec.Totals.Taxes,
			GrandTotal:     rec.Totals.Grand,
			RawXML:         rec.RawXML,
			CreatedAt:      now,
		}

		items := make([]*entity.InvoiceItem, 0, len(rec.Items))
		for i, line := range rec.Items {
			product, err := uc.upsertProduct(ctx, productRepo, line, supplier.ID, now)
			if err != nil {
				return err
			}
			items = append(items, &entity.InvoiceItem{
				ID:          uuid.New().String(),
				InvoiceID:   inv.ID,
				ProductID:   product.ID,
				Sequence:    i + 1,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				LineTotal:   line.LineTotal,
				Unit:        line.Unit,
				NCM:         line.NCM,
				CFOP:        line.CFOP,
				ICMSValue:   line.ICMSValue,
			})
		}

		if err := invoiceRepo.Create(ctx, inv, items); err != nil {
			return err
		}

		// Uma entrada no livro por item; o custo médio do produto é
		// recalculado a cada entrada, na ordem das linhas.
		reference := fmt.Sprintf("NF-e %s/%s", rec.Number, rec.Series)
		for _, item := range items {
			unitPrice := item.UnitPrice
			if _, err := uc.ledgerUC.RecordInTx(ctx, ledgerRepo, productRepo, ledger.MovementInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitCost:  &unitPrice,
				Reference: reference,
				RefID:     item.ID,
			}, now); err != nil {
				return err
			}
		}

		created = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// upsertSupplier busca o fornecedor pelo CNPJ; cria se não existir.
// Fornecedores existentes não são sobrescritos pela nota.
func (uc *UseCase) upsertSupplier(ctx context.Context, repo repository.SupplierRepository, s NFeSupplier, now time.Time) (*entity.Supplier, error) {
	existing, err := repo.GetByCNPJ(ctx, s.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		CNPJ:      s.CNPJ,
		LegalName: s.LegalName,
		TradeName: s.TradeName,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// upsertProduct busca o produto pelo código interno; cria se não existir.
// Produto novo herda a unidade da linha e o fornecedor da nota; o custo nasce
// zerado e só muda com o movimento de entrada.
func (uc *UseCase) upsertProduct(ctx context.Context, repo repository.ProductRepository, line NFeItem, supplierID string, now time.Time) (*entity.Product, error) {
	existing, err := repo.GetByCode(ctx, line.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        line.Code,
		Name:        line.Description,
		Unit:        line.Unit,
		UnitCost:    decimal.Zero,
		StockOnHand: decimal.Zero,
		StockMin:    decimal.Zero,
		SupplierID:  supplierID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
