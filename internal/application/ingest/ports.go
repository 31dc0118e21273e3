package ingest

import (
	"context"

	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// TxRunner executa a importação completa de uma nota (fornecedor, produtos,
// nota, itens e movimentos de entrada) dentro de uma única transação.
// Falha em qualquer etapa desfaz a nota inteira.
type TxRunner interface {
	RunIngest(ctx context.Context, fn func(
		supplierRepo repository.SupplierRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
