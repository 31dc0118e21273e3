package ledger

import (
	"context"

	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade das quatro etapas do
// movimento: lock, novo custo, atualização do produto e append do movimento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error) error
}
