package repository

import (
	"context"
	"time"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// LedgerRepository porta do livro de movimentos de estoque (append-only).
type LedgerRepository interface {
	Create(ctx context.Context, m *entity.LedgerMovement) error
	// ListByProduct retorna movimentos na ordem canônica (date, id) ascendente.
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerMovement, error)
	ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.LedgerMovement, error)
}
