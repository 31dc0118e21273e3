package repository

import (
	"context"
	"time"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// SalesRepository porta do feed de vendas (append-only, sem dedupe).
type SalesRepository interface {
	Create(ctx context.Context, s *entity.SalesRecord) error
	ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.SalesRecord, error)
}
