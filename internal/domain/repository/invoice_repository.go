package repository

import (
	"context"
	"time"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// InvoiceRepository porta de persistência de notas fiscais de compra.
// Notas são imutáveis após o commit da importação; não há Update nem Delete
// (o cascade de itens só existe no DDL, para limpeza administrativa).
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByAccessKey(ctx context.Context, accessKey string) (*entity.Invoice, error)
	ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.Invoice, error)
}
