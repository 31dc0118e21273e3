package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cozinhapro/backoffice-api/internal/domain"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementação de InvoiceRepository. Notas são imutáveis depois
// de gravadas; não há Update.
type InvoiceRepo struct {
	q Querier
}

func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, access_key, number, series, supplier_id, emitted_at,
	products_total, freight_total, insurance_total, discount_total, tax_total, grand_total,
	raw_xml, created_at`

// Create grava a nota e todos os itens. Chamado dentro da transação de
// importação; chave de acesso repetida vira ErrDuplicateInvoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.AccessKey, inv.Number, inv.Series, inv.SupplierID, inv.EmittedAt,
		inv.ProductsTotal, inv.FreightTotal, inv.InsuranceTotal, inv.DiscountTotal,
		inv.TaxTotal, inv.GrandTotal, inv.RawXML, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO invoice_items (id, invoice_id, sequence, product_id, description, unit,
			quantity, unit_price, line_total, ncm, cfop, icms_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, inv.ID, it.Sequence, it.ProductID, it.Description, it.Unit,
			it.Quantity, it.UnitPrice, it.LineTotal, it.NCM, it.CFOP, it.ICMSValue,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item %d: %w", it.Sequence, err)
		}
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getBy(ctx, "id", id)
}

func (r *InvoiceRepo) GetByAccessKey(ctx context.Context, accessKey string) (*entity.Invoice, error) {
	return r.getBy(ctx, "access_key", accessKey)
}

func (r *InvoiceRepo) getBy(ctx context.Context, column, value string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + column + ` = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, query, value).Scan(
		&inv.ID, &inv.AccessKey, &inv.Number, &inv.Series, &inv.SupplierID, &inv.EmittedAt,
		&inv.ProductsTotal, &inv.FreightTotal, &inv.InsuranceTotal, &inv.DiscountTotal,
		&inv.TaxTotal, &inv.GrandTotal, &inv.RawXML, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, sequence, product_id, description, unit, quantity, unit_price,
			line_total, ncm, cfop, icms_value
		FROM invoice_items WHERE invoice_id = $1 ORDER BY sequence`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.Sequence, &it.ProductID, &it.Description, &it.Unit,
			&it.Quantity, &it.UnitPrice, &it.LineTotal, &it.NCM, &it.CFOP, &it.ICMSValue,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *InvoiceRepo) ListBetween(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE emitted_at BETWEEN $1 AND $2
		ORDER BY emitted_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, start, end, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.AccessKey, &inv.Number, &inv.Series, &inv.SupplierID, &inv.EmittedAt,
			&inv.ProductsTotal, &inv.FreightTotal, &inv.InsuranceTotal, &inv.DiscountTotal,
			&inv.TaxTotal, &inv.GrandTotal, &inv.RawXML, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}
