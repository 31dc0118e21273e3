package ingest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain"
)

// NFeRecord é o contrato de entrada da importação: uma NF-e já parseada e
// validada sintaticamente (o parser XML vive em infrastructure/nfe).
type NFeRecord struct {
	AccessKey string // chave de acesso, 44 dígitos
	Number    string
	Series    string
	EmittedAt time.Time
	Cancelled bool // NF-e cancelada não é importada
	Supplier  NFeSupplier
	Totals    NFeTotals
	Items     []NFeItem
	RawXML    string // retido na nota para auditoria
}

// NFeSupplier descritor do emitente.
type NFeSupplier struct {
	CNPJ      string // 14 dígitos
	LegalName string
	TradeName string
	Address   string
	City      string
	State     string
}

// NFeTotals totais do cabeçalho (ICMSTot).
type NFeTotals struct {
	Products  decimal.Decimal
	Freight   decimal.Decimal
	Insurance decimal.Decimal
	Discount  decimal.Decimal
	Taxes     decimal.Decimal
	Grand     decimal.Decimal
}

// NFeItem uma linha de produto da nota.
type NFeItem struct {
	Code        string // código do produto no fornecedor, usado como código interno
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	NCM         string
	CFOP        string
	ICMSValue   decimal.Decimal
}

// Tolerância de fechamento do cabeçalho: |grand - calculado| <= 0.02.
var totalsTolerance = decimal.NewFromFloat(0.02)

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Validate verifica o registro contra as invariantes do modelo: chave de 44
// dígitos, CNPJ de 14, linhas positivas e fechamento dos totais.
func (r *NFeRecord) Validate() error {
	if len(r.AccessKey) != 44 || !allDigits(r.AccessKey) {
		return domain.ErrInvalidInput
	}
	if r.Number == "" || r.EmittedAt.IsZero() {
		return domain.ErrInvalidInput
	}
	if len(r.Supplier.CNPJ) != 14 || !allDigits(r.Supplier.CNPJ) {
		return domain.ErrInvalidInput
	}
	if r.Supplier.LegalName == "" {
		return domain.ErrInvalidInput
	}
	if len(r.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range r.Items {
		if it.Code == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if it.UnitPrice.LessThan(decimal.Zero) || !it.LineTotal.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	t := r.Totals
	for _, v := range []decimal.Decimal{t.Products, t.Freight, t.Insurance, t.Discount, t.Taxes, t.Grand} {
		if v.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	// grand = products + freight + insurance + taxes - discount
	expected := t.Products.Add(t.Freight).Add(t.Insurance).Add(t.Taxes).Sub(t.Discount)
	if t.Grand.Sub(expected).Abs().GreaterThan(totalsTolerance) {
		return domain.ErrInvoiceTotalsInconsistent
	}
	return nil
}
