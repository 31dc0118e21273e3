package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa uma NF-e de compra já importada. Imutável após o commit
// da importação; o XML original fica retido em RawXML.
type Invoice struct {
	ID         string
	AccessKey  string // chave de acesso, 44 dígitos, única
	Number     string
	Series     string
	SupplierID string
	EmittedAt  time.Time
	// Totais do cabeçalho (2 casas). GrandTotal deve fechar com
	// products + freight + insurance + taxes - discount (tolerância 0,02).
	ProductsTotal  decimal.Decimal
	FreightTotal   decimal.Decimal
	InsuranceTotal decimal.Decimal
	DiscountTotal  decimal.Decimal
	TaxTotal       decimal.Decimal
	GrandTotal     decimal.Decimal
	RawXML         string
	CreatedAt      time.Time
}

// InvoiceItem é uma linha da NF-e vinculada a um produto do estoque.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Sequence    int
	Description string          // descrição do item como veio na nota
	Quantity    decimal.Decimal // > 0
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Unit        string
	NCM         string          // código fiscal (opcional)
	CFOP        string          // opcional
	ICMSValue   decimal.Decimal // imposto da linha, se informado
}
