package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um insumo do estoque.
// UnitCost é custo médio ponderado, mantido exclusivamente pelo livro de
// movimentos (entradas de nota fiscal e ajustes); nunca é escrito direto.
type Product struct {
	ID          string
	Code        string // código interno único
	Name        string
	Unit        string          // unidade de medida (kg, un, l...)
	UnitCost    decimal.Decimal // custo médio ponderado, 4 casas
	StockOnHand decimal.Decimal
	StockMin    decimal.Decimal
	SupplierID  string // opcional; fornecedor habitual
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
