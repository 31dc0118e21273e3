package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento do livro de estoque.
const (
	MovementKindIN  = "IN"
	MovementKindOUT = "OUT"
)

// LedgerMovement é um evento imutável de estoque. O livro é append-only:
// correções entram como movimentos compensatórios, nunca como update/delete.
// A ordem (product_id, date, id) testemunha a sequência de transições do
// custo médio ponderado.
type LedgerMovement struct {
	ID        string
	ProductID string
	Kind      string
	Quantity  decimal.Decimal // sempre positiva; o sinal vem de Kind
	UnitCost  decimal.Decimal // custo no instante do evento
	Date      time.Time
	Reference string // ex.: "NF-e 1234/1", "ajuste manual"
	RefID     string // id da entidade referenciada (opcional)
	Note      string
	CreatedAt time.Time
}
