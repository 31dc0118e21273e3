package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverheadCost é um custo fixo (aluguel, energia, salários...) escopado ao
// mês de referência. Month é sempre o primeiro dia do mês.
type OverheadCost struct {
	ID          string
	Description string
	Amount      decimal.Decimal // >= 0
	Month       time.Time
	Category    string
	Recurring   bool
	CreatedAt   time.Time
}
