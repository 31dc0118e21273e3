package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord é uma venda vinda do feed externo (append-only, sem dedupe;
// a idempotência é responsabilidade do emissor). Exatamente um entre
// MenuItemID e RecipeID deve estar preenchido.
type SalesRecord struct {
	ID         string
	Date       time.Time
	MenuItemID string
	RecipeID   string
	Quantity   decimal.Decimal // > 0
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
	// Contexto opcional para o leitor de previsão de demanda.
	PeriodOfDay string // manhã, almoço, jantar...
	DayOfWeek   int    // 0=domingo
	WeekOfMonth int
	Month       int
	Holiday     bool
	Event       string
	Weather     string
	CreatedAt   time.Time
}
