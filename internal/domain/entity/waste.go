package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WasteCategory classifica eventos de desperdício (sobra, validade, preparo...).
type WasteCategory struct {
	ID     string
	Name   string // único
	Color  string
	Active bool
}

// WasteEvent registra uma perda. Exatamente um entre ProductID e RecipeID
// deve estar preenchido (XOR, também garantido por CHECK no banco).
type WasteEvent struct {
	ID            string
	CategoryID    string
	Date          time.Time
	Quantity      decimal.Decimal // > 0
	Unit          string
	EstimatedLoss decimal.Decimal
	ProductID     string
	RecipeID      string
	Note          string
	CreatedAt     time.Time
}

// Status derivado de meta de redução de desperdício.
const (
	WasteGoalNotStarted = "NOT_STARTED"
	WasteGoalInProgress = "IN_PROGRESS"
	WasteGoalCompleted  = "COMPLETED"
	WasteGoalMissed     = "MISSED"
	WasteGoalCancelled  = "CANCELLED"
)

// WasteGoal é uma meta de redução numa janela [Start, End]. O progresso é
// derivado na leitura, nunca armazenado. Escopo opcional por categoria,
// produto ou receita.
type WasteGoal struct {
	ID                 string
	Description        string
	StartDate          time.Time
	EndDate            time.Time // End > Start
	CategoryID         string
	ProductID          string
	RecipeID           string
	BaselineValue      decimal.Decimal // > 0
	TargetValue        decimal.Decimal // >= 0, valor absoluto
	TargetReductionPct decimal.Decimal // 0-100
	Active             bool
	CreatedAt          time.Time
}
