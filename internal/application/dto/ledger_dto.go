package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// RegisterMovementRequest entrada ou saída manual de estoque.
// UnitCost é obrigatório em entradas; saídas usam o custo médio vigente.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id"`
	Kind      string           `json:"kind"` // IN | OUT
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference"`
	Note      string           `json:"note"`
}

// MovementResponse movimento gravado no livro.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Kind      string          `json:"kind"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Date      time.Time       `json:"date"`
	Reference string          `json:"reference,omitempty"`
	RefID     string          `json:"ref_id,omitempty"`
	Note      string          `json:"note,omitempty"`
}

func MovementResponseFrom(m *entity.LedgerMovement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Date:      m.Date,
		Reference: m.Reference,
		RefID:     m.RefID,
		Note:      m.Note,
	}
}

func MovementListFrom(movements []*entity.LedgerMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, MovementResponseFrom(m))
	}
	return out
}

// MinStockRequest parâmetros do cálculo de estoque mínimo recomendado.
type MinStockRequest struct {
	DailyConsumption decimal.Decimal `json:"daily_consumption"`
	LeadTimeDays     decimal.Decimal `json:"lead_time_days"`
	SafetyFactor     decimal.Decimal `json:"safety_factor"`
	Persist          bool            `json:"persist"`
}

// MinStockResponse resultado do cálculo.
type MinStockResponse struct {
	ProductID   string          `json:"product_id"`
	Recommended decimal.Decimal `json:"recommended"`
	Persisted   bool            `json:"persisted"`
}
