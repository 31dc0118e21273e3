package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// SalesRecordRequest registro de venda. Exatamente um entre menu_item_id e
// recipe_id; line_total ausente (zero) é derivado de quantity × unit_price.
type SalesRecordRequest struct {
	Date        time.Time       `json:"date"`
	MenuItemID  string          `json:"menu_item_id,omitempty"`
	RecipeID    string          `json:"recipe_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	PeriodOfDay string          `json:"period_of_day,omitempty"`
	Holiday     bool            `json:"holiday"`
	Event       string          `json:"event,omitempty"`
	Weather     string          `json:"weather,omitempty"`
}

// SalesRecordResponse venda gravada, com as dimensões de calendário derivadas.
type SalesRecordResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	MenuItemID  string          `json:"menu_item_id,omitempty"`
	RecipeID    string          `json:"recipe_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	PeriodOfDay string          `json:"period_of_day,omitempty"`
	DayOfWeek   int             `json:"day_of_week"`
	WeekOfMonth int             `json:"week_of_month"`
	Month       int             `json:"month"`
	Holiday     bool            `json:"holiday"`
	Event       string          `json:"event,omitempty"`
	Weather     string          `json:"weather,omitempty"`
}

func SalesRecordResponseFrom(s *entity.SalesRecord) SalesRecordResponse {
	return SalesRecordResponse{
		ID:          s.ID,
		Date:        s.Date,
		MenuItemID:  s.MenuItemID,
		RecipeID:    s.RecipeID,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		LineTotal:   s.LineTotal,
		PeriodOfDay: s.PeriodOfDay,
		DayOfWeek:   s.DayOfWeek,
		WeekOfMonth: s.WeekOfMonth,
		Month:       s.Month,
		Holiday:     s.Holiday,
		Event:       s.Event,
		Weather:     s.Weather,
	}
}
