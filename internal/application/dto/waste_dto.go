package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/waste"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// WasteCategoryRequest nova categoria de desperdício.
type WasteCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// WasteCategoryResponse saída de uma categoria.
type WasteCategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Active bool   `json:"active"`
}

func WasteCategoryResponseFrom(c *entity.WasteCategory) WasteCategoryResponse {
	return WasteCategoryResponse{ID: c.ID, Name: c.Name, Color: c.Color, Active: c.Active}
}

// WasteEventRequest registro de perda. Exatamente um entre product_id e
// recipe_id; estimated_loss ausente usa a valoração padrão.
type WasteEventRequest struct {
	CategoryID    string           `json:"category_id"`
	Date          time.Time        `json:"date"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Unit          string           `json:"unit"`
	EstimatedLoss *decimal.Decimal `json:"estimated_loss,omitempty"`
	ProductID     string           `json:"product_id,omitempty"`
	RecipeID      string           `json:"recipe_id,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// WasteEventResponse saída de um evento de perda.
type WasteEventResponse struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
	EstimatedLoss decimal.Decimal `json:"estimated_loss"`
	ProductID     string          `json:"product_id,omitempty"`
	RecipeID      string          `json:"recipe_id,omitempty"`
	Note          string          `json:"note,omitempty"`
}

func WasteEventResponseFrom(e *entity.WasteEvent) WasteEventResponse {
	return WasteEventResponse{
		ID:            e.ID,
		CategoryID:    e.CategoryID,
		Date:          e.Date,
		Quantity:      e.Quantity,
		Unit:          e.Unit,
		EstimatedLoss: e.EstimatedLoss,
		ProductID:     e.ProductID,
		RecipeID:      e.RecipeID,
		Note:          e.Note,
	}
}

// WasteGoalRequest nova meta de redução.
type WasteGoalRequest struct {
	Description        string          `json:"description"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	CategoryID         string          `json:"category_id,omitempty"`
	ProductID          string          `json:"product_id,omitempty"`
	RecipeID           string          `json:"recipe_id,omitempty"`
	BaselineValue      decimal.Decimal `json:"baseline_value"`
	TargetValue        decimal.Decimal `json:"target_value"`
	TargetReductionPct decimal.Decimal `json:"target_reduction_pct"`
}

// WasteGoalResponse saída de uma meta.
type WasteGoalResponse struct {
	ID                 string          `json:"id"`
	Description        string          `json:"description"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	CategoryID         string          `json:"category_id,omitempty"`
	ProductID          string          `json:"product_id,omitempty"`
	RecipeID           string          `json:"recipe_id,omitempty"`
	BaselineValue      decimal.Decimal `json:"baseline_value"`
	TargetValue        decimal.Decimal `json:"target_value"`
	TargetReductionPct decimal.Decimal `json:"target_reduction_pct"`
	Active             bool            `json:"active"`
}

func WasteGoalResponseFrom(g *entity.WasteGoal) WasteGoalResponse {
	return WasteGoalResponse{
		ID:                 g.ID,
		Description:        g.Description,
		StartDate:          g.StartDate,
		EndDate:            g.EndDate,
		CategoryID:         g.CategoryID,
		ProductID:          g.ProductID,
		RecipeID:           g.RecipeID,
		BaselineValue:      g.BaselineValue,
		TargetValue:        g.TargetValue,
		TargetReductionPct: g.TargetReductionPct,
		Active:             g.Active,
	}
}

// GoalProgressResponse progresso derivado de uma meta.
type GoalProgressResponse struct {
	GoalID           string          `json:"goal_id"`
	CurrentLoss      decimal.Decimal `json:"current_loss"`
	PercentReduction decimal.Decimal `json:"percent_reduction"`
	ProgressPct      decimal.Decimal `json:"progress_pct"`
	Status           string          `json:"status"`
}

func GoalProgressResponseFrom(p *waste.GoalProgress) GoalProgressResponse {
	return GoalProgressResponse{
		GoalID:           p.GoalID,
		CurrentLoss:      p.CurrentLoss,
		PercentReduction: p.PercentReduction,
		ProgressPct:      p.ProgressPct,
		Status:           p.Status,
	}
}
