package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// RecipeRequest criação/atualização de prato.
type RecipeRequest struct {
	Name            string          `json:"name"`
	YieldQuantity   decimal.Decimal `json:"yield_quantity"`
	YieldUnit       string          `json:"yield_unit"`
	PortionCount    int             `json:"portion_count"`
	PrepTimeMinutes int             `json:"prep_time_minutes"`
	MarginPercent   decimal.Decimal `json:"margin_percent"`
	Active          bool            `json:"active"`
}

// RecipeResponse saída de um prato.
type RecipeResponse struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	YieldQuantity          decimal.Decimal `json:"yield_quantity"`
	YieldUnit              string          `json:"yield_unit"`
	PortionCount           int             `json:"portion_count"`
	PrepTimeMinutes        int             `json:"prep_time_minutes"`
	MarginPercent          decimal.Decimal `json:"margin_percent"`
	IndirectCostPerPortion decimal.Decimal `json:"indirect_cost_per_portion"`
	Active                 bool            `json:"active"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func RecipeResponseFrom(r *entity.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                     r.ID,
		Name:                   r.Name,
		YieldQuantity:          r.YieldQuantity,
		YieldUnit:              r.YieldUnit,
		PortionCount:           r.PortionCount,
		PrepTimeMinutes:        r.PrepTimeMinutes,
		MarginPercent:          r.MarginPercent,
		IndirectCostPerPortion: r.IndirectCostPerPortion,
		Active:                 r.Active,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
	}
}

// IngredientRequest linha da ficha técnica (upsert por produto).
type IngredientRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	SortIndex int             `json:"sort_index"`
	Mandatory bool            `json:"mandatory"`
}

// CostingLineResponse linha da ficha de custo.
type CostingLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineCost    decimal.Decimal `json:"line_cost"`
	Mandatory   bool            `json:"mandatory"`
}

// CostingResponse ficha de custo completa do prato.
type CostingResponse struct {
	RecipeID               string                `json:"recipe_id"`
	RecipeName             string                `json:"recipe_name"`
	DirectCostTotal        decimal.Decimal       `json:"direct_cost_total"`
	MandatoryCostTotal     decimal.Decimal       `json:"mandatory_cost_total"`
	OptionalCostTotal      decimal.Decimal       `json:"optional_cost_total"`
	DirectCostPerPortion   decimal.Decimal       `json:"direct_cost_per_portion"`
	IndirectCostPerPortion decimal.Decimal       `json:"indirect_cost_per_portion"`
	TotalCostPerPortion    decimal.Decimal       `json:"total_cost_per_portion"`
	SuggestedPrice         decimal.Decimal       `json:"suggested_price"`
	Lines                  []CostingLineResponse `json:"lines"`
}

func CostingResponseFrom(v *recipe.CostingView) CostingResponse {
	out := CostingResponse{
		RecipeID:               v.RecipeID,
		RecipeName:             v.RecipeName,
		DirectCostTotal:        v.DirectCostTotal,
		MandatoryCostTotal:     v.MandatoryCostTotal,
		OptionalCostTotal:      v.OptionalCostTotal,
		DirectCostPerPortion:   v.DirectCostPerPortion,
		IndirectCostPerPortion: v.IndirectCostPerPortion,
		TotalCostPerPortion:    v.TotalCostPerPortion,
		SuggestedPrice:         v.SuggestedPrice,
	}
	for _, l := range v.Lines {
		out.Lines = append(out.Lines, CostingLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			LineCost:    l.LineCost,
			Mandatory:   l.Mandatory,
		})
	}
	return out
}

// OverheadRequest lançamento de custo fixo do mês.
type OverheadRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month"` // yyyy-MM
	Category    string          `json:"category"`
	Recurring   bool            `json:"recurring"`
}

// OverheadResponse saída de um custo fixo.
type OverheadResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month"`
	Category    string          `json:"category,omitempty"`
	Recurring   bool            `json:"recurring"`
}

func OverheadResponseFrom(o *entity.OverheadCost) OverheadResponse {
	return OverheadResponse{
		ID:          o.ID,
		Description: o.Description,
		Amount:      o.Amount,
		Month:       o.Month.Format("2006-01"),
		Category:    o.Category,
		Recurring:   o.Recurring,
	}
}

// ApportionRequest rateio mensal dos custos fixos.
type ApportionRequest struct {
	Month            string          `json:"month"` // yyyy-MM
	ExpectedPortions decimal.Decimal `json:"expected_portions"`
}

// ApportionResponse resultado do rateio.
type ApportionResponse struct {
	Month            string          `json:"month"`
	TotalOverhead    decimal.Decimal `json:"total_overhead"`
	ExpectedPortions decimal.Decimal `json:"expected_portions"`
	PerPortion       decimal.Decimal `json:"per_portion"`
	RecipesUpdated   int64           `json:"recipes_updated"`
}

func ApportionResponseFrom(r *recipe.ApportionResult) ApportionResponse {
	return ApportionResponse{
		Month:            r.Month.Format("2006-01"),
		TotalOverhead:    r.TotalOverhead,
		ExpectedPortions: r.ExpectedPortions,
		PerPortion:       r.PerPortion,
		RecipesUpdated:   r.RecipesUpdated,
	}
}
