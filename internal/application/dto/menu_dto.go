package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/menu"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

// MenuRequest criação/atualização de cardápio.
type MenuRequest struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Active    bool       `json:"active"`
}

// MenuResponse saída de um cardápio.
type MenuResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

func MenuResponseFrom(m *entity.Menu) MenuResponse {
	return MenuResponse{
		ID:        m.ID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

// SectionRequest nova seção do cardápio.
type SectionRequest struct {
	Name      string `json:"name"`
	SortIndex int    `json:"sort_index"`
}

// SectionResponse saída de uma seção.
type SectionResponse struct {
	ID        string `json:"id"`
	MenuID    string `json:"menu_id"`
	Name      string `json:"name"`
	SortIndex int    `json:"sort_index"`
}

// MenuItemRequest vínculo de prato a uma seção.
type MenuItemRequest struct {
	RecipeID      string           `json:"recipe_id"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
	Featured      bool             `json:"featured"`
	Available     bool             `json:"available"`
	SortIndex     int              `json:"sort_index"`
}

// MenuItemResponse saída de um item de cardápio.
type MenuItemResponse struct {
	ID            string           `json:"id"`
	SectionID     string           `json:"section_id"`
	RecipeID      string           `json:"recipe_id"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
	Featured      bool             `json:"featured"`
	Available     bool             `json:"available"`
	SortIndex     int              `json:"sort_index"`
}

func MenuItemResponseFrom(it *entity.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:            it.ID,
		SectionID:     it.SectionID,
		RecipeID:      it.RecipeID,
		PriceOverride: it.PriceOverride,
		Featured:      it.Featured,
		Available:     it.Available,
		SortIndex:     it.SortIndex,
	}
}

// PricedItemResponse item com preço efetivo e margem derivados.
type PricedItemResponse struct {
	ItemID         string          `json:"item_id"`
	RecipeID       string          `json:"recipe_id"`
	RecipeName     string          `json:"recipe_name"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	CostPerPortion decimal.Decimal `json:"cost_per_portion"`
	MarginPercent  decimal.Decimal `json:"margin_percent"`
	Overridden     bool            `json:"overridden"`
	Featured       bool            `json:"featured"`
	Available      bool            `json:"available"`
}

// PricedSectionResponse seção precificada.
type PricedSectionResponse struct {
	SectionID string               `json:"section_id"`
	Name      string               `json:"name"`
	Items     []PricedItemResponse `json:"items"`
}

// PricedMenuResponse visão de precificação do cardápio.
type PricedMenuResponse struct {
	MenuID                string                  `json:"menu_id"`
	Name                  string                  `json:"name"`
	Sections              []PricedSectionResponse `json:"sections"`
	TicketAverage         decimal.Decimal         `json:"ticket_average"`
	WeightedMarginPercent decimal.Decimal         `json:"weighted_margin_percent"`
}

func PricedMenuResponseFrom(p *menu.PricedMenu) PricedMenuResponse {
	out := PricedMenuResponse{
		MenuID:                p.MenuID,
		Name:                  p.Name,
		TicketAverage:         p.TicketAverage,
		WeightedMarginPercent: p.WeightedMarginPercent,
	}
	for _, s := range p.Sections {
		sec := PricedSectionResponse{SectionID: s.SectionID, Name: s.Name}
		for _, it := range s.Items {
			sec.Items = append(sec.Items, PricedItemResponse{
				ItemID:         it.ItemID,
				RecipeID:       it.RecipeID,
				RecipeName:     it.RecipeName,
				EffectivePrice: it.EffectivePrice,
				CostPerPortion: it.CostPerPortion,
				MarginPercent:  it.MarginPercent,
				Overridden:     it.Overridden,
				Featured:       it.Featured,
				Available:      it.Available,
			})
		}
		out.Sections = append(out.Sections, sec)
	}
	return out
}
