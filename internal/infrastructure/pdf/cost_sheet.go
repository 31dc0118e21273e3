// Package pdf gera a ficha técnica de um prato em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome do prato  │  Rendimento + Porções             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Insumo | Un | Qtde | Custo Unit. | Custo da Linha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Custo direto / Rateio / Custo por porção           │
//	│  PREÇO SUGERIDO (margem alvo)                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 140, Green: 45, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CostSheetGenerator gera a ficha técnica com Maroto v2.
type CostSheetGenerator struct{}

func NewCostSheetGenerator() *CostSheetGenerator { return &CostSheetGenerator{} }

// Generate monta o PDF da ficha técnica e devolve os bytes.
func (g *CostSheetGenerator) Generate(r *entity.Recipe, view *recipe.CostingView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha Técnica", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, lr := range tableLineRows(view.Lines) {
		m.AddRows(lr)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r, view))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar ficha técnica: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nome do prato (esq) e rendimento + porções (dir).
func headerRow(r *entity.Recipe) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Preparo: %d min", r.PrepTimeMinutes), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA TÉCNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Rendimento: %s %s", r.YieldQuantity.String(), r.YieldUnit), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Porções: %d", r.PortionCount), props.Text{
				Size: 9, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de insumos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Insumo", 5, align.Left),
		h("Un", 1, align.Center),
		h("Qtde", 2, align.Right),
		h("Custo Unit.", 2, align.Right),
		h("Custo", 2, align.Right),
	)
}

// tableLineRows: uma fila por linha da ficha técnica.
func tableLineRows(lines []recipe.CostingLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if !l.Mandatory {
			name += " (opcional)"
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(l.Unit, props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(l.Quantity.String(), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("R$ "+l.UnitCost.StringFixed(4), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("R$ "+l.LineCost.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow: bloco de totais e preço sugerido.
func totalsRow(r *entity.Recipe, view *recipe.CostingView) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(2),
		col.New(5).Add(
			label("Custo direto:"),
			label("Rateio de custo fixo (porção):"),
			label("Custo por porção:"),
			grandLabel(fmt.Sprintf("PREÇO SUGERIDO (margem %s%%):", r.MarginPercent.String())),
		),
		col.New(3).Add(
			value("R$ "+view.DirectCostTotal.StringFixed(2)),
			value("R$ "+view.IndirectCostPerPortion.StringFixed(4)),
			value("R$ "+view.TotalCostPerPortion.StringFixed(4)),
			grandValue("R$ "+view.SuggestedPrice.StringFixed(2)),
		),
		col.New(2),
	)
}
