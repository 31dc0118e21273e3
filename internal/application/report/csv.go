package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/cozinhapro/backoffice-api/internal/domain/entity"
	"github.com/cozinhapro/backoffice-api/internal/domain/repository"
)

// Exportação CSV (RFC 4180, UTF-8, linha de cabeçalho). O nome de arquivo
// segue o padrão {entidade}_{aaaammdd}.csv.

const csvDateLayout = "2006-01-02"

// CSVFilename monta o nome do arquivo de exportação para a data dada.
func CSVFilename(entityName string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", entityName, at.Format("20060102"))
}

// WriteProfitabilityCSV escreve o consolidado de rentabilidade em uma linha.
func WriteProfitabilityCSV(w io.Writer, r *ProfitabilityReport) error {
	cw := csv.NewWriter(w)
	header := []string{"inicio", "fim", "faturamento", "custo_direto", "custo_fixo", "lucro_bruto", "margem_pct"}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := []string{
		r.Start.Format(csvDateLayout),
		r.End.Format(csvDateLayout),
		r.Receipts.StringFixed(2),
		r.DirectCost.StringFixed(2),
		r.IndirectCost.StringFixed(2),
		r.GrossProfit.StringFixed(2),
		r.MarginPercent.StringFixed(2),
	}
	if err := cw.Write(row); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteTopRecipesCSV escreve o ranking de pratos.
func WriteTopRecipesCSV(w io.Writer, rows []repository.TopRecipeResult) error {
	cw := csv.NewWriter(w)
	header := []string{"receita_id", "receita", "unidades", "faturamento", "custo_direto", "lucro_bruto"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.RecipeID,
			r.RecipeName,
			r.UnitsSold.String(),
			r.GrossRevenue.StringFixed(2),
			r.DirectCost.StringFixed(2),
			r.GrossProfit.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteShortageCSV escreve os insumos abaixo do estoque mínimo.
func WriteShortageCSV(w io.Writer, products []*entity.Product) error {
	cw := csv.NewWriter(w)
	header := []string{"codigo", "insumo", "unidade", "estoque", "estoque_minimo", "custo_medio"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range products {
		rec := []string{
			p.Code,
			p.Name,
			p.Unit,
			p.StockOnHand.String(),
			p.StockMin.String(),
			p.UnitCost.StringFixed(4),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
