// Parser de NF-e (modelo 55, layout 4.00). Lê o XML do fornecedor e produz o
// NFeRecord que a importação consome. O bloco de protocolo (protNFe/infProt)
// é ignorado: o status de cancelamento vem do fluxo de upload, não do XML.

package nfe

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/cozinhapro/backoffice-api/internal/application/ingest"
)

// Layouts de emissão aceitos: dhEmi (RFC 3339 com offset) ou dEmi (só data,
// layouts antigos).
const dateOnlyLayout = "2006-01-02"

// Parse converte o XML da NF-e em um NFeRecord. Erros aqui são sintáticos;
// a validação de invariantes fica no Validate do registro.
func Parse(xmlBytes []byte) (*ingest.NFeRecord, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("nfe: XML malformado: %w", err)
	}

	infNFe := findInfNFe(doc)
	if infNFe == nil {
		return nil, fmt.Errorf("nfe: elemento infNFe ausente")
	}

	rec := &ingest.NFeRecord{RawXML: string(xmlBytes)}

	// chave de acesso: atributo Id="NFe<44 dígitos>"
	rec.AccessKey = strings.TrimPrefix(infNFe.SelectAttrValue("Id", ""), "NFe")

	if ide := infNFe.SelectElement("ide"); ide != nil {
		rec.Number = childText(ide, "nNF")
		rec.Series = childText(ide, "serie")
		emittedAt, err := parseEmission(ide)
		if err != nil {
			return nil, err
		}
		rec.EmittedAt = emittedAt
	}

	if emit := infNFe.SelectElement("emit"); emit != nil {
		rec.Supplier = ingest.NFeSupplier{
			CNPJ:      childText(emit, "CNPJ"),
			LegalName: childText(emit, "xNome"),
			TradeName: childText(emit, "xFant"),
		}
		if ender := emit.SelectElement("enderEmit"); ender != nil {
			rec.Supplier.Address = strings.TrimSpace(childText(ender, "xLgr") + ", " + childText(ender, "nro"))
			rec.Supplier.City = childText(ender, "xMun")
			rec.Supplier.State = childText(ender, "UF")
		}
	}

	for _, det := range infNFe.SelectElements("det") {
		item, err := parseItem(det)
		if err != nil {
			return nil, err
		}
		rec.Items = append(rec.Items, item)
	}

	if tot := findElement(infNFe, "total", "ICMSTot"); tot != nil {
		var err error
		if rec.Totals, err = parseTotals(tot); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// findInfNFe aceita tanto <nfeProc><NFe><infNFe> quanto <NFe><infNFe>.
func findInfNFe(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	if root.Tag == "NFe" {
		return root.SelectElement("infNFe")
	}
	if nfe := root.SelectElement("NFe"); nfe != nil {
		return nfe.SelectElement("infNFe")
	}
	return nil
}

func findElement(parent *etree.Element, path ...string) *etree.Element {
	el := parent
	for _, tag := range path {
		if el = el.SelectElement(tag); el == nil {
			return nil
		}
	}
	return el
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

func childDecimal(parent *etree.Element, tag string) (decimal.Decimal, error) {
	s := childText(parent, tag)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("nfe: valor inválido em <%s>: %q", tag, s)
	}
	return d, nil
}

func parseEmission(ide *etree.Element) (time.Time, error) {
	if s := childText(ide, "dhEmi"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("nfe: dhEmi inválido: %q", s)
		}
		return t, nil
	}
	if s := childText(ide, "dEmi"); s != "" {
		t, err := time.Parse(dateOnlyLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("nfe: dEmi inválido: %q", s)
		}
		return t, nil
	}
	return time.Time{}, nil
}

func parseItem(det *etree.Element) (ingest.NFeItem, error) {
	var item ingest.NFeItem
	prod := det.SelectElement("prod")
	if prod == nil {
		return item, fmt.Errorf("nfe: det sem prod (nItem=%s)", det.SelectAttrValue("nItem", "?"))
	}
	item.Code = childText(prod, "cProd")
	item.Description = childText(prod, "xProd")
	item.Unit = childText(prod, "uCom")
	item.NCM = childText(prod, "NCM")
	item.CFOP = childText(prod, "CFOP")

	var err error
	if item.Quantity, err = childDecimal(prod, "qCom"); err != nil {
		return item, err
	}
	if item.UnitPrice, err = childDecimal(prod, "vUnCom"); err != nil {
		return item, err
	}
	if item.LineTotal, err = childDecimal(prod, "vProd"); err != nil {
		return item, err
	}

	// vICMS fica aninhado no grupo de tributação (ICMS00, ICMS20...)
	if icms := findElement(det, "imposto", "ICMS"); icms != nil {
		for _, group := range icms.ChildElements() {
			v, err := childDecimal(group, "vICMS")
			if err != nil {
				return item, err
			}
			if !v.IsZero() {
				item.ICMSValue = v
				break
			}
		}
	}
	return item, nil
}

func parseTotals(tot *etree.Element) (ingest.NFeTotals, error) {
	var totals ingest.NFeTotals
	fields := []struct {
		tag string
		dst *decimal.Decimal
	}{
		{"vProd", &totals.Products},
		{"vFrete", &totals.Freight},
		{"vSeg", &totals.Insurance},
		{"vDesc", &totals.Discount},
		{"vICMS", &totals.Taxes},
		{"vNF", &totals.Grand},
	}
	for _, f := range fields {
		v, err := childDecimal(tot, f.tag)
		if err != nil {
			return totals, err
		}
		*f.dst = v
	}
	return totals, nil
}
