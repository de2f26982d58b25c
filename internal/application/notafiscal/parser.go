package notafiscal

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// ParseNFe extrai cabeçalho e itens de um XML de NF-e (layout 4.00, aceita o
// documento dentro de <nfeProc> ou o <NFe> direto). Devolve a nota com status
// pendente e o XML bruto preservado; a data de emissão aceita dhEmi (RFC3339)
// ou o dEmi legado (AAAA-MM-DD).
func ParseNFe(xmlData []byte) (*entity.NotaFiscal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return nil, fmt.Errorf("xml de NF-e inválido: %w", domain.ErrInvalidInput)
	}

	inf := doc.FindElement("//infNFe")
	if inf == nil {
		return nil, fmt.Errorf("elemento infNFe ausente: %w", domain.ErrInvalidInput)
	}

	nota := &entity.NotaFiscal{
		Status: entity.NotaStatusPendente,
		RawXML: string(xmlData),
	}

	// Chave de acesso: atributo Id de infNFe, sem o prefixo "NFe".
	nota.AccessKey = strings.TrimPrefix(inf.SelectAttrValue("Id", ""), "NFe")

	if el := inf.FindElement("ide/nNF"); el != nil {
		nota.Number = strings.TrimSpace(el.Text())
	}
	if el := inf.FindElement("emit/xNome"); el != nil {
		nota.Supplier = strings.TrimSpace(el.Text())
	}
	if el := inf.FindElement("emit/CNPJ"); el != nil {
		nota.SupplierCNPJ = strings.TrimSpace(el.Text())
	}
	if el := inf.FindElement("total/ICMSTot/vNF"); el != nil {
		v, err := decimal.NewFromString(strings.TrimSpace(el.Text()))
		if err != nil {
			return nil, fmt.Errorf("vNF inválido: %w", domain.ErrInvalidInput)
		}
		nota.TotalValue = v
	}
	if el := inf.FindElement("ide/dhEmi"); el != nil {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(el.Text())); err == nil {
			nota.IssueDate = t
		}
	} else if el := inf.FindElement("ide/dEmi"); el != nil {
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(el.Text())); err == nil {
			nota.IssueDate = t
		}
	}

	for _, det := range inf.FindElements("det") {
		prod := det.FindElement("prod")
		if prod == nil {
			continue
		}
		item, err := parseItem(prod)
		if err != nil {
			return nil, err
		}
		nota.Items = append(nota.Items, *item)
	}
	if len(nota.Items) == 0 {
		return nil, fmt.Errorf("NF-e sem itens: %w", domain.ErrInvalidInput)
	}

	if nota.Number == "" {
		return nil, fmt.Errorf("NF-e sem número (nNF): %w", domain.ErrInvalidInput)
	}

	return nota, nil
}

func parseItem(prod *etree.Element) (*entity.NotaFiscalItem, error) {
	item := &entity.NotaFiscalItem{}
	if el := prod.FindElement("cProd"); el != nil {
		item.Code = strings.TrimSpace(el.Text())
	}
	if el := prod.FindElement("xProd"); el != nil {
		item.Description = strings.TrimSpace(el.Text())
	}
	if el := prod.FindElement("uCom"); el != nil {
		item.Unit = strings.TrimSpace(el.Text())
	}

	var err error
	if item.Quantity, err = decimalText(prod, "qCom"); err != nil {
		return nil, err
	}
	if item.UnitValue, err = decimalText(prod, "vUnCom"); err != nil {
		return nil, err
	}
	if item.TotalValue, err = decimalText(prod, "vProd"); err != nil {
		return nil, err
	}
	return item, nil
}

func decimalText(parent *etree.Element, tag string) (decimal.Decimal, error) {
	el := parent.FindElement(tag)
	if el == nil {
		return decimal.Zero, fmt.Errorf("campo %s ausente no item: %w", tag, domain.ErrInvalidInput)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(el.Text()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("campo %s inválido: %w", tag, domain.ErrInvalidInput)
	}
	return v, nil
}
