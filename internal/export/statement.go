// Package export renders monthly statements as XML documents.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/Dan9191/gastos-service/internal/models"
)

// ContentType is the media type of a rendered statement
const ContentType = "application/xml; charset=utf-8"

// BuildStatement creates the XML document for a statement
func BuildStatement(st *models.Statement) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("extrato")
	root.CreateAttr("user_id", strconv.FormatInt(st.UserID, 10))
	root.CreateAttr("mes", st.Month.String())

	gastos := root.CreateElement("gastos")
	for _, e := range st.Expenses {
		el := gastos.CreateElement("gasto")
		el.CreateAttr("id", strconv.FormatInt(e.ID, 10))
		el.CreateAttr("parcela", e.ParcelaAtual)
		addText(el, "titulo", e.Titulo)
		addText(el, "categoria", e.Categoria)
		addText(el, "forma_pagamento", e.FormaPagamento)
		addText(el, "data", e.Data.String())
		addText(el, "valor", e.ValorParcela.StringFixed(2))
	}

	contas := root.CreateElement("contas")
	for _, b := range st.Bills {
		el := contas.CreateElement("conta")
		el.CreateAttr("id", strconv.FormatInt(b.ID, 10))
		el.CreateAttr("mensal", strconv.FormatBool(b.EhMensal))
		addText(el, "titulo", b.Titulo)
		addText(el, "data", b.DataOcorrencia.String())
		addText(el, "valor", b.Valor.StringFixed(2))
	}

	ganhos := root.CreateElement("ganhos")
	for _, in := range st.Incomes {
		el := ganhos.CreateElement("ganho")
		el.CreateAttr("id", strconv.FormatInt(in.ID, 10))
		addText(el, "descricao", in.Descricao)
		addText(el, "data", in.DataRecebimento.String())
		addText(el, "valor", in.Valor.StringFixed(2))
	}

	totais := root.CreateElement("totais")
	addText(totais, "total_gastos", st.TotalGastos.StringFixed(2))
	addText(totais, "total_contas", st.TotalContas.StringFixed(2))
	addText(totais, "total_ganhos", st.TotalGanhos.StringFixed(2))
	addText(totais, "saldo", st.Balance().StringFixed(2))

	doc.Indent(2)
	return doc
}

// WriteStatement renders st as XML into w
func WriteStatement(w io.Writer, st *models.Statement) error {
	if _, err := BuildStatement(st).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}

func addText(parent *etree.Element, tag, text string) {
	parent.CreateElement(tag).SetText(text)
}
