package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

func money(s string) models.Money {
	return models.NewMoney(decimal.RequireFromString(s))
}

func date(y int, m time.Month, d int) models.Date {
	return models.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestWriteStatement(t *testing.T) {
	st := &models.Statement{
		UserID: 7,
		Month:  recurrence.Month{Year: 2024, Month: time.March},
		Expenses: []models.ExpenseOccurrence{{
			Expense:      models.Expense{ID: 1, Titulo: "TV", Categoria: "Casa", FormaPagamento: "credito"},
			Data:         date(2024, 3, 15),
			ParcelaAtual: "3/3x",
			ValorParcela: money("100"),
		}},
		Bills: []models.BillOccurrence{{
			Bill:           models.Bill{ID: 2, Titulo: "Aluguel & cond.", Valor: money("1500"), EhMensal: true},
			DataOcorrencia: date(2024, 3, 10),
		}},
		Incomes: []models.Income{{ID: 3, Descricao: "Salário", Valor: money("3000"), DataRecebimento: date(2024, 3, 5)}},

		TotalGastos: money("100"),
		TotalContas: money("1500"),
		TotalGanhos: money("3000"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteStatement(&buf, st))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("extrato")
	require.NotNil(t, root)
	assert.Equal(t, "7", root.SelectAttrValue("user_id", ""))
	assert.Equal(t, "2024-03", root.SelectAttrValue("mes", ""))

	gasto := doc.FindElement("//gastos/gasto")
	require.NotNil(t, gasto)
	assert.Equal(t, "3/3x", gasto.SelectAttrValue("parcela", ""))
	assert.Equal(t, "100.00", gasto.FindElement("./valor").Text())
	assert.Equal(t, "2024-03-15", gasto.FindElement("./data").Text())

	conta := doc.FindElement("//contas/conta")
	require.NotNil(t, conta)
	assert.Equal(t, "Aluguel & cond.", conta.FindElement("./titulo").Text())
	assert.Equal(t, "true", conta.SelectAttrValue("mensal", ""))

	assert.Equal(t, "Salário", doc.FindElement("//ganhos/ganho/descricao").Text())
	assert.Equal(t, "1400.00", doc.FindElement("//totais/saldo").Text())
}

func TestWriteStatementEmptyMonth(t *testing.T) {
	st := &models.Statement{UserID: 1, Month: recurrence.Month{Year: 2024, Month: time.June}}

	var buf bytes.Buffer
	require.NoError(t, WriteStatement(&buf, st))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	assert.Empty(t, doc.FindElements("//gastos/gasto"))
	assert.Equal(t, "0.00", doc.FindElement("//totais/saldo").Text())
}
