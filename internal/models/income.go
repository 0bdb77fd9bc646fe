package models

import "github.com/Dan9191/gastos-service/internal/recurrence"

// Income is money received by a user
type Income struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Descricao       string `json:"descricao"`
	Valor           Money  `json:"valor"`
	DataRecebimento Date   `json:"data_recebimento"`
	EhRecorrente    bool   `json:"eh_recorrente"`
	DiaGanho        *int   `json:"dia_ganho"`
}

// IncomeFilter narrows an income listing
type IncomeFilter struct {
	UserID int64
	Month  *recurrence.Month
}
