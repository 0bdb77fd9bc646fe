package models

import "github.com/Dan9191/gastos-service/internal/recurrence"

// Expense is a purchase, possibly split into monthly installments
type Expense struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"user_id"`
	Categoria          string `json:"categoria"`
	Titulo             string `json:"titulo"`
	Valor              Money  `json:"valor"`
	Data               Date   `json:"data"`
	FormaPagamento     string `json:"forma_pagamento"`
	QuantidadeParcelas int    `json:"quantidade_parcelas"`
}

// IsInstallment reports whether the purchase was split
func (e Expense) IsInstallment() bool {
	return e.QuantidadeParcelas > 1
}

// ExpenseOccurrence is an expense as it shows up in one month: the stored
// fields plus the installment date and position.
type ExpenseOccurrence struct {
	Expense
	Data         Date   `json:"data"`
	ParcelaAtual string `json:"parcela_atual"`
	ValorParcela Money  `json:"valor_parcela"`
}

// InstallmentDetail is one line of a fully expanded installment plan
type InstallmentDetail struct {
	Titulo string `json:"titulo"`
	Valor  Money  `json:"valor"`
	Data   Date   `json:"data"`
}

// InstallmentPlan is an expense with every installment listed
type InstallmentPlan struct {
	Expense
	Parcelas []InstallmentDetail `json:"parcelas"`
}

// ExpenseFilter narrows an expense listing
type ExpenseFilter struct {
	UserID           int64
	Month            *recurrence.Month
	OnlyInstallments bool
}
