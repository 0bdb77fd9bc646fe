package models

import "github.com/Dan9191/gastos-service/internal/recurrence"

// Bill is a payable account, optionally repeating every month
type Bill struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Titulo    string `json:"titulo"`
	Valor     Money  `json:"valor"`
	DataConta Date   `json:"data_conta"`
	EhMensal  bool   `json:"eh_mensal"`
	DiaConta  *int   `json:"dia_conta"` // nil unless EhMensal
}

// BillOccurrence is a bill as it shows up in a queried month
type BillOccurrence struct {
	Bill
	DataOcorrencia Date `json:"data_ocorrencia"`
}

// RecurringBill is the short form used by the recurring bills view
type RecurringBill struct {
	ID       int64  `json:"id"`
	Titulo   string `json:"titulo"`
	Valor    Money  `json:"valor"`
	DiaConta *int   `json:"dia_conta"`
}

// BillReminder joins a recurring bill with its owner's contact
type BillReminder struct {
	Bill
	Email        string
	NomeCompleto string
}

// BillPayment records that a bill was paid on a given day
type BillPayment struct {
	ID            int64 `json:"id"`
	ContaID       int64 `json:"conta_id"`
	DataPagamento Date  `json:"data_pagamento"`
}

// BillFilter narrows a bill listing
type BillFilter struct {
	UserID  int64
	Month   *recurrence.Month
	Monthly *bool
}
