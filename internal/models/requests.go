package models

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// RegisterRequest is the body of POST /usuario
type RegisterRequest struct {
	NomeCompleto string `json:"nome_completo" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Senha        string `json:"senha" validate:"required"`
}

// CreateExpenseRequest is the body of POST /gastos
type CreateExpenseRequest struct {
	UserID             int64  `json:"user_id" validate:"required"`
	Categoria          string `json:"categoria" validate:"required"`
	Titulo             string `json:"titulo" validate:"required"`
	Valor              *Money `json:"valor" validate:"required"`
	Data               string `json:"data" validate:"required"`
	FormaPagamento     string `json:"forma_pagamento" validate:"required"`
	QuantidadeParcelas int    `json:"quantidade_parcelas" validate:"required,gte=1,lte=360"`
}

// UpdateExpenseRequest is the body of PUT /gastos/{id}. Older clients send
// the installment count as parcela_atual.
type UpdateExpenseRequest struct {
	Categoria          string `json:"categoria" validate:"required"`
	Titulo             string `json:"titulo" validate:"required"`
	Valor              *Money `json:"valor" validate:"required"`
	Data               string `json:"data" validate:"required"`
	FormaPagamento     string `json:"forma_pagamento" validate:"required"`
	QuantidadeParcelas int    `json:"quantidade_parcelas" validate:"gte=0,lte=360"`
	ParcelaAtual       int    `json:"parcela_atual" validate:"gte=0,lte=360"`
}

// Installments resolves the installment count from either field
func (r UpdateExpenseRequest) Installments() int {
	if r.QuantidadeParcelas > 0 {
		return r.QuantidadeParcelas
	}
	if r.ParcelaAtual > 0 {
		return r.ParcelaAtual
	}
	return 1
}

// CreateBillRequest is the body of POST /contas
type CreateBillRequest struct {
	UserID         int64  `json:"user_id" validate:"required"`
	Titulo         string `json:"titulo" validate:"required"`
	Valor          *Money `json:"valor" validate:"required"`
	DataVencimento string `json:"data_vencimento" validate:"required"`
	EhRecorrente   *bool  `json:"eh_recorrente" validate:"required"`
	DiaRecorrencia *int   `json:"dia_recorrencia"`
}

// UpdateBillRequest is the body of PUT /contas/{id}; DataVencimento is the
// day of month the bill repeats on.
type UpdateBillRequest struct {
	Titulo         string `json:"titulo" validate:"required"`
	Valor          *Money `json:"valor" validate:"required"`
	DataConta      string `json:"data_conta" validate:"required"`
	DataVencimento int    `json:"data_vencimento"`
	IsContaMensal  bool   `json:"is_conta_mensal"`
}

// CreateIncomeRequest is the body of POST /ganhos
type CreateIncomeRequest struct {
	UserID          int64  `json:"user_id" validate:"required"`
	Descricao       string `json:"descricao" validate:"required"`
	Valor           *Money `json:"valor" validate:"required"`
	DataRecebimento string `json:"data_recebimento" validate:"required"`
	EhRecorrente    *bool  `json:"eh_recorrente" validate:"required"`
	DiaVencimento   *int   `json:"dia_vencimento"`
}

// BillPaymentRequest is the body of POST /conta_paga
type BillPaymentRequest struct {
	ContaID       int64  `json:"conta_id" validate:"required"`
	DataPagamento string `json:"data_pagamento" validate:"required"`
}
