package models

// Totals holds one user's sums for a month, by stored date only
type Totals struct {
	TotalContas Money `json:"total_contas"`
	TotalGastos Money `json:"total_gastos"`
	TotalGanhos Money `json:"total_ganhos"`
}
