package handler

import (
	"net/http"
	"strconv"

	"github.com/Dan9191/gastos-service/internal/models"
)

// CreateBill handles POST /contas
func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBillRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := checkOwner(r, req.UserID); err != nil {
		h.writeError(w, err, "Erro ao adicionar conta")
		return
	}

	bill, err := h.svc.CreateBill(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Erro ao adicionar conta")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Conta cadastrada com sucesso!",
		"id":      bill.ID,
	})
}

// ListBills handles GET /contas?user_id=&mes=MM&ano=YYYY&eh_mensal=
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err == nil {
		err = checkOwner(r, userID)
	}
	if err != nil {
		h.writeError(w, err, "Erro ao buscar contas")
		return
	}
	month, err := queryMonth(r)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar contas")
		return
	}

	filter := models.BillFilter{UserID: userID, Month: month}
	if raw := r.URL.Query().Get("eh_mensal"); raw != "" {
		monthly, err := strconv.ParseBool(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "eh_mensal deve ser true ou false")
			return
		}
		filter.Monthly = &monthly
	}

	bills, err := h.svc.ListBills(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar contas")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// GetBill handles GET /contas/{id}
func (h *Handler) GetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err, "Erro ao buscar conta")
		return
	}
	bill, err := h.svc.GetBill(r.Context(), id)
	if err == nil {
		err = checkOwner(r, bill.UserID)
	}
	if err != nil {
		h.writeError(w, err, "Erro ao buscar conta")
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

// UpdateBill handles PUT /contas/{id}
func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err == nil {
		err = checkRecordOwner(r, h.billOwner(r, id))
	}
	if err != nil {
		h.writeError(w, err, "Erro ao atualizar conta")
		return
	}
	var req models.UpdateBillRequest
	if !h.decode(w, r, &req) {
		return
	}

	if _, err := h.svc.UpdateBill(r.Context(), id, req); err != nil {
		h.writeError(w, err, "Erro ao atualizar conta")
		return
	}
	writeMessage(w, http.StatusOK, "Conta atualizada com sucesso")
}

// DeleteBill handles DELETE /contas/{id}
func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err == nil {
		err = checkRecordOwner(r, h.billOwner(r, id))
	}
	if err != nil {
		h.writeError(w, err, "Erro ao excluir conta")
		return
	}
	if err := h.svc.DeleteBill(r.Context(), id); err != nil {
		h.writeError(w, err, "Erro ao excluir conta")
		return
	}
	writeMessage(w, http.StatusOK, "Conta excluída com sucesso")
}

// LatestBills handles GET /ultimas-contas/{user_id}
func (h *Handler) LatestBills(w http.ResponseWriter, r *http.Request) {
	userID, err := userPath(r)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar últimas contas")
		return
	}
	bills, err := h.svc.LatestBills(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar últimas contas")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// RecurringBills handles GET /contas-recorrentes/{user_id}
func (h *Handler) RecurringBills(w http.ResponseWriter, r *http.Request) {
	userID, err := userPath(r)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar contas recorrentes")
		return
	}
	bills, err := h.svc.RecurringBills(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar contas recorrentes")
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// PayBill handles POST /conta_paga
func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	var req models.BillPaymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := checkRecordOwner(r, h.billOwner(r, req.ContaID)); err != nil {
		h.writeError(w, err, "Erro ao marcar como pago")
		return
	}
	if _, err := h.svc.PayBill(r.Context(), req); err != nil {
		h.writeError(w, err, "Erro ao marcar como pago")
		return
	}
	writeMessage(w, http.StatusOK, "Conta marcada como paga")
}

// BillPayments handles GET /conta_paga?conta_id=&mes=&ano=
func (h *Handler) BillPayments(w http.ResponseWriter, r *http.Request) {
	billID, err := queryID(r, "conta_id")
	if err == nil {
		err = checkRecordOwner(r, h.billOwner(r, billID))
	}
	if err != nil {
		h.writeError(w, err, "Erro ao buscar pagamentos")
		return
	}
	month, err := queryMonth(r)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar pagamentos")
		return
	}
	if month == nil {
		current := h.svc.CurrentMonth()
		month = &current
	}

	payments, err := h.svc.BillPayments(r.Context(), billID, *month)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar pagamentos")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

