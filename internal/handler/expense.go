package handler

import (
	"net/http"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

// CreateExpense handles POST /gastos
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExpenseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := checkOwner(r, req.UserID); err != nil {
		h.writeError(w, err, "Erro ao adicionar gasto")
		return
	}

	expense, err := h.svc.CreateExpense(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Erro ao adicionar gasto")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Gasto cadastrado com sucesso!",
		"id":      expense.ID,
	})
}

// ListExpenses handles GET /gastos?user_id=&mes=YYYY-MM&parcelado=true
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err == nil {
		err = checkOwner(r, userID)
	}
	if err != nil {
		h.writeError(w, err, "Erro ao buscar gastos")
		return
	}

	filter := models.ExpenseFilter{
		UserID:           userID,
		OnlyInstallments: r.URL.Query().Get("parcelado") == "true",
	}
	if raw := r.URL.Query().Get("mes"); raw != "" {
		m, err := recurrence.ParseMonth(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Mês inválido (use AAAA-MM)")
			return
		}
		filter.Month = &m
	}

	expenses, err := h.svc.ListExpenses(r.Context(), filter)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar gastos")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// UpdateExpense handles PUT /gastos/{id}
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err == nil {
		err = checkRecordOwner(r, h.expenseOwner(r, id))
	}
	if err != nil {
		h.writeError(w, err, "Erro ao atualizar gasto")
		return
	}
	var req models.UpdateExpenseRequest
	if !h.decode(w, r, &req) {
		return
	}

	if _, err := h.svc.UpdateExpense(r.Context(), id, req); err != nil {
		h.writeError(w, err, "Erro ao atualizar gasto")
		return
	}
	writeMessage(w, http.StatusOK, "Gasto atualizado com sucesso")
}

// DeleteExpense handles DELETE /gastos/{id}
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err == nil {
		err = checkRecordOwner(r, h.expenseOwner(r, id))
	}
	if err != nil {
		h.writeError(w, err, "Erro ao excluir gasto")
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		h.writeError(w, err, "Erro ao excluir gasto")
		return
	}
	writeMessage(w, http.StatusOK, "Gasto excluído com sucesso")
}

// InstallmentPlans handles GET /gastos-parcelados/{user_id}
func (h *Handler) InstallmentPlans(w http.ResponseWriter, r *http.Request) {
	userID, err := userPath(r)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar gastos parcelados")
		return
	}
	plans, err := h.svc.InstallmentPlans(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar gastos parcelados")
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// LatestExpenses handles GET /ultimos-gastos/{user_id}
func (h *Handler) LatestExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := userPath(r)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar últimos gastos")
		return
	}
	expenses, err := h.svc.LatestExpenses(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Erro ao consultar últimos gastos")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}
