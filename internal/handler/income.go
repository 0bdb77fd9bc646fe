package handler

import (
	"net/http"

	"github.com/Dan9191/gastos-service/internal/models"
)

// CreateIncome handles POST /ganhos
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req models.CreateIncomeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := checkOwner(r, req.UserID); err != nil {
		h.writeError(w, err, "Erro no servidor")
		return
	}

	income, err := h.svc.CreateIncome(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Erro no servidor")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Ganho cadastrado com sucesso!",
		"id":      income.ID,
	})
}

// ListIncomes handles GET /ganhos?user_id=&mes=MM&ano=YYYY
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "user_id")
	if err == nil {
		err = checkOwner(r, userID)
	}
	if err != nil {
		h.writeError(w, err, "Erro ao buscar ganhos")
		return
	}
	month, err := queryMonth(r)
	if err != nil {
		h.writeError(w, err, "Erro ao buscar ganhos")
		return
	}

	incomes, err := h.svc.ListIncomes(r.Context(), models.IncomeFilter{UserID: userID, Month: month})
	if err != nil {
		h.writeError(w, err, "Erro ao buscar ganhos")
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

// DeleteIncome handles DELETE /ganhos/{id}
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err == nil {
		err = checkRecordOwner(r, h.incomeOwner(r, id))
	}
	if err != nil {
		h.writeError(w, err, "Erro ao excluir ganho")
		return
	}
	if err := h.svc.DeleteIncome(r.Context(), id); err != nil {
		h.writeError(w, err, "Erro ao excluir ganho")
		return
	}
	writeMessage(w, http.StatusOK, "Ganho excluído com sucesso")
}
