package handler

import (
	"net/http"

	"github.com/Dan9191/gastos-service/internal/export"
	"github.com/Dan9191/gastos-service/internal/recurrence"
)

// Totals handles GET /totais/{user_id} for the current month
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	userID, err := userPath(r)
	if err != nil {
		h.writeError(w, err, "Erro ao calcular totais")
		return
	}
	totals, err := h.svc.CurrentTotals(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "Erro ao calcular totais")
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// Statement handles GET /extrato/{user_id}?mes=YYYY-MM and answers with XML
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	userID, err := userPath(r)
	if err != nil {
		h.writeError(w, err, "Erro ao gerar extrato")
		return
	}
	month := h.svc.CurrentMonth()
	if raw := r.URL.Query().Get("mes"); raw != "" {
		if month, err = recurrence.ParseMonth(raw); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "Mês inválido (use AAAA-MM)")
			return
		}
	}

	st, err := h.svc.Statement(r.Context(), userID, month)
	if err != nil {
		h.writeError(w, err, "Erro ao gerar extrato")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.WriteHeader(http.StatusOK)
	if err := export.WriteStatement(w, st); err != nil {
		h.logger.WithError(err).Error("Failed to write statement")
	}
}
