package handler

import (
	"net/http"

	"github.com/Dan9191/gastos-service/internal/models"
)

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Erro ao conectar ao banco de dados")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Usuário cadastrado com sucesso!",
		"id":      user.ID,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, err, "Erro no servidor")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      user.ID,
		"token":   token,
	})
}
