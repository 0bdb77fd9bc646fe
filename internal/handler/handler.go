package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gastos-service/internal/models"
	"github.com/Dan9191/gastos-service/internal/recurrence"
	"github.com/Dan9191/gastos-service/internal/service"
)

// Handler serves the JSON API
type Handler struct {
	svc          *service.Service
	logger       *logrus.Logger
	authRequired bool
}

// NewHandler creates a handler. With authRequired every route except login,
// registration and health needs a bearer token.
func NewHandler(svc *service.Service, logger *logrus.Logger, authRequired bool) *Handler {
	return &Handler{svc: svc, logger: logger, authRequired: authRequired}
}

// RegisterRoutes wires every endpoint into router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.Use(RequestLogger(h.logger))

	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/login", h.Login).Methods("POST")
	router.HandleFunc("/usuario", h.Register).Methods("POST")

	api := router.NewRoute().Subrouter()
	if h.authRequired {
		api.Use(AuthMiddleware(h.svc, h.logger))
	}

	api.HandleFunc("/gastos", h.CreateExpense).Methods("POST")
	api.HandleFunc("/gastos", h.ListExpenses).Methods("GET")
	api.HandleFunc("/gastos/{id:[0-9]+}", h.UpdateExpense).Methods("PUT")
	api.HandleFunc("/gastos/{id:[0-9]+}", h.DeleteExpense).Methods("DELETE")
	api.HandleFunc("/gastos-parcelados/{user_id:[0-9]+}", h.InstallmentPlans).Methods("GET")
	api.HandleFunc("/ultimos-gastos/{user_id:[0-9]+}", h.LatestExpenses).Methods("GET")

	api.HandleFunc("/contas", h.CreateBill).Methods("POST")
	api.HandleFunc("/contas", h.ListBills).Methods("GET")
	api.HandleFunc("/contas/{id:[0-9]+}", h.GetBill).Methods("GET")
	api.HandleFunc("/contas/{id:[0-9]+}", h.UpdateBill).Methods("PUT")
	api.HandleFunc("/contas/{id:[0-9]+}", h.DeleteBill).Methods("DELETE")
	api.HandleFunc("/ultimas-contas/{user_id:[0-9]+}", h.LatestBills).Methods("GET")
	api.HandleFunc("/contas-recorrentes/{user_id:[0-9]+}", h.RecurringBills).Methods("GET")
	api.HandleFunc("/conta_paga", h.PayBill).Methods("POST")
	api.HandleFunc("/conta_paga", h.BillPayments).Methods("GET")

	api.HandleFunc("/ganhos", h.CreateIncome).Methods("POST")
	api.HandleFunc("/ganhos", h.ListIncomes).Methods("GET")
	api.HandleFunc("/ganhos/{id:[0-9]+}", h.DeleteIncome).Methods("DELETE")

	api.HandleFunc("/totais/{user_id:[0-9]+}", h.Totals).Methods("GET")
	api.HandleFunc("/extrato/{user_id:[0-9]+}", h.Statement).Methods("GET")
}

// Health reports liveness and storage reachability
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.logger.WithError(err).Error("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps service errors to status codes. fallback is the message
// shown for unexpected failures.
func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeErrorMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, recurrence.ErrInvalidInput):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Registro não encontrado")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, "Credenciais inválidas")
	case errors.Is(err, models.ErrEmailTaken):
		writeErrorMessage(w, http.StatusBadRequest, "E-mail já cadastrado")
	case errors.Is(err, models.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, "Acesso negado")
	default:
		h.logger.WithError(err).Error(fallback)
		writeErrorMessage(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WithError(err).Warn("Failed to decode request body")
		writeErrorMessage(w, http.StatusBadRequest, "Formato de requisição inválido")
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, models.NewValidationError(name, "Identificador inválido")
	}
	return id, nil
}

// queryID parses a required numeric query parameter
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, models.NewValidationError(name, name+" é obrigatório")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.NewValidationError(name, name+" inválido")
	}
	return id, nil
}

// queryMonth reads the mes/ano pair. Both absent means no month filter.
func queryMonth(r *http.Request) (*recurrence.Month, error) {
	q := r.URL.Query()
	mes, ano := q.Get("mes"), q.Get("ano")
	if mes == "" && ano == "" {
		return nil, nil
	}
	if mes == "" || ano == "" {
		return nil, models.NewValidationError("mes", "Informe mes e ano juntos")
	}
	month, err := strconv.Atoi(mes)
	if err != nil {
		return nil, models.NewValidationError("mes", "Mês inválido")
	}
	year, err := strconv.Atoi(ano)
	if err != nil {
		return nil, models.NewValidationError("ano", "Ano inválido")
	}
	m, err := recurrence.NewMonth(year, month)
	if err != nil {
		return nil, models.NewValidationError("mes", "Mês inválido")
	}
	return &m, nil
}

// checkOwner rejects requests whose token was issued for another user
func checkOwner(r *http.Request, userID int64) error {
	if tokenUser, ok := UserIDFromContext(r.Context()); ok && tokenUser != userID {
		return models.ErrForbidden
	}
	return nil
}

// checkRecordOwner loads a record's owner and compares it with the token
// user. Without a token nothing is loaded.
func checkRecordOwner(r *http.Request, owner func() (int64, error)) error {
	if _, ok := UserIDFromContext(r.Context()); !ok {
		return nil
	}
	userID, err := owner()
	if err != nil {
		return err
	}
	return checkOwner(r, userID)
}

func (h *Handler) expenseOwner(r *http.Request, id int64) func() (int64, error) {
	return func() (int64, error) {
		e, err := h.svc.GetExpense(r.Context(), id)
		if err != nil {
			return 0, err
		}
		return e.UserID, nil
	}
}

func (h *Handler) billOwner(r *http.Request, id int64) func() (int64, error) {
	return func() (int64, error) {
		b, err := h.svc.GetBill(r.Context(), id)
		if err != nil {
			return 0, err
		}
		return b.UserID, nil
	}
}

func (h *Handler) incomeOwner(r *http.Request, id int64) func() (int64, error) {
	return func() (int64, error) {
		in, err := h.svc.GetIncome(r.Context(), id)
		if err != nil {
			return 0, err
		}
		return in.UserID, nil
	}
}

// userPath resolves and authorizes the {user_id} route variable
func userPath(r *http.Request) (int64, error) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		return 0, err
	}
	return userID, checkOwner(r, userID)
}
