package student

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"school-service/internal/httputil"
	"school-service/internal/metrics"
	"school-service/internal/pagination"
	"school-service/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validation.New(),
		logger:   logger,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/alunos", h.List)
	router.Post("/alunos", h.Create)
	router.Put("/alunos/{id}", h.Update)
	router.Delete("/alunos/{id}", h.Delete)
	router.Post("/alunos/{id}/matriculas", h.Enroll)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := pagination.FromRequest(r)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	nomeQuery := r.URL.Query().Get("nomeQuery")
	cpfQuery := r.URL.Query().Get("cpfQuery")

	page, err := h.service.List(r.Context(), q, nomeQuery, cpfQuery)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentsListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "creating student", "email", req.Email)
	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordStudentRegistered(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]int{"id": id})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "id invalido")
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "updating student", "id", id)
	if err := h.service.Update(r.Context(), id, req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondEmpty(w, http.StatusOK)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "id invalido")
		return
	}

	h.logger.InfoContext(r.Context(), "deleting student", "id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondEmpty(w, http.StatusOK)
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "id invalido")
		return
	}

	turmaID, err := strconv.Atoi(r.URL.Query().Get("turmaId"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "turmaId invalido")
		return
	}

	h.logger.InfoContext(r.Context(), "enrolling student", "aluno_id", id, "turma_id", turmaID)
	matriculaID, err := h.service.Enroll(r.Context(), id, turmaID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordEnrollmentCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, map[string]int{"id": matriculaID})
}

// decodeAndValidate parses the create/update body and applies the field
// rules, including the birth-date window which needs "now".
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (CadastroRequest, bool) {
	var req CadastroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "corpo da requisicao invalido")
		return CadastroRequest{}, false
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, validationMessage(err))
		return CadastroRequest{}, false
	}

	nascimento := time.Time(req.DataNascimento)
	now := time.Now().UTC()
	if nascimento.Before(now.AddDate(-150, 0, 0)) || nascimento.After(now) {
		httputil.RespondWithError(w, http.StatusBadRequest, "data de nascimento invalida")
		return CadastroRequest{}, false
	}

	return req, true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "requisicao invalida"
	}

	switch fieldErrs[0].Field() {
	case "Nome":
		return "nome invalido"
	case "DataNascimento":
		return "data de nascimento invalida"
	case "CPF":
		return "cpf invalido"
	case "Email":
		return "email invalido"
	case "Senha":
		return "senha invalida"
	}
	return "requisicao invalida"
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrStudentConflict):
		h.logger.InfoContext(r.Context(), "student conflict")
		httputil.RespondWithError(w, http.StatusForbidden, "aluno esta em conflito com cpf ou email")
	case errors.Is(err, ErrAlreadyEnrolled):
		h.logger.InfoContext(r.Context(), "duplicate enrollment")
		httputil.RespondWithError(w, http.StatusForbidden, "aluno ja esta matriculado nessa turma")
	case errors.Is(err, ErrStudentNotFound):
		h.logger.InfoContext(r.Context(), "student not found")
		httputil.RespondWithError(w, http.StatusNotFound, "aluno nao encontrado")
	default:
		h.logger.ErrorContext(r.Context(), "internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "erro interno")
	}
}
