package class

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

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
	router.Get("/turmas", h.List)
	router.Get("/turmas/{id}", h.GetDetails)
	router.Post("/turmas", h.Create)
	router.Put("/turmas/{id}", h.Update)
	router.Delete("/turmas/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q, err := pagination.FromRequest(r)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	nomeQuery := r.URL.Query().Get("nomeQuery")

	page, err := h.service.List(r.Context(), q, nomeQuery)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordClassesListViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, page)
}

func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "id invalido")
		return
	}

	details, err := h.service.GetDetails(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, details)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "creating class", "nome", req.Nome)
	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.metrics.RecordClassRegistered(r.Context())

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

	h.logger.InfoContext(r.Context(), "updating class", "id", id)
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

	h.logger.InfoContext(r.Context(), "deleting class", "id", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.RespondEmpty(w, http.StatusOK)
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (CadastroRequest, bool) {
	var req CadastroRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "corpo da requisicao invalido")
		return CadastroRequest{}, false
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "nome invalido")
		return CadastroRequest{}, false
	}

	return req, true
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrClassNotFound) {
		h.logger.InfoContext(r.Context(), "class not found")
		httputil.RespondWithError(w, http.StatusNotFound, "turma nao encontrada")
		return
	}
	h.logger.ErrorContext(r.Context(), "internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "erro interno")
}
