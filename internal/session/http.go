package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"school-service/internal/httputil"
	"school-service/internal/metrics"
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
	router.Post("/sessao", h.SignIn)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "corpo da requisicao invalido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "email ou senha invalidos")
		return
	}

	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.logger.InfoContext(r.Context(), "sign-in rejected", "email", req.Email)
			httputil.RespondWithError(w, http.StatusForbidden, "usuario ou senha incorretos")
			return
		}
		h.logger.ErrorContext(r.Context(), "sign-in failed", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "erro interno")
		return
	}

	h.logger.InfoContext(r.Context(), "admin signed in", "email", req.Email)
	h.metrics.RecordSessionCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, resp)
}
