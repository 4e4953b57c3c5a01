package class_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"school-service/internal/class"
	"school-service/internal/metrics"
	"school-service/internal/pagination"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassService struct {
	createID   int
	createErr  error
	updateErr  error
	deleteErr  error
	details    *class.Details
	detailsErr error

	lastNome string
	page     pagination.Page[class.ListItem]
}

func (f *fakeClassService) Create(ctx context.Context, req class.CadastroRequest) (int, error) {
	return f.createID, f.createErr
}

func (f *fakeClassService) Update(ctx context.Context, id int, req class.CadastroRequest) error {
	return f.updateErr
}

func (f *fakeClassService) Delete(ctx context.Context, id int) error {
	return f.deleteErr
}

func (f *fakeClassService) List(ctx context.Context, q pagination.Query, nomeQuery string) (pagination.Page[class.ListItem], error) {
	f.lastNome = nomeQuery
	return f.page, nil
}

func (f *fakeClassService) GetDetails(ctx context.Context, id int) (*class.Details, error) {
	return f.details, f.detailsErr
}

func newClassRouter(service class.Service) chi.Router {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	handler := class.NewHandler(service, logger, metrics.NewMock())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func sendJSON(t *testing.T, router chi.Router, method, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateClassHandler(t *testing.T) {
	t.Run("success returns id", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{createID: 5})

		w := sendJSON(t, router, http.MethodPost, "/turmas", map[string]string{
			"nome":      "Turma A",
			"descricao": "Manhã",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]int
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 5, resp["id"])
	})

	t.Run("name too short", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{})

		w := sendJSON(t, router, http.MethodPost, "/turmas", map[string]string{"nome": "Tu"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "nome invalido")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/turmas", bytes.NewReader([]byte("{")))
		w := httptest.NewRecorder()
		newClassRouter(&fakeClassService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListClassesHandler(t *testing.T) {
	t.Run("invalid page size", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{})

		req := httptest.NewRequest(http.MethodGet, "/turmas?tamanhoPagina=abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns envelope with counts", func(t *testing.T) {
		service := &fakeClassService{
			page: pagination.NewPage(1, 10, []class.ListItem{
				{Nome: "Turma A", Descricao: "Manhã", ID: 1, QuantidadeAlunos: 3},
			}),
		}
		router := newClassRouter(service)

		req := httptest.NewRequest(http.MethodGet, "/turmas?nomeQuery=tur", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tur", service.lastNome)

		var resp struct {
			QntdItens int `json:"qntdItens"`
			Paginas   int `json:"paginas"`
			Items     []struct {
				QuantidadeAlunos int `json:"quantidadeAlunos"`
			} `json:"items"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 1, resp.QntdItens)
		assert.Equal(t, 1, resp.Paginas)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.Items[0].QuantidadeAlunos)
	})
}

func TestGetClassDetailsHandler(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{detailsErr: class.ErrClassNotFound})

		req := httptest.NewRequest(http.MethodGet, "/turmas/42", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "turma nao encontrada")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{})

		req := httptest.NewRequest(http.MethodGet, "/turmas/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success includes students", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{
			details: &class.Details{
				Nome:             "Turma A",
				ID:               7,
				QuantidadeAlunos: 1,
				Alunos:           []class.EnrolledStudent{{Nome: "Ana", ID: 10}},
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/turmas/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp class.Details
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Turma A", resp.Nome)
		require.Len(t, resp.Alunos, 1)
		assert.Equal(t, "Ana", resp.Alunos[0].Nome)
	})
}

func TestUpdateClassHandler(t *testing.T) {
	t.Run("not found maps to 404", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{updateErr: class.ErrClassNotFound})

		w := sendJSON(t, router, http.MethodPut, "/turmas/99", map[string]string{"nome": "Turma B"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("success returns empty 200", func(t *testing.T) {
		router := newClassRouter(&fakeClassService{})

		w := sendJSON(t, router, http.MethodPut, "/turmas/7", map[string]string{"nome": "Turma B"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "{}", w.Body.String())
	})
}

func TestDeleteClassHandler(t *testing.T) {
	router := newClassRouter(&fakeClassService{})

	req := httptest.NewRequest(http.MethodDelete, "/turmas/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
