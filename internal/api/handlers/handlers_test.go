package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefeitura-rio/app-ferramentas/internal/armazenamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/migration"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/services"
)

func requisitar(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodificar(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrFerramentaNaoEncontrada, http.StatusNotFound},
		{fmt.Errorf("contexto: %w", services.ErrEmprestimoNaoEncontrado), http.StatusNotFound},
		{services.ErrPatrimonioDuplicado, http.StatusConflict},
		{services.ErrSemUnidadeDisponivel, http.StatusConflict},
		{services.ErrQRCodeInvalido, http.StatusBadRequest},
		{services.ErrCredenciaisInvalidas, http.StatusUnauthorized},
		{services.ErrNaoResponsavel, http.StatusForbidden},
		{services.ErrIdentificacaoFalhou, http.StatusBadGateway},
		{armazenamento.ErrNaoConfigurado, http.StatusServiceUnavailable},
		{armazenamento.ErrTipoInvalido, http.StatusUnsupportedMediaType},
		{errors.New("conexão recusada"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			decodificar(t, w, &body)
			assert.NotEmpty(t, body.Error)
			if tt.status == http.StatusInternalServerError {
				assert.Empty(t, body.Details)
			}
		})
	}
}

func TestAuthHandler(t *testing.T) {
	auth := &authFake{}
	h := NewAuthHandler(auth)
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	autenticado := r.Group("/", comUsuario(7))
	autenticado.GET("/check", h.Check)
	autenticado.PUT("/users/:id", h.UpdateUser)
	autenticado.PUT("/users/:id/senha", h.ChangePassword)

	t.Run("registro", func(t *testing.T) {
		w := requisitar(r, http.MethodPost, "/register", models.RegistroRequest{Nome: "joana", Senha: "senha123", ConfirmarSenha: "senha123"})
		assert.Equal(t, http.StatusCreated, w.Code)
		var resp models.AuthResponse
		decodificar(t, w, &resp)
		assert.Equal(t, "tok", resp.Token)
	})

	t.Run("confirmação diferente", func(t *testing.T) {
		w := requisitar(r, http.MethodPost, "/register", models.RegistroRequest{Nome: "joana", Senha: "senha123", ConfirmarSenha: "outra"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login inválido", func(t *testing.T) {
		auth.err = services.ErrCredenciaisInvalidas
		defer func() { auth.err = nil }()
		w := requisitar(r, http.MethodPost, "/login", models.LoginRequest{Nome: "joana", Senha: "x"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("check usa o usuário do token", func(t *testing.T) {
		w := requisitar(r, http.MethodGet, "/check", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var u models.Usuario
		decodificar(t, w, &u)
		assert.Equal(t, int64(7), u.ID)
	})

	t.Run("perfil de outro usuário", func(t *testing.T) {
		w := requisitar(r, http.MethodPut, "/users/8", models.AtualizarUsuarioRequest{Nome: "Joana"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, int64(8), auth.alvo)
		assert.Equal(t, int64(7), auth.solicitante)
	})

	t.Run("data de nascimento inválida", func(t *testing.T) {
		w := requisitar(r, http.MethodPut, "/users/7", models.AtualizarUsuarioRequest{Nome: "Joana", Nascimento: "20/05/1990"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("troca de senha", func(t *testing.T) {
		w := requisitar(r, http.MethodPut, "/users/7/senha", models.AlterarSenhaRequest{SenhaAtual: "senha123", NovaSenha: "nova123", ConfirmarSenha: "nova123"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func novoRouterFerramentas(f *ferramentasFake, id *identificacaoFake) *gin.Engine {
	var ident IdentificacaoServico
	if id != nil {
		ident = id
	}
	h := NewFerramentaHandler(f, ident)
	r := gin.New()
	r.GET("/ferramentas", h.List)
	r.GET("/ferramentas/grupos", h.ListGroups)
	r.GET("/ferramentas/mais-utilizadas", h.MostUsed)
	r.GET("/ferramentas/categoria/:categoryId", h.ListByCategory)
	r.GET("/ferramentas/qrcode", h.ResolveQRCode)
	r.GET("/ferramentas/:id", h.Get)
	r.GET("/ferramentas/:id/grupo", h.GetGroup)

	a := r.Group("/", comUsuario(3))
	a.POST("/ferramentas", h.Create)
	a.POST("/ferramentas/sem-patrimonio", h.CreateWithoutTag)
	a.POST("/ferramentas/upload", h.Upload)
	a.POST("/ferramentas/identificar", h.Identify)
	a.PUT("/ferramentas/:id", h.Update)
	a.PUT("/ferramentas/:id/qrcode", h.UpdateQRCode)
	a.DELETE("/ferramentas/:id", h.Delete)
	a.POST("/ferramentas/excluir", h.BulkDelete)
	return r
}

func TestFerramentaHandlerConsultas(t *testing.T) {
	f := &ferramentasFake{
		ferramentas: []models.Ferramenta{{ID: 1, Nome: "Serra", QRCodeURL: "tool-PAT-1-1700000000000"}},
		grupos:      []models.GrupoFerramentas{{ID: "g1", Nome: "Serra", Total: 2, Disponivel: 1}},
	}
	r := novoRouterFerramentas(f, nil)

	t.Run("grupos com filtros", func(t *testing.T) {
		w := requisitar(r, http.MethodGet, "/ferramentas/grupos?categoria=5&q=serra", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp models.ListaGruposResponse
		decodificar(t, w, &resp)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, models.FiltroFerramentas{CategoriaID: "5", Busca: "serra"}, f.filtro)
	})

	t.Run("lista por categoria", func(t *testing.T) {
		w := requisitar(r, http.MethodGet, "/ferramentas/categoria/3", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3", f.filtro.CategoriaID)
	})

	t.Run("limite inválido usa o padrão", func(t *testing.T) {
		w := requisitar(r, http.MethodGet, "/ferramentas/mais-utilizadas?limite=abc", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, f.limite)

		requisitar(r, http.MethodGet, "/ferramentas/mais-utilizadas?limite=3", nil)
		assert.Equal(t, 3, f.limite)
	})

	t.Run("id inválido e inexistente", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, requisitar(r, http.MethodGet, "/ferramentas/abc", nil).Code)
		assert.Equal(t, http.StatusBadRequest, requisitar(r, http.MethodGet, "/ferramentas/0", nil).Code)
		assert.Equal(t, http.StatusNotFound, requisitar(r, http.MethodGet, "/ferramentas/99", nil).Code)
		assert.Equal(t, http.StatusOK, requisitar(r, http.MethodGet, "/ferramentas/1/grupo", nil).Code)
	})

	t.Run("qr code", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, requisitar(r, http.MethodGet, "/ferramentas/qrcode", nil).Code)
		assert.Equal(t, http.StatusBadRequest, requisitar(r, http.MethodGet, "/ferramentas/qrcode?payload=xyz", nil).Code)

		w := requisitar(r, http.MethodGet, "/ferramentas/qrcode?payload=tool-PAT-1-1700000000000", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var u models.Ferramenta
		decodificar(t, w, &u)
		assert.Equal(t, int64(1), u.ID)
	})
}

func TestFerramentaHandlerCadastro(t *testing.T) {
	f := &ferramentasFake{ferramentas: []models.Ferramenta{{ID: 1, Nome: "Serra"}}}
	r := novoRouterFerramentas(f, nil)

	w := requisitar(r, http.MethodPost, "/ferramentas", models.FerramentaRequest{Nome: "Serra", CategoriaID: "5", Patrimonio: "P-1", Local: "Almoxarifado"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(3), f.criadoPor)

	w = requisitar(r, http.MethodPost, "/ferramentas", models.FerramentaRequest{Nome: "Serra", CategoriaID: "5", Local: "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = requisitar(r, http.MethodPost, "/ferramentas/sem-patrimonio", models.FerramentaSemPatrimonioRequest{Nome: "Trena", CategoriaID: "4", Local: "A", Quantidade: 101})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = requisitar(r, http.MethodPost, "/ferramentas/sem-patrimonio", models.FerramentaSemPatrimonioRequest{Nome: "Trena", CategoriaID: "4", Local: "A", Quantidade: 3})
	require.Equal(t, http.StatusCreated, w.Code)
	var criadas []models.Ferramenta
	decodificar(t, w, &criadas)
	assert.Len(t, criadas, 3)

	f.err = services.ErrPatrimonioDuplicado
	w = requisitar(r, http.MethodPost, "/ferramentas", models.FerramentaRequest{Nome: "Serra", CategoriaID: "5", Patrimonio: "P-1", Local: "A"})
	assert.Equal(t, http.StatusConflict, w.Code)
	f.err = nil

	w = requisitar(r, http.MethodPut, "/ferramentas/1", models.AtualizarFerramentaRequest{Nome: "Serra Circular"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = requisitar(r, http.MethodPut, "/ferramentas/1/qrcode", models.QRCodeRequest{QRCodeURL: "tool-P-1-1700000000000"})
	require.Equal(t, http.StatusOK, w.Code)
	var atualizada models.Ferramenta
	decodificar(t, w, &atualizada)
	assert.Equal(t, "tool-P-1-1700000000000", atualizada.QRCodeURL)
}

func TestFerramentaHandlerExclusao(t *testing.T) {
	t.Run("sem confirmação devolve o plano", func(t *testing.T) {
		f := &ferramentasFake{}
		r := novoRouterFerramentas(f, nil)

		w := requisitar(r, http.MethodDelete, "/ferramentas/4", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp models.PlanoResponse
		decodificar(t, w, &resp)
		assert.True(t, resp.RequerConfirmacao)
		assert.Equal(t, []int64{4}, resp.Plano.Afetadas)
		assert.Empty(t, f.executados)
	})

	t.Run("com confirmação executa", func(t *testing.T) {
		f := &ferramentasFake{}
		r := novoRouterFerramentas(f, nil)

		w := requisitar(r, http.MethodDelete, "/ferramentas/4?confirmar=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resumo models.ResumoLote
		decodificar(t, w, &resumo)
		assert.Equal(t, 1, resumo.Sucessos)
		require.Len(t, f.executados, 1)
	})

	t.Run("em lote", func(t *testing.T) {
		f := &ferramentasFake{}
		r := novoRouterFerramentas(f, nil)

		w := requisitar(r, http.MethodPost, "/ferramentas/excluir", models.ExclusaoRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = requisitar(r, http.MethodPost, "/ferramentas/excluir", models.ExclusaoRequest{IDs: []int64{1, 2}})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, f.executados)

		w = requisitar(r, http.MethodPost, "/ferramentas/excluir", models.ExclusaoRequest{IDs: []int64{1, 2}, Confirmar: true})
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, f.executados, 1)
		assert.Equal(t, []int64{1, 2}, f.executados[0].Afetadas)
	})
}

func multipartImagem(t *testing.T, nome, contentType string, conteudo []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, CampoImagem, nome))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(conteudo)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFerramentaHandlerUpload(t *testing.T) {
	f := &ferramentasFake{}
	r := novoRouterFerramentas(f, nil)

	body, ct := multipartImagem(t, "serra.png", "application/octet-stream", png)
	req := httptest.NewRequest(http.MethodPost, "/ferramentas/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.UploadResponse
	decodificar(t, w, &resp)
	assert.Equal(t, "https://storage.local/serra.png", resp.URL)
	assert.Equal(t, "image/png", f.upload.contentType)
	assert.Equal(t, len(png), f.upload.tamanho)

	w = requisitar(r, http.MethodPost, "/ferramentas/upload", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.err = armazenamento.ErrNaoConfigurado
	body, ct = multipartImagem(t, "serra.png", "image/png", png)
	req = httptest.NewRequest(http.MethodPost, "/ferramentas/upload", body)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFerramentaHandlerIdentificar(t *testing.T) {
	t.Run("indisponível", func(t *testing.T) {
		r := novoRouterFerramentas(&ferramentasFake{}, nil)
		body, ct := multipartImagem(t, "foto.jpg", "image/jpeg", []byte{0xff, 0xd8})
		req := httptest.NewRequest(http.MethodPost, "/ferramentas/identificar", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("sugestão", func(t *testing.T) {
		ident := &identificacaoFake{disponivel: true}
		r := novoRouterFerramentas(&ferramentasFake{}, ident)
		body, ct := multipartImagem(t, "foto.jpg", "image/jpeg", []byte{0xff, 0xd8})
		req := httptest.NewRequest(http.MethodPost, "/ferramentas/identificar", body)
		req.Header.Set("Content-Type", ct)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var sugestao models.IdentificacaoResponse
		decodificar(t, w, &sugestao)
		assert.Equal(t, "5", sugestao.CategoriaID)
		assert.Equal(t, "image/jpeg", ident.mimeType)
	})
}

func novoRouterEmprestimos(e *emprestimosFake) *gin.Engine {
	h := NewEmprestimoHandler(e)
	r := gin.New()
	r.GET("/emprestimos/aberto/:ferramenta_id", h.OpenLoan)
	a := r.Group("/", comUsuario(8))
	a.POST("/emprestimos", h.Borrow)
	a.PUT("/emprestimos/:id/devolucao", h.Return)
	a.GET("/emprestimos/meus", h.MyLoans)
	a.POST("/emprestimos/devolver-grupo/:ferramenta_id", h.ReturnGroup)
	return r
}

func TestEmprestimoHandler(t *testing.T) {
	t.Run("empréstimo pelo grupo", func(t *testing.T) {
		e := &emprestimosFake{}
		r := novoRouterEmprestimos(e)
		w := requisitar(r, http.MethodPost, "/emprestimos", models.EmprestimoRequest{GrupoFerramentaID: 2, LocalEmprestimo: "Obra"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, int64(2), e.pedido.GrupoFerramentaID)
		assert.Equal(t, int64(8), e.usuario)
	})

	t.Run("sem unidade nem grupo", func(t *testing.T) {
		r := novoRouterEmprestimos(&emprestimosFake{})
		w := requisitar(r, http.MethodPost, "/emprestimos", models.EmprestimoRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflito", func(t *testing.T) {
		r := novoRouterEmprestimos(&emprestimosFake{registrarErr: services.ErrFerramentaIndisponivel})
		w := requisitar(r, http.MethodPost, "/emprestimos", models.EmprestimoRequest{FerramentaID: 1})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("devolução sem corpo", func(t *testing.T) {
		e := &emprestimosFake{}
		r := novoRouterEmprestimos(e)
		req := httptest.NewRequest(http.MethodPut, "/emprestimos/5/devolucao", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = requisitar(r, http.MethodPut, "/emprestimos/5/devolucao", models.DevolucaoRequest{LocalDevolucao: "Galpão"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Galpão", e.devolucao.LocalDevolucao)
	})

	t.Run("empréstimo aberto inexistente", func(t *testing.T) {
		r := novoRouterEmprestimos(&emprestimosFake{})
		w := requisitar(r, http.MethodGet, "/emprestimos/aberto/3", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})

	t.Run("devolução em grupo pede confirmação", func(t *testing.T) {
		e := &emprestimosFake{}
		r := novoRouterEmprestimos(e)

		w := requisitar(r, http.MethodPost, "/emprestimos/devolver-grupo/4", models.ConfirmacaoRequest{})
		require.Equal(t, http.StatusOK, w.Code)
		var plano models.PlanoResponse
		decodificar(t, w, &plano)
		assert.True(t, plano.RequerConfirmacao)
		assert.Equal(t, []int64{99}, plano.Plano.Emprestimos)
		assert.False(t, e.executou)

		w = requisitar(r, http.MethodPost, "/emprestimos/devolver-grupo/4", models.ConfirmacaoRequest{Confirmar: true, LocalDevolucao: "Galpão"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, e.executou)
		assert.Equal(t, "Galpão", e.local)
	})
}

func TestDashboardHandler(t *testing.T) {
	d := &dashboardFake{planilha: []byte("PK\x03\x04")}
	h := NewDashboardHandler(d)
	h.agora = func() time.Time { return time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC) }
	r := gin.New()
	r.GET("/dashboard", h.Stats)
	r.GET("/dashboard/exportar", h.Export)

	w := requisitar(r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.Estatisticas
	decodificar(t, w, &stats)
	assert.Equal(t, 3, stats.TotalFerramentas)

	w = requisitar(r, http.MethodGet, "/dashboard/exportar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tipoXLSX, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="inventario-2024-03-10.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, d.planilha, w.Body.Bytes())

	d.err = errors.New("banco fora")
	w = requisitar(r, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCategoryHandler(t *testing.T) {
	h := NewCategoryHandler(&ferramentasFake{})
	r := gin.New()
	r.GET("/categorias", h.GetCategories)

	nomes := func(w *httptest.ResponseRecorder) []string {
		var resumos []models.CategoriaResumo
		decodificar(t, w, &resumos)
		out := []string{}
		for _, c := range resumos {
			out = append(out, c.Nome)
		}
		return out
	}

	w := requisitar(r, http.MethodGet, "/categorias", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Martelos", "Chaves", "Alicates"}, nomes(w))

	w = requisitar(r, http.MethodGet, "/categorias?sort_by=count&include_empty=false", nil)
	assert.Equal(t, []string{"Chaves", "Alicates"}, nomes(w))

	w = requisitar(r, http.MethodGet, "/categorias?sort_by=alpha", nil)
	assert.Equal(t, []string{"Alicates", "Chaves", "Martelos"}, nomes(w))

	w = requisitar(r, http.MethodGet, "/categorias?sort_by=popularity", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fora := func(context.Context) error { return errors.New("fora") }

	t.Run("pronto com busca desativada", func(t *testing.T) {
		h := NewHealthHandler(map[string]Checagem{"postgres": ok, "cache": ok}, map[string]Checagem{"typesense": nil})
		r := gin.New()
		r.GET("/readiness", h.Readiness)
		r.GET("/liveness", h.Liveness)

		w := requisitar(r, http.MethodGet, "/readiness", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		decodificar(t, w, &resp)
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, map[string]string{"postgres": "ok", "cache": "ok", "typesense": "disabled"}, resp.Checks)

		assert.Equal(t, http.StatusOK, requisitar(r, http.MethodGet, "/liveness", nil).Code)
	})

	t.Run("busca fora não bloqueia", func(t *testing.T) {
		h := NewHealthHandler(map[string]Checagem{"postgres": ok}, map[string]Checagem{"typesense": fora})
		r := gin.New()
		r.GET("/readiness", h.Readiness)

		w := requisitar(r, http.MethodGet, "/readiness", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		decodificar(t, w, &resp)
		assert.Equal(t, "failed", resp.Checks["typesense"])
	})

	t.Run("banco fora", func(t *testing.T) {
		h := NewHealthHandler(map[string]Checagem{"postgres": fora, "cache": ok}, nil)
		r := gin.New()
		r.GET("/readiness", h.Readiness)

		w := requisitar(r, http.MethodGet, "/readiness", nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp HealthResponse
		decodificar(t, w, &resp)
		assert.Equal(t, "not_ready", resp.Status)
		assert.Contains(t, resp.Error, "postgres")
	})
}

type migratorFake struct {
	status []migration.Status
}

func (m migratorFake) Status(context.Context) ([]migration.Status, error) {
	return m.status, nil
}

func TestMigrationHandler(t *testing.T) {
	h := NewMigrationHandler(migratorFake{status: []migration.Status{
		{Versao: "v1", Aplicada: true},
		{Versao: "v2"},
	}}, "v2")
	r := gin.New()
	r.GET("/migracoes", h.GetStatus)

	w := requisitar(r, http.MethodGet, "/migracoes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp MigrationStatusResponse
	decodificar(t, w, &resp)
	assert.Equal(t, "v2", resp.VersaoAtual)
	assert.Equal(t, 1, resp.Pendentes)
	assert.True(t, resp.Bloqueado)
	assert.Len(t, resp.Migracoes, 2)
}
