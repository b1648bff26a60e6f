package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	middlewares "github.com/prefeitura-rio/app-ferramentas/internal/middleware"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// comUsuario simula o middleware de JWT
func comUsuario(id int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middlewares.UserIDKey, id)
		c.Next()
	}
}

type authFake struct {
	registrado  models.RegistroRequest
	err         error
	alvo        int64
	solicitante int64
}

func (a *authFake) Registrar(_ context.Context, req models.RegistroRequest) (*models.AuthResponse, error) {
	a.registrado = req
	if a.err != nil {
		return nil, a.err
	}
	return &models.AuthResponse{Token: "tok", Usuario: models.Usuario{ID: 1, Nome: req.Nome}}, nil
}

func (a *authFake) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &models.AuthResponse{Token: "tok", Usuario: models.Usuario{ID: 1, Nome: req.Nome}}, nil
}

func (a *authFake) Verificar(_ context.Context, id int64) (*models.Usuario, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &models.Usuario{ID: id, Nome: "joana"}, nil
}

func (a *authFake) AtualizarPerfil(_ context.Context, alvoID, solicitanteID int64, req models.AtualizarUsuarioRequest) (*models.Usuario, error) {
	a.alvo, a.solicitante = alvoID, solicitanteID
	if alvoID != solicitanteID {
		return nil, services.ErrAcessoNegado
	}
	return &models.Usuario{ID: alvoID, Nome: req.Nome}, nil
}

func (a *authFake) AlterarSenha(_ context.Context, alvoID, solicitanteID int64, _ models.AlterarSenhaRequest) error {
	a.alvo, a.solicitante = alvoID, solicitanteID
	return a.err
}

type ferramentasFake struct {
	ferramentas []models.Ferramenta
	grupos      []models.GrupoFerramentas
	filtro      models.FiltroFerramentas
	plano       models.Plano
	executados  []models.Plano
	criadoPor   int64
	limite      int
	upload      struct {
		nome, contentType string
		tamanho           int
	}
	err error
}

func (f *ferramentasFake) Catalogo() constants.Catalogo { return constants.CategoriasPadrao }

func (f *ferramentasFake) Listar(_ context.Context, categoriaID string) ([]models.Ferramenta, error) {
	f.filtro.CategoriaID = categoriaID
	return f.ferramentas, f.err
}

func (f *ferramentasFake) ListarGrupos(_ context.Context, filtro models.FiltroFerramentas) ([]models.GrupoFerramentas, error) {
	f.filtro = filtro
	return f.grupos, f.err
}

func (f *ferramentasFake) BuscarPorID(_ context.Context, id int64) (*models.Ferramenta, error) {
	for _, ferramenta := range f.ferramentas {
		if ferramenta.ID == id {
			return &ferramenta, nil
		}
	}
	return nil, services.ErrFerramentaNaoEncontrada
}

func (f *ferramentasFake) BuscarGrupo(ctx context.Context, id int64) (*models.GrupoDetalhe, error) {
	u, err := f.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.GrupoDetalhe{Grupo: models.GrupoFerramentas{Nome: u.Nome, Total: 1}, Selecionada: *u}, nil
}

func (f *ferramentasFake) Criar(_ context.Context, req models.FerramentaRequest, usuarioID int64) (*models.Ferramenta, error) {
	f.criadoPor = usuarioID
	if f.err != nil {
		return nil, f.err
	}
	return &models.Ferramenta{ID: 10, Nome: req.Nome, Patrimonio: req.Patrimonio, Disponivel: true}, nil
}

func (f *ferramentasFake) CriarSemPatrimonio(_ context.Context, req models.FerramentaSemPatrimonioRequest, usuarioID int64) ([]models.Ferramenta, error) {
	f.criadoPor = usuarioID
	out := make([]models.Ferramenta, req.Quantidade)
	for i := range out {
		out[i] = models.Ferramenta{ID: int64(i + 1), Nome: req.Nome}
	}
	return out, f.err
}

func (f *ferramentasFake) Atualizar(ctx context.Context, id int64, req models.AtualizarFerramentaRequest) (*models.Ferramenta, error) {
	u, err := f.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Nome = req.Nome
	return u, nil
}

func (f *ferramentasFake) AtualizarQRCode(ctx context.Context, id int64, payload string) (*models.Ferramenta, error) {
	u, err := f.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.QRCodeURL = payload
	return u, nil
}

func (f *ferramentasFake) ResolverQRCode(_ context.Context, payload string) (*models.Ferramenta, error) {
	for _, ferramenta := range f.ferramentas {
		if ferramenta.QRCodeURL == payload {
			return &ferramenta, nil
		}
	}
	return nil, services.ErrQRCodeInvalido
}

func (f *ferramentasFake) PlanejarExclusao(_ context.Context, ids []int64) (models.Plano, error) {
	f.plano = models.Plano{Acao: models.AcaoExcluir, Afetadas: ids, Mensagem: "ok"}
	return f.plano, nil
}

func (f *ferramentasFake) ExecutarExclusao(_ context.Context, plano models.Plano, conf models.Confirmacao) (*models.ResumoLote, error) {
	if !conf.Confirmado {
		return nil, services.ErrConfirmacaoNecessaria
	}
	f.executados = append(f.executados, plano)
	return &models.ResumoLote{Sucessos: len(plano.Afetadas)}, nil
}

func (f *ferramentasFake) MaisUtilizadas(_ context.Context, limite int) ([]models.FerramentaUso, error) {
	f.limite = limite
	return []models.FerramentaUso{}, nil
}

func (f *ferramentasFake) ContagemPorCategoria(context.Context) ([]models.CategoriaResumo, error) {
	return []models.CategoriaResumo{
		{ID: "1", Nome: "Martelos", Total: 0},
		{ID: "2", Nome: "Chaves", Total: 4, Disponivel: 1},
		{ID: "3", Nome: "Alicates", Total: 2, Disponivel: 2},
	}, f.err
}

func (f *ferramentasFake) EnviarImagem(_ context.Context, nome string, conteudo []byte, contentType string) (string, error) {
	f.upload.nome, f.upload.contentType, f.upload.tamanho = nome, contentType, len(conteudo)
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.local/" + nome, nil
}

type identificacaoFake struct {
	disponivel bool
	mimeType   string
}

func (i *identificacaoFake) Disponivel() bool { return i.disponivel }

func (i *identificacaoFake) Identificar(_ context.Context, _ []byte, mimeType string) (*models.IdentificacaoResponse, error) {
	i.mimeType = mimeType
	return &models.IdentificacaoResponse{Nome: "Serra", CategoriaID: "5", CategoriaNome: "Serras"}, nil
}

type emprestimosFake struct {
	registrarErr error
	pedido       models.EmprestimoRequest
	usuario      int64
	plano        models.Plano
	local        string
	executou     bool
	devolucao    models.DevolucaoRequest
	aberto       *models.Emprestimo
}

func (e *emprestimosFake) Registrar(_ context.Context, req models.EmprestimoRequest, usuarioID int64) (*models.Emprestimo, error) {
	e.pedido, e.usuario = req, usuarioID
	if e.registrarErr != nil {
		return nil, e.registrarErr
	}
	return &models.Emprestimo{ID: 1, FerramentaID: req.FerramentaID, UsuarioID: usuarioID, Status: models.StatusEmprestado}, nil
}

func (e *emprestimosFake) RegistrarDevolucao(_ context.Context, id int64, req models.DevolucaoRequest, usuarioID int64) (*models.Emprestimo, error) {
	e.devolucao, e.usuario = req, usuarioID
	return &models.Emprestimo{ID: id, UsuarioID: usuarioID, Status: models.StatusDevolvido, LocalDevolucao: req.LocalDevolucao}, nil
}

func (e *emprestimosFake) BuscarAberto(context.Context, int64) (*models.Emprestimo, error) {
	return e.aberto, nil
}

func (e *emprestimosFake) MeusEmprestimos(_ context.Context, usuarioID int64) ([]models.EmprestimoDetalhado, error) {
	e.usuario = usuarioID
	return []models.EmprestimoDetalhado{}, nil
}

func (e *emprestimosFake) PlanejarDevolucaoGrupo(_ context.Context, ferramentaID, usuarioID int64) (models.Plano, error) {
	e.usuario = usuarioID
	e.plano = models.Plano{
		Acao:         models.AcaoDevolverGrupo,
		Afetadas:     []int64{ferramentaID},
		Emprestimos:  []int64{99},
		ReferenciaID: ferramentaID,
		UsuarioID:    usuarioID,
	}
	return e.plano, nil
}

func (e *emprestimosFake) ExecutarDevolucaoGrupo(_ context.Context, plano models.Plano, conf models.Confirmacao, local string) (*models.ResumoLote, error) {
	if !conf.Confirmado {
		return nil, services.ErrConfirmacaoNecessaria
	}
	e.executou, e.local = true, local
	return &models.ResumoLote{Sucessos: len(plano.Afetadas)}, nil
}

type dashboardFake struct {
	planilha []byte
	err      error
}

func (d *dashboardFake) Estatisticas(context.Context) (*models.Estatisticas, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &models.Estatisticas{TotalFerramentas: 3, CategoriaMaisUsada: "Serras"}, nil
}

func (d *dashboardFake) ExportarInventario(context.Context) ([]byte, error) {
	return d.planilha, d.err
}
