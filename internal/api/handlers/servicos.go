package handlers

import (
	"context"

	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/services"
)

// Interfaces satisfeitas pelos serviços de internal/services. Os handlers
// dependem só do que usam, o que permite testá-los com fakes.

type AuthServico interface {
	Registrar(ctx context.Context, req models.RegistroRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Verificar(ctx context.Context, usuarioID int64) (*models.Usuario, error)
	AtualizarPerfil(ctx context.Context, alvoID, solicitanteID int64, req models.AtualizarUsuarioRequest) (*models.Usuario, error)
	AlterarSenha(ctx context.Context, alvoID, solicitanteID int64, req models.AlterarSenhaRequest) error
}

type FerramentaServico interface {
	Catalogo() constants.Catalogo
	Listar(ctx context.Context, categoriaID string) ([]models.Ferramenta, error)
	ListarGrupos(ctx context.Context, filtro models.FiltroFerramentas) ([]models.GrupoFerramentas, error)
	BuscarPorID(ctx context.Context, id int64) (*models.Ferramenta, error)
	BuscarGrupo(ctx context.Context, id int64) (*models.GrupoDetalhe, error)
	Criar(ctx context.Context, req models.FerramentaRequest, usuarioID int64) (*models.Ferramenta, error)
	CriarSemPatrimonio(ctx context.Context, req models.FerramentaSemPatrimonioRequest, usuarioID int64) ([]models.Ferramenta, error)
	Atualizar(ctx context.Context, id int64, req models.AtualizarFerramentaRequest) (*models.Ferramenta, error)
	AtualizarQRCode(ctx context.Context, id int64, payload string) (*models.Ferramenta, error)
	ResolverQRCode(ctx context.Context, payload string) (*models.Ferramenta, error)
	PlanejarExclusao(ctx context.Context, ids []int64) (models.Plano, error)
	ExecutarExclusao(ctx context.Context, plano models.Plano, conf models.Confirmacao) (*models.ResumoLote, error)
	MaisUtilizadas(ctx context.Context, limite int) ([]models.FerramentaUso, error)
	ContagemPorCategoria(ctx context.Context) ([]models.CategoriaResumo, error)
	EnviarImagem(ctx context.Context, nome string, conteudo []byte, contentType string) (string, error)
}

type IdentificacaoServico interface {
	Disponivel() bool
	Identificar(ctx context.Context, imagem []byte, mimeType string) (*models.IdentificacaoResponse, error)
}

type EmprestimoServico interface {
	Registrar(ctx context.Context, req models.EmprestimoRequest, usuarioID int64) (*models.Emprestimo, error)
	RegistrarDevolucao(ctx context.Context, emprestimoID int64, req models.DevolucaoRequest, usuarioID int64) (*models.Emprestimo, error)
	BuscarAberto(ctx context.Context, ferramentaID int64) (*models.Emprestimo, error)
	MeusEmprestimos(ctx context.Context, usuarioID int64) ([]models.EmprestimoDetalhado, error)
	PlanejarDevolucaoGrupo(ctx context.Context, ferramentaID, usuarioID int64) (models.Plano, error)
	ExecutarDevolucaoGrupo(ctx context.Context, plano models.Plano, conf models.Confirmacao, local string) (*models.ResumoLote, error)
}

type DashboardServico interface {
	Estatisticas(ctx context.Context) (*models.Estatisticas, error)
	ExportarInventario(ctx context.Context) ([]byte, error)
}

var (
	_ AuthServico          = (*services.AuthService)(nil)
	_ FerramentaServico    = (*services.FerramentaService)(nil)
	_ IdentificacaoServico = (*services.IdentificacaoService)(nil)
	_ EmprestimoServico    = (*services.EmprestimoService)(nil)
	_ DashboardServico     = (*services.DashboardService)(nil)
)
