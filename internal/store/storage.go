// Package store persiste usuários, ferramentas e empréstimos no PostgreSQL.
package store

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

var (
	ErrNaoEncontrado  = errors.New("registro não encontrado")
	ErrDuplicado      = errors.New("registro duplicado")
	ErrIndisponivel   = errors.New("ferramenta já está emprestada")
	ErrEmUso          = errors.New("ferramenta possui empréstimo em aberto")
	ErrJaDevolvido    = errors.New("empréstimo já foi devolvido")
	ErrNaoResponsavel = errors.New("empréstimo pertence a outro usuário")
)

// Ferramentas é o acesso às unidades
type Ferramentas interface {
	Listar(ctx context.Context) ([]models.Ferramenta, error)
	ListarPorCategoria(ctx context.Context, categoriaID string) ([]models.Ferramenta, error)
	ListarPorNomeCategoria(ctx context.Context, nome, categoriaID string) ([]models.Ferramenta, error)
	ListarPorIDs(ctx context.Context, ids []int64) ([]models.Ferramenta, error)
	BuscarTexto(ctx context.Context, termo, categoriaID string) ([]models.Ferramenta, error)
	BuscarPorID(ctx context.Context, id int64) (*models.Ferramenta, error)
	BuscarPorPatrimonio(ctx context.Context, patrimonio string) (*models.Ferramenta, error)
	BuscarPorQRCode(ctx context.Context, payload string) (*models.Ferramenta, error)
	Inserir(ctx context.Context, f *models.Ferramenta) error
	InserirLote(ctx context.Context, ferramentas []models.Ferramenta) ([]models.Ferramenta, error)
	Atualizar(ctx context.Context, f *models.Ferramenta) error
	AtualizarQRCode(ctx context.Context, id int64, url string) error
	Excluir(ctx context.Context, id int64) error
	MaisUtilizadas(ctx context.Context, limite int) ([]models.FerramentaUso, error)
}

// Emprestimos é o acesso aos empréstimos
type Emprestimos interface {
	Registrar(ctx context.Context, e *models.Emprestimo) error
	Devolver(ctx context.Context, id, usuarioID int64, local string) (*models.Emprestimo, error)
	BuscarPorID(ctx context.Context, id int64) (*models.Emprestimo, error)
	UltimoPorFerramenta(ctx context.Context, ferramentaID int64) (*models.Emprestimo, error)
	AbertosPorUsuario(ctx context.Context, usuarioID int64) ([]models.EmprestimoDetalhado, error)
	Recentes(ctx context.Context, limite int) ([]models.Emprestimo, error)
}

// Usuarios é o acesso às contas
type Usuarios interface {
	Criar(ctx context.Context, u *models.Usuario) error
	BuscarPorID(ctx context.Context, id int64) (*models.Usuario, error)
	BuscarPorNome(ctx context.Context, nome string) (*models.Usuario, error)
	Atualizar(ctx context.Context, u *models.Usuario) error
	AtualizarSenha(ctx context.Context, id int64, hash string) error
	NomesPorIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Storage struct {
	Ferramentas Ferramentas
	Emprestimos Emprestimos
	Usuarios    Usuarios
}

func NewStorage(db *sqlx.DB, logger *zap.Logger) *Storage {
	return &Storage{
		Ferramentas: NewFerramentaStore(db, logger),
		Emprestimos: NewEmprestimoStore(db, logger),
		Usuarios:    NewUsuarioStore(db, logger),
	}
}

// violacaoUnica identifica erros de chave única do PostgreSQL
func violacaoUnica(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int64) interface{} {
	if n == 0 {
		return nil
	}
	return n
}
