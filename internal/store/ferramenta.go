package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

const colunasFerramenta = `f.id,
		COALESCE(f.nome, '') AS nome,
		COALESCE(f.categoria_id, '') AS categoria_id,
		COALESCE(f.categoria_nome, '') AS categoria_nome,
		f.patrimonio,
		f.disponivel,
		COALESCE(f.imagem_url, '') AS imagem_url,
		COALESCE(f.detalhes, '') AS detalhes,
		COALESCE(f.local, '') AS local,
		COALESCE(f.qrcode_url, '') AS qrcode_url,
		COALESCE(f.adicionado_por, 0) AS adicionado_por,
		f.data_criacao`

type FerramentaStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewFerramentaStore(db *sqlx.DB, logger *zap.Logger) *FerramentaStore {
	return &FerramentaStore{db: db, logger: logger}
}

func (s *FerramentaStore) Listar(ctx context.Context) ([]models.Ferramenta, error) {
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f ORDER BY f.id`
	return s.selecionar(ctx, query)
}

func (s *FerramentaStore) ListarPorCategoria(ctx context.Context, categoriaID string) ([]models.Ferramenta, error) {
	if categoriaID == "" {
		query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f
			WHERE f.categoria_id IS NULL OR f.categoria_id = '' ORDER BY f.id`
		return s.selecionar(ctx, query)
	}
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f WHERE f.categoria_id = $1 ORDER BY f.id`
	return s.selecionar(ctx, query, categoriaID)
}

// ListarPorNomeCategoria busca todas as unidades de um mesmo grupo
func (s *FerramentaStore) ListarPorNomeCategoria(ctx context.Context, nome, categoriaID string) ([]models.Ferramenta, error) {
	if categoriaID == "" {
		query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f
			WHERE COALESCE(f.nome, '') = $1 AND (f.categoria_id IS NULL OR f.categoria_id = '')
			ORDER BY f.id`
		return s.selecionar(ctx, query, nome)
	}
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f
		WHERE COALESCE(f.nome, '') = $1 AND f.categoria_id = $2
		ORDER BY f.id`
	return s.selecionar(ctx, query, nome, categoriaID)
}

// ListarPorIDs mantém a ordem dos ids informados
func (s *FerramentaStore) ListarPorIDs(ctx context.Context, ids []int64) ([]models.Ferramenta, error) {
	if len(ids) == 0 {
		return []models.Ferramenta{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+colunasFerramenta+` FROM ferramentas f WHERE f.id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	encontradas, err := s.selecionar(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	porID := make(map[int64]models.Ferramenta, len(encontradas))
	for _, f := range encontradas {
		porID[f.ID] = f
	}
	out := make([]models.Ferramenta, 0, len(encontradas))
	for _, id := range ids {
		if f, ok := porID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// curingas do LIKE no termo do usuário são tratados como texto
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuscarTexto procura o termo no nome, patrimônio, local e detalhes
func (s *FerramentaStore) BuscarTexto(ctx context.Context, termo, categoriaID string) ([]models.Ferramenta, error) {
	padrao := "%" + escapeLike.Replace(termo) + "%"
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f
		WHERE (f.nome ILIKE $1 OR f.patrimonio ILIKE $1 OR f.local ILIKE $1 OR f.detalhes ILIKE $1)
		AND ($2 = '' OR f.categoria_id = $2)
		ORDER BY f.id`
	return s.selecionar(ctx, query, padrao, categoriaID)
}

func (s *FerramentaStore) BuscarPorID(ctx context.Context, id int64) (*models.Ferramenta, error) {
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f WHERE f.id = $1`
	return s.obter(ctx, query, id)
}

func (s *FerramentaStore) BuscarPorPatrimonio(ctx context.Context, patrimonio string) (*models.Ferramenta, error) {
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f WHERE f.patrimonio = $1`
	return s.obter(ctx, query, patrimonio)
}

func (s *FerramentaStore) BuscarPorQRCode(ctx context.Context, payload string) (*models.Ferramenta, error) {
	query := `SELECT ` + colunasFerramenta + ` FROM ferramentas f WHERE f.qrcode_url = $1 ORDER BY f.id LIMIT 1`
	return s.obter(ctx, query, payload)
}

const inserirFerramenta = `INSERT INTO ferramentas (
		nome, categoria_id, categoria_nome, patrimonio, disponivel,
		imagem_url, detalhes, local, qrcode_url, adicionado_por
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, data_criacao`

func argsFerramenta(f *models.Ferramenta) []interface{} {
	return []interface{}{
		f.Nome,
		nullIfEmpty(f.CategoriaID),
		nullIfEmpty(f.CategoriaNome),
		f.Patrimonio,
		f.Disponivel,
		nullIfEmpty(f.ImagemURL),
		nullIfEmpty(f.Detalhes),
		nullIfEmpty(f.Local),
		nullIfEmpty(f.QRCodeURL),
		nullIfZero(f.AdicionadoPor),
	}
}

func (s *FerramentaStore) Inserir(ctx context.Context, f *models.Ferramenta) error {
	err := s.db.QueryRowxContext(ctx, inserirFerramenta, argsFerramenta(f)...).Scan(&f.ID, &f.DataCriacao)
	if violacaoUnica(err) {
		return ErrDuplicado
	}
	return err
}

// InserirLote grava todas as unidades na mesma transação
func (s *FerramentaStore) InserirLote(ctx context.Context, ferramentas []models.Ferramenta) ([]models.Ferramenta, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := make([]models.Ferramenta, len(ferramentas))
	copy(out, ferramentas)
	for i := range out {
		err := tx.QueryRowxContext(ctx, inserirFerramenta, argsFerramenta(&out[i])...).Scan(&out[i].ID, &out[i].DataCriacao)
		if violacaoUnica(err) {
			return nil, ErrDuplicado
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao inserir unidade %d do lote: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("lote de ferramentas inserido", zap.Int("quantidade", len(out)))
	return out, nil
}

func (s *FerramentaStore) Atualizar(ctx context.Context, f *models.Ferramenta) error {
	query := `UPDATE ferramentas SET
		nome = $2, categoria_id = $3, categoria_nome = $4,
		imagem_url = $5, detalhes = $6, local = $7
		WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		f.ID, f.Nome, nullIfEmpty(f.CategoriaID), nullIfEmpty(f.CategoriaNome),
		nullIfEmpty(f.ImagemURL), nullIfEmpty(f.Detalhes), nullIfEmpty(f.Local),
	)
	if err != nil {
		return err
	}
	return exigirLinha(res)
}

func (s *FerramentaStore) AtualizarQRCode(ctx context.Context, id int64, url string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE ferramentas SET qrcode_url = $2 WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	return exigirLinha(res)
}

// Excluir remove a unidade e seu histórico de empréstimos.
// Unidades com empréstimo em aberto não são removidas.
func (s *FerramentaStore) Excluir(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var disponivel bool
	err = tx.QueryRowxContext(ctx, `SELECT disponivel FROM ferramentas WHERE id = $1 FOR UPDATE`, id).Scan(&disponivel)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNaoEncontrado
	}
	if err != nil {
		return err
	}

	var abertos int
	err = tx.QueryRowxContext(ctx,
		`SELECT COUNT(*) FROM emprestimos WHERE ferramenta_id = $1 AND status = $2 AND data_devolucao IS NULL`,
		id, models.StatusEmprestado,
	).Scan(&abertos)
	if err != nil {
		return err
	}
	if abertos > 0 || !disponivel {
		return ErrEmUso
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM emprestimos WHERE ferramenta_id = $1`, id); err != nil {
		return fmt.Errorf("erro ao excluir empréstimos: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ferramentas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("erro ao excluir ferramenta: %w", err)
	}

	return tx.Commit()
}

// MaisUtilizadas ordena as unidades pela quantidade de empréstimos
func (s *FerramentaStore) MaisUtilizadas(ctx context.Context, limite int) ([]models.FerramentaUso, error) {
	query := `SELECT ` + colunasFerramenta + `, COUNT(e.id) AS total_emprestimos
		FROM ferramentas f
		JOIN emprestimos e ON e.ferramenta_id = f.id
		GROUP BY f.id
		ORDER BY total_emprestimos DESC, f.id
		LIMIT $1`

	out := []models.FerramentaUso{}
	if err := s.db.SelectContext(ctx, &out, query, limite); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FerramentaStore) selecionar(ctx context.Context, query string, args ...interface{}) ([]models.Ferramenta, error) {
	out := []models.Ferramenta{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FerramentaStore) obter(ctx context.Context, query string, args ...interface{}) (*models.Ferramenta, error) {
	var f models.Ferramenta
	err := s.db.GetContext(ctx, &f, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func exigirLinha(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNaoEncontrado
	}
	return nil
}
