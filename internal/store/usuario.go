package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

const colunasUsuario = `id, nome, senha, nascimento,
		COALESCE(codigo, '') AS codigo,
		COALESCE(cargo, '') AS cargo,
		data_criacao`

type UsuarioStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUsuarioStore(db *sqlx.DB, logger *zap.Logger) *UsuarioStore {
	return &UsuarioStore{db: db, logger: logger}
}

func (s *UsuarioStore) Criar(ctx context.Context, u *models.Usuario) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO usuarios (nome, senha) VALUES ($1, $2) RETURNING id, data_criacao`,
		u.Nome, u.Senha,
	).Scan(&u.ID, &u.DataCriacao)
	if violacaoUnica(err) {
		return ErrDuplicado
	}
	return err
}

func (s *UsuarioStore) BuscarPorID(ctx context.Context, id int64) (*models.Usuario, error) {
	return s.obter(ctx, `SELECT `+colunasUsuario+` FROM usuarios WHERE id = $1`, id)
}

func (s *UsuarioStore) BuscarPorNome(ctx context.Context, nome string) (*models.Usuario, error) {
	return s.obter(ctx, `SELECT `+colunasUsuario+` FROM usuarios WHERE nome = $1`, nome)
}

func (s *UsuarioStore) Atualizar(ctx context.Context, u *models.Usuario) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE usuarios SET nome = $2, nascimento = $3, codigo = $4, cargo = $5 WHERE id = $1`,
		u.ID, u.Nome, u.Nascimento, nullIfEmpty(u.Codigo), nullIfEmpty(u.Cargo),
	)
	if violacaoUnica(err) {
		return ErrDuplicado
	}
	if err != nil {
		return err
	}
	return exigirLinha(res)
}

func (s *UsuarioStore) AtualizarSenha(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE usuarios SET senha = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return err
	}
	return exigirLinha(res)
}

// NomesPorIDs resolve os nomes de vários usuários de uma vez
func (s *UsuarioStore) NomesPorIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	nomes := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return nomes, nil
	}

	query, args, err := sqlx.In(`SELECT id, nome FROM usuarios WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var linhas []struct {
		ID   int64  `db:"id"`
		Nome string `db:"nome"`
	}
	if err := s.db.SelectContext(ctx, &linhas, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, l := range linhas {
		nomes[l.ID] = l.Nome
	}
	return nomes, nil
}

func (s *UsuarioStore) obter(ctx context.Context, query string, args ...interface{}) (*models.Usuario, error) {
	var u models.Usuario
	err := s.db.GetContext(ctx, &u, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
