package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

const colunasEmprestimo = `e.id,
		e.ferramenta_id,
		e.usuario_id,
		e.data_emprestimo,
		e.data_devolucao,
		e.status,
		COALESCE(e.local_emprestimo, '') AS local_emprestimo,
		COALESCE(e.local_devolucao, '') AS local_devolucao`

type EmprestimoStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewEmprestimoStore(db *sqlx.DB, logger *zap.Logger) *EmprestimoStore {
	return &EmprestimoStore{db: db, logger: logger}
}

// Registrar cria o empréstimo e marca a unidade como indisponível na mesma
// transação. A atualização só acontece se a unidade ainda estiver disponível.
func (s *EmprestimoStore) Registrar(ctx context.Context, e *models.Emprestimo) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE ferramentas SET disponivel = false WHERE id = $1 AND disponivel = true`,
		e.FerramentaID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var existe bool
		if err := tx.QueryRowxContext(ctx, `SELECT EXISTS(SELECT 1 FROM ferramentas WHERE id = $1)`, e.FerramentaID).Scan(&existe); err != nil {
			return err
		}
		if !existe {
			return ErrNaoEncontrado
		}
		return ErrIndisponivel
	}

	e.Status = models.StatusEmprestado
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO emprestimos (ferramenta_id, usuario_id, status, local_emprestimo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, data_emprestimo`,
		e.FerramentaID, e.UsuarioID, e.Status, nullIfEmpty(e.LocalEmprestimo),
	).Scan(&e.ID, &e.DataEmprestimo)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("empréstimo registrado",
		zap.Int64("emprestimo_id", e.ID),
		zap.Int64("ferramenta_id", e.FerramentaID),
		zap.Int64("usuario_id", e.UsuarioID),
	)
	return nil
}

// Devolver fecha o empréstimo e libera a unidade. Apenas quem pegou a
// ferramenta pode devolvê-la.
func (s *EmprestimoStore) Devolver(ctx context.Context, id, usuarioID int64, local string) (*models.Emprestimo, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var e models.Emprestimo
	err = tx.GetContext(ctx, &e, `SELECT `+colunasEmprestimo+` FROM emprestimos e WHERE e.id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	if e.UsuarioID != usuarioID {
		return nil, ErrNaoResponsavel
	}
	if !e.Aberto() {
		return nil, ErrJaDevolvido
	}

	err = tx.QueryRowxContext(ctx,
		`UPDATE emprestimos SET data_devolucao = now(), status = $2, local_devolucao = $3
		WHERE id = $1
		RETURNING data_devolucao`,
		id, models.StatusDevolvido, nullIfEmpty(local),
	).Scan(&e.DataDevolucao)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE ferramentas SET disponivel = true WHERE id = $1`, e.FerramentaID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	e.Status = models.StatusDevolvido
	e.LocalDevolucao = local
	return &e, nil
}

func (s *EmprestimoStore) BuscarPorID(ctx context.Context, id int64) (*models.Emprestimo, error) {
	var e models.Emprestimo
	err := s.db.GetContext(ctx, &e, `SELECT `+colunasEmprestimo+` FROM emprestimos e WHERE e.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UltimoPorFerramenta retorna o empréstimo mais recente da unidade com o nome de quem pegou
func (s *EmprestimoStore) UltimoPorFerramenta(ctx context.Context, ferramentaID int64) (*models.Emprestimo, error) {
	query := `SELECT ` + colunasEmprestimo + `, COALESCE(u.nome, '') AS usuario_nome
		FROM emprestimos e
		LEFT JOIN usuarios u ON u.id = e.usuario_id
		WHERE e.ferramenta_id = $1
		ORDER BY e.data_emprestimo DESC, e.id DESC
		LIMIT 1`

	var e models.Emprestimo
	err := s.db.GetContext(ctx, &e, query, ferramentaID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// AbertosPorUsuario lista os empréstimos em aberto do usuário com a unidade emprestada
func (s *EmprestimoStore) AbertosPorUsuario(ctx context.Context, usuarioID int64) ([]models.EmprestimoDetalhado, error) {
	query := `SELECT ` + colunasEmprestimo + `,
		f.id AS "ferramenta.id",
		COALESCE(f.nome, '') AS "ferramenta.nome",
		COALESCE(f.categoria_id, '') AS "ferramenta.categoria_id",
		COALESCE(f.categoria_nome, '') AS "ferramenta.categoria_nome",
		f.patrimonio AS "ferramenta.patrimonio",
		f.disponivel AS "ferramenta.disponivel",
		COALESCE(f.imagem_url, '') AS "ferramenta.imagem_url",
		COALESCE(f.local, '') AS "ferramenta.local"
		FROM emprestimos e
		JOIN ferramentas f ON f.id = e.ferramenta_id
		WHERE e.usuario_id = $1 AND e.status = $2 AND e.data_devolucao IS NULL
		ORDER BY e.data_emprestimo DESC, e.id DESC`

	out := []models.EmprestimoDetalhado{}
	if err := s.db.SelectContext(ctx, &out, query, usuarioID, models.StatusEmprestado); err != nil {
		return nil, err
	}
	return out, nil
}

// Recentes retorna os últimos empréstimos registrados
func (s *EmprestimoStore) Recentes(ctx context.Context, limite int) ([]models.Emprestimo, error) {
	query := `SELECT ` + colunasEmprestimo + ` FROM emprestimos e
		ORDER BY e.data_emprestimo DESC, e.id DESC
		LIMIT $1`

	out := []models.Emprestimo{}
	if err := s.db.SelectContext(ctx, &out, query, limite); err != nil {
		return nil, err
	}
	return out, nil
}
