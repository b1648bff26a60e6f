package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

var colunasFerramentaMock = []string{
	"id", "nome", "categoria_id", "categoria_nome", "patrimonio", "disponivel",
	"imagem_url", "detalhes", "local", "qrcode_url", "adicionado_por", "data_criacao",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func setupFerramentaStore(t *testing.T) (*FerramentaStore, sqlmock.Sqlmock) {
	db, mock := setupMockDB(t)
	return NewFerramentaStore(db, zap.NewNop()), mock
}

func linhaFerramenta(rows *sqlmock.Rows, id int64, nome, categoria string, disponivel bool) *sqlmock.Rows {
	return rows.AddRow(id, nome, categoria, "", "PAT-"+nome, disponivel, "", "", "Almoxarifado", "", 1, time.Now())
}

func TestFerramentaStoreListar(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	rows := sqlmock.NewRows(colunasFerramentaMock)
	linhaFerramenta(rows, 1, "Furadeira", "1", true)
	linhaFerramenta(rows, 2, "", "", false)
	mock.ExpectQuery(`SELECT .* FROM ferramentas f ORDER BY f.id`).WillReturnRows(rows)

	ferramentas, err := s.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, ferramentas, 2)
	assert.Equal(t, "Furadeira", ferramentas[0].Nome)
	assert.Equal(t, "", ferramentas[1].CategoriaID)
	assert.False(t, ferramentas[1].Disponivel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFerramentaStoreBuscarTexto(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	rows := sqlmock.NewRows(colunasFerramentaMock)
	linhaFerramenta(rows, 3, "Furadeira", "1", true)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE (f.nome ILIKE $1 OR f.patrimonio ILIKE $1 OR f.local ILIKE $1 OR f.detalhes ILIKE $1)`)).
		WithArgs("%bateria%", "").
		WillReturnRows(rows)

	ferramentas, err := s.BuscarTexto(context.Background(), "bateria", "")
	require.NoError(t, err)
	require.Len(t, ferramentas, 1)
	assert.Equal(t, int64(3), ferramentas[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFerramentaStoreBuscarTextoEscapaCuringas(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	mock.ExpectQuery(`SELECT .* FROM ferramentas f`).
		WithArgs(`%50\%\_a\\b%`, "2").
		WillReturnRows(sqlmock.NewRows(colunasFerramentaMock))

	ferramentas, err := s.BuscarTexto(context.Background(), `50%_a\b`, "2")
	require.NoError(t, err)
	assert.Empty(t, ferramentas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFerramentaStoreListarPorNomeCategoria(t *testing.T) {
	t.Run("com categoria", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)
		mock.ExpectQuery(`WHERE COALESCE\(f.nome, ''\) = \$1 AND f.categoria_id = \$2`).
			WithArgs("Serra", "5").
			WillReturnRows(linhaFerramenta(sqlmock.NewRows(colunasFerramentaMock), 3, "Serra", "5", true))

		ferramentas, err := s.ListarPorNomeCategoria(context.Background(), "Serra", "5")
		require.NoError(t, err)
		assert.Len(t, ferramentas, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sem categoria", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)
		mock.ExpectQuery(`f.categoria_id IS NULL`).
			WithArgs("Serra").
			WillReturnRows(sqlmock.NewRows(colunasFerramentaMock))

		ferramentas, err := s.ListarPorNomeCategoria(context.Background(), "Serra", "")
		require.NoError(t, err)
		assert.NotNil(t, ferramentas)
		assert.Empty(t, ferramentas)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFerramentaStoreListarPorIDsMantemOrdem(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	rows := sqlmock.NewRows(colunasFerramentaMock)
	linhaFerramenta(rows, 1, "A", "1", true)
	linhaFerramenta(rows, 3, "C", "1", true)
	mock.ExpectQuery(`WHERE f.id IN \(\$1, \$2, \$3\)`).
		WithArgs(int64(3), int64(2), int64(1)).
		WillReturnRows(rows)

	ferramentas, err := s.ListarPorIDs(context.Background(), []int64{3, 2, 1})
	require.NoError(t, err)
	require.Len(t, ferramentas, 2)
	assert.Equal(t, int64(3), ferramentas[0].ID)
	assert.Equal(t, int64(1), ferramentas[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFerramentaStoreBuscarPorIDNaoEncontrada(t *testing.T) {
	s, mock := setupFerramentaStore(t)
	mock.ExpectQuery(`WHERE f.id = \$1`).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	f, err := s.BuscarPorID(context.Background(), 9)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestFerramentaStoreInserir(t *testing.T) {
	t.Run("sucesso", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)
		criadoEm := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`INSERT INTO ferramentas`).
			WithArgs("Trena", "4", "Medidores", "PAT-1", true, nil, nil, "Oficina", "tool-PAT-1", int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "data_criacao"}).AddRow(11, criadoEm))

		f := &models.Ferramenta{
			Nome: "Trena", CategoriaID: "4", CategoriaNome: "Medidores", Patrimonio: "PAT-1",
			Disponivel: true, Local: "Oficina", QRCodeURL: "tool-PAT-1", AdicionadoPor: 7,
		}
		require.NoError(t, s.Inserir(context.Background(), f))
		assert.Equal(t, int64(11), f.ID)
		assert.Equal(t, criadoEm, f.DataCriacao)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("patrimônio duplicado", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)
		mock.ExpectQuery(`INSERT INTO ferramentas`).WillReturnError(&pq.Error{Code: "23505"})

		err := s.Inserir(context.Background(), &models.Ferramenta{Nome: "Trena", Patrimonio: "PAT-1"})
		assert.ErrorIs(t, err, ErrDuplicado)
	})
}

func TestFerramentaStoreInserirLote(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO ferramentas`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_criacao"}).AddRow(20, time.Now()))
	mock.ExpectQuery(`INSERT INTO ferramentas`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_criacao"}).AddRow(21, time.Now()))
	mock.ExpectCommit()

	entrada := []models.Ferramenta{
		{Nome: "Chave", Patrimonio: "SEM PATRIMONIO-1-1", Disponivel: true},
		{Nome: "Chave", Patrimonio: "SEM PATRIMONIO-1-2", Disponivel: true},
	}
	out, err := s.InserirLote(context.Background(), entrada)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(20), out[0].ID)
	assert.Equal(t, int64(21), out[1].ID)
	assert.Zero(t, entrada[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFerramentaStoreInserirLoteDesfazEmErro(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO ferramentas`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "data_criacao"}).AddRow(20, time.Now()))
	mock.ExpectQuery(`INSERT INTO ferramentas`).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := s.InserirLote(context.Background(), []models.Ferramenta{{Nome: "A"}, {Nome: "A"}})
	assert.ErrorIs(t, err, ErrDuplicado)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFerramentaStoreExcluir(t *testing.T) {
	t.Run("remove empréstimos e unidade", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT disponivel FROM ferramentas WHERE id = \$1 FOR UPDATE`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"disponivel"}).AddRow(true))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM emprestimos`).
			WithArgs(int64(5), models.StatusEmprestado).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM emprestimos WHERE ferramenta_id = $1`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ferramentas WHERE id = $1`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.Excluir(context.Background(), 5))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("recusa unidade emprestada", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"disponivel"}).AddRow(false))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM emprestimos`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		assert.ErrorIs(t, s.Excluir(context.Background(), 5), ErrEmUso)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unidade inexistente", func(t *testing.T) {
		s, mock := setupFerramentaStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		assert.ErrorIs(t, s.Excluir(context.Background(), 5), ErrNaoEncontrado)
	})
}

func TestFerramentaStoreAtualizarQRCode(t *testing.T) {
	s, mock := setupFerramentaStore(t)
	mock.ExpectExec(`UPDATE ferramentas SET qrcode_url`).
		WithArgs(int64(1), "tool-X-1700000000000-0").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.AtualizarQRCode(context.Background(), 1, "tool-X-1700000000000-0")
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestFerramentaStoreMaisUtilizadas(t *testing.T) {
	s, mock := setupFerramentaStore(t)

	rows := sqlmock.NewRows(append(append([]string{}, colunasFerramentaMock...), "total_emprestimos")).
		AddRow(4, "Serra", "5", "Serras", "P4", true, "", "", "", "", 1, time.Now(), 12).
		AddRow(2, "Trena", "4", "", "P2", false, "", "", "", "", 1, time.Now(), 3)
	mock.ExpectQuery(`ORDER BY total_emprestimos DESC`).WithArgs(6).WillReturnRows(rows)

	uso, err := s.MaisUtilizadas(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, uso, 2)
	assert.Equal(t, "Serra", uso[0].Nome)
	assert.Equal(t, 12, uso[0].TotalEmprestimos)
	require.NoError(t, mock.ExpectationsWereMet())
}
