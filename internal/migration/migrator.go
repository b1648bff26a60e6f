// Package migration aplica as migrações versionadas do PostgreSQL.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/migration/schemas"
)

const criarControle = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(20) PRIMARY KEY,
	aplicada_em TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Status descreve o estado de uma versão
type Status struct {
	Versao     string     `json:"versao" db:"version"`
	Descricao  string     `json:"descricao" db:"-"`
	Aplicada   bool       `json:"aplicada" db:"-"`
	AplicadaEm *time.Time `json:"aplicada_em,omitempty" db:"aplicada_em"`
}

type Migrator struct {
	db       *sqlx.DB
	registry *schemas.Registry
	logger   *zap.Logger
}

func NewMigrator(db *sqlx.DB, registry *schemas.Registry, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, registry: registry, logger: logger}
}

// Up aplica as migrações pendentes, cada uma na sua transação
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	aplicadas, err := m.aplicadas(ctx)
	if err != nil {
		return nil, err
	}

	var feitas []string
	for _, mig := range m.registry.Pendentes(aplicadas) {
		if err := m.aplicar(ctx, mig); err != nil {
			return feitas, fmt.Errorf("erro ao aplicar migração %s: %w", mig.Versao, err)
		}
		m.logger.Info("migração aplicada", zap.String("versao", mig.Versao), zap.String("descricao", mig.Descricao))
		feitas = append(feitas, mig.Versao)
	}
	return feitas, nil
}

// Status lista todas as versões registradas e se já foram aplicadas
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	if _, err := m.db.ExecContext(ctx, criarControle); err != nil {
		return nil, err
	}

	var linhas []Status
	if err := m.db.SelectContext(ctx, &linhas, `SELECT version, aplicada_em FROM schema_migrations`); err != nil {
		return nil, err
	}
	porVersao := make(map[string]Status, len(linhas))
	for _, l := range linhas {
		porVersao[l.Versao] = l
	}

	out := make([]Status, 0)
	for _, v := range m.registry.ListVersions() {
		mig, _ := m.registry.Get(v)
		s := Status{Versao: v, Descricao: mig.Descricao}
		if l, ok := porVersao[v]; ok {
			s.Aplicada = true
			s.AplicadaEm = l.AplicadaEm
		}
		out = append(out, s)
	}
	return out, nil
}

// Pendentes conta as versões registradas que ainda não foram aplicadas
func (m *Migrator) Pendentes(ctx context.Context) (int, error) {
	aplicadas, err := m.aplicadas(ctx)
	if err != nil {
		return 0, err
	}
	return len(m.registry.Pendentes(aplicadas)), nil
}

func (m *Migrator) aplicadas(ctx context.Context) (map[string]bool, error) {
	if _, err := m.db.ExecContext(ctx, criarControle); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela de controle: %w", err)
	}

	var versoes []string
	if err := m.db.SelectContext(ctx, &versoes, `SELECT version FROM schema_migrations`); err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(versoes))
	for _, v := range versoes {
		out[v] = true
	}
	return out, nil
}

func (m *Migrator) aplicar(ctx context.Context, mig *schemas.Migracao) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Versao); err != nil {
		return err
	}
	return tx.Commit()
}
