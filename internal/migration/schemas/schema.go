package schemas

import (
	"fmt"
	"sort"
	"sync"
)

// Migracao é um passo versionado do schema do PostgreSQL
type Migracao struct {
	Versao    string
	Descricao string
	SQL       string
}

// Registry mantém o registro de migrações versionadas
type Registry struct {
	mu        sync.RWMutex
	migracoes map[string]*Migracao
}

// NewRegistry cria um novo registro com as migrações embutidas
func NewRegistry() *Registry {
	r := &Registry{
		migracoes: make(map[string]*Migracao),
	}

	r.registerBuiltinMigrations()

	return r
}

// registerBuiltinMigrations registra as migrações disponíveis (REGISTRAR AQUI AS NOVAS MIGRAÇÕES)
func (r *Registry) registerBuiltinMigrations() {
	r.Register(MigracaoV1())
	r.Register(MigracaoV2())
}

// Register registra uma nova migração
func (r *Registry) Register(m *Migracao) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.migracoes[m.Versao] = m
}

// Get retorna uma migração por versão
func (r *Registry) Get(versao string) (*Migracao, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.migracoes[versao]
	if !exists {
		return nil, fmt.Errorf("migração versão '%s' não encontrada", versao)
	}

	return m, nil
}

// CurrentVersion retorna a versão mais recente registrada
func (r *Registry) CurrentVersion() string {
	versoes := r.ListVersions()
	if len(versoes) == 0 {
		return ""
	}
	return versoes[len(versoes)-1]
}

// ListVersions retorna as versões em ordem de aplicação
func (r *Registry) ListVersions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versoes := make([]string, 0, len(r.migracoes))
	for v := range r.migracoes {
		versoes = append(versoes, v)
	}
	sort.Slice(versoes, func(i, j int) bool {
		if len(versoes[i]) != len(versoes[j]) {
			return len(versoes[i]) < len(versoes[j])
		}
		return versoes[i] < versoes[j]
	})

	return versoes
}

// Pendentes retorna as migrações ainda não aplicadas, em ordem
func (r *Registry) Pendentes(aplicadas map[string]bool) []*Migracao {
	var out []*Migracao
	for _, v := range r.ListVersions() {
		if aplicadas[v] {
			continue
		}
		m, _ := r.Get(v)
		out = append(out, m)
	}
	return out
}

// BoolPtr retorna um ponteiro para bool
func BoolPtr(b bool) *bool {
	return &b
}

// StringPtr retorna um ponteiro para string
func StringPtr(s string) *string {
	return &s
}
