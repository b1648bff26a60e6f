package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/prefeitura-rio/app-ferramentas/internal/cache"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
)

// bancoMemoria guarda unidades, empréstimos e usuários para os testes
type bancoMemoria struct {
	mu          sync.Mutex
	ferramentas map[int64]models.Ferramenta
	emprestimos map[int64]models.Emprestimo
	usuarios    map[int64]models.Usuario
	proximoID   int64
	agora       time.Time

	// falhaExclusao força erro na exclusão destas unidades
	falhaExclusao map[int64]error
}

func novoBanco() *bancoMemoria {
	return &bancoMemoria{
		ferramentas:   map[int64]models.Ferramenta{},
		emprestimos:   map[int64]models.Emprestimo{},
		usuarios:      map[int64]models.Usuario{},
		proximoID:     100,
		agora:         time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		falhaExclusao: map[int64]error{},
	}
}

func (b *bancoMemoria) storage() *store.Storage {
	return &store.Storage{
		Ferramentas: &ferramentasFake{b},
		Emprestimos: &emprestimosFake{b},
		Usuarios:    &usuariosFake{b},
	}
}

func (b *bancoMemoria) novoID() int64 {
	b.proximoID++
	return b.proximoID
}

func (b *bancoMemoria) addFerramenta(f models.Ferramenta) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ferramentas[f.ID] = f
}

func (b *bancoMemoria) addEmprestimo(e models.Emprestimo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emprestimos[e.ID] = e
	if e.Aberto() {
		f := b.ferramentas[e.FerramentaID]
		f.Disponivel = false
		b.ferramentas[e.FerramentaID] = f
	}
}

func (b *bancoMemoria) ordenadas(filtro func(models.Ferramenta) bool) []models.Ferramenta {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Ferramenta{}
	for _, f := range b.ferramentas {
		if filtro == nil || filtro(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type ferramentasFake struct{ b *bancoMemoria }

func (s *ferramentasFake) Listar(context.Context) ([]models.Ferramenta, error) {
	return s.b.ordenadas(nil), nil
}

func (s *ferramentasFake) ListarPorCategoria(_ context.Context, categoriaID string) ([]models.Ferramenta, error) {
	return s.b.ordenadas(func(f models.Ferramenta) bool { return f.CategoriaID == categoriaID }), nil
}

func (s *ferramentasFake) ListarPorNomeCategoria(_ context.Context, nome, categoriaID string) ([]models.Ferramenta, error) {
	return s.b.ordenadas(func(f models.Ferramenta) bool { return f.Nome == nome && f.CategoriaID == categoriaID }), nil
}

func (s *ferramentasFake) ListarPorIDs(_ context.Context, ids []int64) ([]models.Ferramenta, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	out := []models.Ferramenta{}
	for _, id := range ids {
		if f, ok := s.b.ferramentas[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *ferramentasFake) BuscarTexto(_ context.Context, termo, categoriaID string) ([]models.Ferramenta, error) {
	termo = strings.ToLower(termo)
	return s.b.ordenadas(func(f models.Ferramenta) bool {
		if categoriaID != "" && f.CategoriaID != categoriaID {
			return false
		}
		for _, campo := range []string{f.Nome, f.Patrimonio, f.Local, f.Detalhes} {
			if strings.Contains(strings.ToLower(campo), termo) {
				return true
			}
		}
		return false
	}), nil
}

func (s *ferramentasFake) BuscarPorID(_ context.Context, id int64) (*models.Ferramenta, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	f, ok := s.b.ferramentas[id]
	if !ok {
		return nil, store.ErrNaoEncontrado
	}
	return &f, nil
}

func (s *ferramentasFake) buscarPor(cond func(models.Ferramenta) bool) (*models.Ferramenta, error) {
	achadas := s.b.ordenadas(cond)
	if len(achadas) == 0 {
		return nil, store.ErrNaoEncontrado
	}
	return &achadas[0], nil
}

func (s *ferramentasFake) BuscarPorPatrimonio(_ context.Context, patrimonio string) (*models.Ferramenta, error) {
	return s.buscarPor(func(f models.Ferramenta) bool { return f.Patrimonio == patrimonio })
}

func (s *ferramentasFake) BuscarPorQRCode(_ context.Context, payload string) (*models.Ferramenta, error) {
	return s.buscarPor(func(f models.Ferramenta) bool { return f.QRCodeURL != "" && f.QRCodeURL == payload })
}

func (s *ferramentasFake) inserir(f *models.Ferramenta) error {
	for _, existente := range s.b.ferramentas {
		if existente.Patrimonio == f.Patrimonio {
			return store.ErrDuplicado
		}
	}
	f.ID = s.b.novoID()
	f.DataCriacao = s.b.agora
	s.b.ferramentas[f.ID] = *f
	return nil
}

func (s *ferramentasFake) Inserir(_ context.Context, f *models.Ferramenta) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return s.inserir(f)
}

func (s *ferramentasFake) InserirLote(_ context.Context, ferramentas []models.Ferramenta) ([]models.Ferramenta, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	out := make([]models.Ferramenta, len(ferramentas))
	copy(out, ferramentas)
	for i := range out {
		if err := s.inserir(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *ferramentasFake) Atualizar(_ context.Context, f *models.Ferramenta) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if _, ok := s.b.ferramentas[f.ID]; !ok {
		return store.ErrNaoEncontrado
	}
	s.b.ferramentas[f.ID] = *f
	return nil
}

func (s *ferramentasFake) AtualizarQRCode(_ context.Context, id int64, url string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	f, ok := s.b.ferramentas[id]
	if !ok {
		return store.ErrNaoEncontrado
	}
	f.QRCodeURL = url
	s.b.ferramentas[id] = f
	return nil
}

func (s *ferramentasFake) Excluir(_ context.Context, id int64) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if err := s.b.falhaExclusao[id]; err != nil {
		return err
	}
	f, ok := s.b.ferramentas[id]
	if !ok {
		return store.ErrNaoEncontrado
	}
	if !f.Disponivel {
		return store.ErrEmUso
	}
	delete(s.b.ferramentas, id)
	return nil
}

func (s *ferramentasFake) MaisUtilizadas(_ context.Context, limite int) ([]models.FerramentaUso, error) {
	s.b.mu.Lock()
	contagem := map[int64]int{}
	for _, e := range s.b.emprestimos {
		contagem[e.FerramentaID]++
	}
	s.b.mu.Unlock()

	out := []models.FerramentaUso{}
	for _, f := range s.b.ordenadas(nil) {
		if n := contagem[f.ID]; n > 0 {
			out = append(out, models.FerramentaUso{Ferramenta: f, TotalEmprestimos: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalEmprestimos > out[j].TotalEmprestimos })
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

type emprestimosFake struct{ b *bancoMemoria }

func (s *emprestimosFake) Registrar(_ context.Context, e *models.Emprestimo) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	f, ok := s.b.ferramentas[e.FerramentaID]
	if !ok {
		return store.ErrNaoEncontrado
	}
	if !f.Disponivel {
		return store.ErrIndisponivel
	}
	f.Disponivel = false
	s.b.ferramentas[f.ID] = f

	e.ID = s.b.novoID()
	e.Status = models.StatusEmprestado
	e.DataEmprestimo = s.b.agora
	s.b.emprestimos[e.ID] = *e
	return nil
}

func (s *emprestimosFake) Devolver(_ context.Context, id, usuarioID int64, local string) (*models.Emprestimo, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	e, ok := s.b.emprestimos[id]
	if !ok {
		return nil, store.ErrNaoEncontrado
	}
	if e.UsuarioID != usuarioID {
		return nil, store.ErrNaoResponsavel
	}
	if !e.Aberto() {
		return nil, store.ErrJaDevolvido
	}
	agora := s.b.agora
	e.DataDevolucao = &agora
	e.Status = models.StatusDevolvido
	e.LocalDevolucao = local
	s.b.emprestimos[id] = e

	f := s.b.ferramentas[e.FerramentaID]
	f.Disponivel = true
	s.b.ferramentas[f.ID] = f
	return &e, nil
}

func (s *emprestimosFake) BuscarPorID(_ context.Context, id int64) (*models.Emprestimo, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	e, ok := s.b.emprestimos[id]
	if !ok {
		return nil, store.ErrNaoEncontrado
	}
	return &e, nil
}

func (s *emprestimosFake) todos() []models.Emprestimo {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	out := []models.Emprestimo{}
	for _, e := range s.b.emprestimos {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DataEmprestimo.Equal(out[j].DataEmprestimo) {
			return out[i].DataEmprestimo.After(out[j].DataEmprestimo)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *emprestimosFake) UltimoPorFerramenta(_ context.Context, ferramentaID int64) (*models.Emprestimo, error) {
	for _, e := range s.todos() {
		if e.FerramentaID == ferramentaID {
			s.b.mu.Lock()
			e.UsuarioNome = s.b.usuarios[e.UsuarioID].Nome
			s.b.mu.Unlock()
			return &e, nil
		}
	}
	return nil, store.ErrNaoEncontrado
}

func (s *emprestimosFake) AbertosPorUsuario(_ context.Context, usuarioID int64) ([]models.EmprestimoDetalhado, error) {
	out := []models.EmprestimoDetalhado{}
	for _, e := range s.todos() {
		if e.UsuarioID == usuarioID && e.Aberto() {
			s.b.mu.Lock()
			f := s.b.ferramentas[e.FerramentaID]
			s.b.mu.Unlock()
			out = append(out, models.EmprestimoDetalhado{Emprestimo: e, Ferramenta: f})
		}
	}
	return out, nil
}

func (s *emprestimosFake) Recentes(_ context.Context, limite int) ([]models.Emprestimo, error) {
	out := s.todos()
	if len(out) > limite {
		out = out[:limite]
	}
	return out, nil
}

type usuariosFake struct{ b *bancoMemoria }

func (s *usuariosFake) Criar(_ context.Context, u *models.Usuario) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for _, existente := range s.b.usuarios {
		if existente.Nome == u.Nome {
			return store.ErrDuplicado
		}
	}
	u.ID = s.b.novoID()
	u.DataCriacao = s.b.agora
	s.b.usuarios[u.ID] = *u
	return nil
}

func (s *usuariosFake) BuscarPorID(_ context.Context, id int64) (*models.Usuario, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	u, ok := s.b.usuarios[id]
	if !ok {
		return nil, store.ErrNaoEncontrado
	}
	return &u, nil
}

func (s *usuariosFake) BuscarPorNome(_ context.Context, nome string) (*models.Usuario, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	for _, u := range s.b.usuarios {
		if u.Nome == nome {
			return &u, nil
		}
	}
	return nil, store.ErrNaoEncontrado
}

func (s *usuariosFake) Atualizar(_ context.Context, u *models.Usuario) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if _, ok := s.b.usuarios[u.ID]; !ok {
		return store.ErrNaoEncontrado
	}
	s.b.usuarios[u.ID] = *u
	return nil
}

func (s *usuariosFake) AtualizarSenha(_ context.Context, id int64, hash string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	u, ok := s.b.usuarios[id]
	if !ok {
		return store.ErrNaoEncontrado
	}
	u.Senha = hash
	s.b.usuarios[id] = u
	return nil
}

func (s *usuariosFake) NomesPorIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	out := map[int64]string{}
	for _, id := range ids {
		if u, ok := s.b.usuarios[id]; ok {
			out[id] = u.Nome
		}
	}
	return out, nil
}

// indiceFake registra as chamadas ao índice de busca
type indiceFake struct {
	mu         sync.Mutex
	indexadas  map[int64]models.Ferramenta
	removidas  []int64
	resultado  []int64
	falhaBusca error
}

func novoIndice() *indiceFake {
	return &indiceFake{indexadas: map[int64]models.Ferramenta{}}
}

func (i *indiceFake) Indexar(_ context.Context, f models.Ferramenta) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.indexadas[f.ID] = f
	return nil
}

func (i *indiceFake) Remover(_ context.Context, id int64) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.removidas = append(i.removidas, id)
	return nil
}

func (i *indiceFake) Buscar(context.Context, string, string) ([]int64, error) {
	return i.resultado, i.falhaBusca
}

type imagensFake struct {
	nome, contentType string
}

func (i *imagensFake) Enviar(_ context.Context, nome string, _ []byte, contentType string) (string, error) {
	i.nome, i.contentType = nome, contentType
	return "https://storage.local/" + nome, nil
}

type geradorFake struct {
	resposta string
	err      error
	schema   *genai.Schema
	prompt   string
}

func (g *geradorFake) GerarJSON(_ context.Context, _ []byte, _ string, prompt string, schema *genai.Schema) (string, error) {
	g.prompt, g.schema = prompt, schema
	return g.resposta, g.err
}

func novoFerramentaService(b *bancoMemoria, indice IndiceBusca) (*FerramentaService, *cache.MemoryCache) {
	c := cache.NewMemoryCache(10)
	s := NewFerramentaService(b.storage(), indice, &imagensFake{}, c, zap.NewNop())
	s.agora = func() time.Time { return b.agora }
	return s, c
}

func novoEmprestimoService(b *bancoMemoria, indice IndiceBusca) (*EmprestimoService, *cache.MemoryCache) {
	c := cache.NewMemoryCache(10)
	return NewEmprestimoService(b.storage(), indice, c, zap.NewNop()), c
}

func unidade(id int64, nome, categoria string, disponivel bool) models.Ferramenta {
	return models.Ferramenta{
		ID:          id,
		Nome:        nome,
		CategoriaID: categoria,
		Patrimonio:  fmt.Sprintf("PAT-%d", id),
		Disponivel:  disponivel,
		Local:       "Almoxarifado",
	}
}
