package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/agrupamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/cache"
	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
)

// tentativasGrupo é quantas vezes o empréstimo por grupo procura outra
// unidade quando a escolhida é retirada por outra pessoa no meio do caminho
const tentativasGrupo = 3

// EmprestimoService registra retiradas e devoluções
type EmprestimoService struct {
	ferramentas store.Ferramentas
	emprestimos store.Emprestimos
	indice      IndiceBusca
	cache       cache.Cache
	catalogo    constants.Catalogo
	logger      *zap.Logger
	limite      int
}

func NewEmprestimoService(st *store.Storage, indice IndiceBusca, c cache.Cache, logger *zap.Logger) *EmprestimoService {
	return &EmprestimoService{
		ferramentas: st.Ferramentas,
		emprestimos: st.Emprestimos,
		indice:      indice,
		cache:       c,
		catalogo:    constants.CategoriasPadrao,
		logger:      logger,
		limite:      ConcorrenciaLote,
	}
}

// Registrar empresta uma unidade ao usuário. Quando o pedido traz o grupo,
// a primeira unidade disponível do grupo é escolhida.
func (s *EmprestimoService) Registrar(ctx context.Context, req models.EmprestimoRequest, usuarioID int64) (*models.Emprestimo, error) {
	if req.FerramentaID != 0 {
		return s.registrarUnidade(ctx, req.FerramentaID, usuarioID, req.LocalEmprestimo)
	}

	ref, err := buscarFerramenta(ctx, s.ferramentas, req.GrupoFerramentaID)
	if err != nil {
		return nil, err
	}

	for tentativa := 0; tentativa < tentativasGrupo; tentativa++ {
		grupo, err := carregarGrupo(ctx, s.ferramentas, s.catalogo, ref.Nome, ref.CategoriaID)
		if err != nil {
			return nil, err
		}
		escolhida := agrupamento.BuscarDisponivel(grupo)
		if escolhida == nil {
			return nil, ErrSemUnidadeDisponivel
		}

		e, err := s.registrarUnidade(ctx, escolhida.ID, usuarioID, req.LocalEmprestimo)
		if errors.Is(err, ErrFerramentaIndisponivel) {
			s.logger.Debug("unidade retirada por outro usuário, tentando outra",
				zap.Int64("ferramenta_id", escolhida.ID),
				zap.Int("tentativa", tentativa+1),
			)
			continue
		}
		return e, err
	}
	return nil, ErrSemUnidadeDisponivel
}

func (s *EmprestimoService) registrarUnidade(ctx context.Context, ferramentaID, usuarioID int64, local string) (*models.Emprestimo, error) {
	e := &models.Emprestimo{
		FerramentaID:    ferramentaID,
		UsuarioID:       usuarioID,
		LocalEmprestimo: local,
	}
	if err := s.emprestimos.Registrar(ctx, e); err != nil {
		switch {
		case errors.Is(err, store.ErrIndisponivel):
			return nil, ErrFerramentaIndisponivel
		case errors.Is(err, store.ErrNaoEncontrado):
			return nil, ErrFerramentaNaoEncontrada
		}
		return nil, fmt.Errorf("erro ao registrar empréstimo: %w", err)
	}

	s.sincronizarIndice(ctx, ferramentaID)
	invalidar(ctx, s.cache, s.logger)
	return e, nil
}

// RegistrarDevolucao fecha o empréstimo do próprio usuário
func (s *EmprestimoService) RegistrarDevolucao(ctx context.Context, emprestimoID int64, req models.DevolucaoRequest, usuarioID int64) (*models.Emprestimo, error) {
	e, err := s.devolver(ctx, emprestimoID, usuarioID, req.LocalDevolucao)
	if err != nil {
		return nil, err
	}
	invalidar(ctx, s.cache, s.logger)
	return e, nil
}

func (s *EmprestimoService) devolver(ctx context.Context, emprestimoID, usuarioID int64, local string) (*models.Emprestimo, error) {
	e, err := s.emprestimos.Devolver(ctx, emprestimoID, usuarioID, local)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNaoEncontrado):
			return nil, ErrEmprestimoNaoEncontrado
		case errors.Is(err, store.ErrNaoResponsavel):
			return nil, ErrNaoResponsavel
		case errors.Is(err, store.ErrJaDevolvido):
			return nil, ErrEmprestimoJaDevolvido
		}
		return nil, fmt.Errorf("erro ao registrar devolução: %w", err)
	}

	s.logger.Info("devolução registrada",
		zap.Int64("emprestimo_id", e.ID),
		zap.Int64("ferramenta_id", e.FerramentaID),
		zap.Int64("usuario_id", usuarioID),
	)
	s.sincronizarIndice(ctx, e.FerramentaID)
	return e, nil
}

// BuscarAberto retorna o empréstimo em aberto da unidade, com o nome de quem
// a retirou, ou nil se ela estiver livre
func (s *EmprestimoService) BuscarAberto(ctx context.Context, ferramentaID int64) (*models.Emprestimo, error) {
	e, err := s.emprestimos.UltimoPorFerramenta(ctx, ferramentaID)
	if errors.Is(err, store.ErrNaoEncontrado) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar empréstimo: %w", err)
	}
	if !e.Aberto() {
		return nil, nil
	}
	return e, nil
}

// MeusEmprestimos lista os empréstimos em aberto do usuário
func (s *EmprestimoService) MeusEmprestimos(ctx context.Context, usuarioID int64) ([]models.EmprestimoDetalhado, error) {
	abertos, err := s.emprestimos.AbertosPorUsuario(ctx, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar empréstimos: %w", err)
	}
	return abertos, nil
}

// DecidirDevolucaoGrupo monta o plano de devolução das unidades emprestadas
// do grupo. Só entram as unidades retiradas pelo próprio usuário; as demais
// emprestadas ficam em Bloqueadas.
func DecidirDevolucaoGrupo(grupo *models.GrupoFerramentas, abertos []models.EmprestimoDetalhado, usuarioID int64) models.Plano {
	plano := models.Plano{
		Acao:      models.AcaoDevolverGrupo,
		Afetadas:  []int64{},
		UsuarioID: usuarioID,
	}

	doUsuario := make(map[int64]int64, len(abertos))
	for _, e := range abertos {
		if e.UsuarioID == usuarioID && e.Aberto() {
			doUsuario[e.FerramentaID] = e.ID
		}
	}

	for _, f := range agrupamento.ObterEmprestadas(grupo) {
		if emprestimoID, ok := doUsuario[f.ID]; ok {
			plano.Afetadas = append(plano.Afetadas, f.ID)
			plano.Emprestimos = append(plano.Emprestimos, emprestimoID)
		} else {
			plano.Bloqueadas = append(plano.Bloqueadas, f.ID)
		}
	}
	if grupo != nil && len(grupo.Ferramentas) > 0 {
		plano.ReferenciaID = grupo.Ferramentas[0].ID
	}

	switch {
	case len(plano.Afetadas) == 0 && len(plano.Bloqueadas) == 0:
		plano.Acao = models.AcaoNenhuma
		plano.Mensagem = "Nenhuma unidade deste grupo está emprestada."
	case len(plano.Afetadas) == 0:
		plano.Acao = models.AcaoNenhuma
		plano.Mensagem = "As unidades emprestadas deste grupo estão com outros usuários."
	case len(plano.Bloqueadas) > 0:
		plano.Mensagem = fmt.Sprintf("%d unidade(s) serão devolvidas. %d estão com outros usuários.",
			len(plano.Afetadas), len(plano.Bloqueadas))
	default:
		plano.Mensagem = fmt.Sprintf("%d unidade(s) serão devolvidas.", len(plano.Afetadas))
	}
	return plano
}

// PlanejarDevolucaoGrupo carrega o grupo da unidade e os empréstimos do
// usuário e decide o que será devolvido
func (s *EmprestimoService) PlanejarDevolucaoGrupo(ctx context.Context, ferramentaID, usuarioID int64) (models.Plano, error) {
	ref, err := buscarFerramenta(ctx, s.ferramentas, ferramentaID)
	if err != nil {
		return models.Plano{}, err
	}
	grupo, err := carregarGrupo(ctx, s.ferramentas, s.catalogo, ref.Nome, ref.CategoriaID)
	if err != nil {
		return models.Plano{}, err
	}
	abertos, err := s.MeusEmprestimos(ctx, usuarioID)
	if err != nil {
		return models.Plano{}, err
	}

	plano := DecidirDevolucaoGrupo(grupo, abertos, usuarioID)
	plano.ReferenciaID = ref.ID
	return plano, nil
}

// ExecutarDevolucaoGrupo devolve os empréstimos do plano. Todas as devoluções
// terminam antes do grupo ser recalculado; falhas individuais são contadas.
func (s *EmprestimoService) ExecutarDevolucaoGrupo(ctx context.Context, plano models.Plano, conf models.Confirmacao, local string) (*models.ResumoLote, error) {
	if !conf.Confirmado {
		return nil, ErrConfirmacaoNecessaria
	}
	if !plano.Executavel() {
		return &models.ResumoLote{}, nil
	}

	resumo := executarLote(ctx, plano.Emprestimos, s.limite, func(ctx context.Context, id int64) error {
		_, err := s.devolver(ctx, id, plano.UsuarioID, local)
		return err
	})

	s.logger.Info("devolução em grupo concluída",
		zap.Int64("usuario_id", plano.UsuarioID),
		zap.Int("sucessos", resumo.Sucessos),
		zap.Int("falhas", resumo.Falhas),
	)
	if resumo.Sucessos > 0 {
		invalidar(ctx, s.cache, s.logger)
	}

	if plano.ReferenciaID != 0 {
		if ref, err := buscarFerramenta(ctx, s.ferramentas, plano.ReferenciaID); err == nil {
			grupo, err := carregarGrupo(ctx, s.ferramentas, s.catalogo, ref.Nome, ref.CategoriaID)
			if err != nil {
				s.logger.Warn("falha ao recarregar grupo após devolução", zap.Error(err))
			}
			resumo.Grupo = grupo
		}
	}
	return &resumo, nil
}

// sincronizarIndice atualiza a disponibilidade da unidade no índice de busca
func (s *EmprestimoService) sincronizarIndice(ctx context.Context, ferramentaID int64) {
	if s.indice == nil {
		return
	}
	f, err := s.ferramentas.BuscarPorID(ctx, ferramentaID)
	if err != nil {
		s.logger.Warn("falha ao recarregar ferramenta para o índice", zap.Int64("ferramenta_id", ferramentaID), zap.Error(err))
		return
	}
	if err := s.indice.Indexar(ctx, *f); err != nil {
		s.logger.Warn("falha ao atualizar índice", zap.Int64("ferramenta_id", ferramentaID), zap.Error(err))
	}
}
