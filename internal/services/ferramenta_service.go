package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/agrupamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/armazenamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/cache"
	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/qrcode"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
	"github.com/prefeitura-rio/app-ferramentas/internal/utils"
)

const (
	// LimitePadraoMaisUtilizadas é o tamanho da vitrine da tela inicial
	LimitePadraoMaisUtilizadas = 6
	limiteMaximoMaisUtilizadas = 50
	ttlMaisUtilizadas          = 5 * time.Minute

	maxUnidadesSemPatrimonio = 100
	sufixosSemPatrimonio     = 10000
)

// FerramentaService cuida do cadastro e da consulta das unidades
type FerramentaService struct {
	ferramentas store.Ferramentas
	indice      IndiceBusca
	imagens     ArmazenamentoImagens
	cache       cache.Cache
	catalogo    constants.Catalogo
	logger      *zap.Logger

	agora     func() time.Time
	aleatorio func(n int) int
	limite    int
}

// NewFerramentaService cria o serviço. indice pode ser nil quando a busca
// textual não estiver configurada.
func NewFerramentaService(st *store.Storage, indice IndiceBusca, imagens ArmazenamentoImagens, c cache.Cache, logger *zap.Logger) *FerramentaService {
	return &FerramentaService{
		ferramentas: st.Ferramentas,
		indice:      indice,
		imagens:     imagens,
		cache:       c,
		catalogo:    constants.CategoriasPadrao,
		logger:      logger,
		agora:       time.Now,
		aleatorio:   rand.Intn,
		limite:      ConcorrenciaLote,
	}
}

// Catalogo retorna as categorias conhecidas
func (s *FerramentaService) Catalogo() constants.Catalogo {
	return s.catalogo
}

// Listar retorna as unidades, opcionalmente de uma categoria
func (s *FerramentaService) Listar(ctx context.Context, categoriaID string) ([]models.Ferramenta, error) {
	var (
		ferramentas []models.Ferramenta
		err         error
	)
	if categoriaID != "" {
		ferramentas, err = s.ferramentas.ListarPorCategoria(ctx, categoriaID)
	} else {
		ferramentas, err = s.ferramentas.Listar(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ferramentas: %w", err)
	}
	return ferramentas, nil
}

// ListarGrupos retorna as unidades agrupadas por nome e categoria
func (s *FerramentaService) ListarGrupos(ctx context.Context, filtro models.FiltroFerramentas) ([]models.GrupoFerramentas, error) {
	var (
		ferramentas []models.Ferramenta
		err         error
	)
	if termo := strings.TrimSpace(filtro.Busca); termo != "" {
		ferramentas, err = s.buscarTexto(ctx, termo, filtro.CategoriaID)
	} else {
		ferramentas, err = s.Listar(ctx, filtro.CategoriaID)
	}
	if err != nil {
		return nil, err
	}
	return agrupamento.AgruparComCatalogo(ferramentas, s.catalogo), nil
}

// buscarTexto usa o índice quando disponível e cai para a busca no banco se ele falhar
func (s *FerramentaService) buscarTexto(ctx context.Context, termo, categoriaID string) ([]models.Ferramenta, error) {
	if s.indice != nil {
		ids, err := s.indice.Buscar(ctx, termo, categoriaID)
		if err == nil {
			ferramentas, err := s.ferramentas.ListarPorIDs(ctx, ids)
			if err != nil {
				return nil, fmt.Errorf("erro ao carregar resultado da busca: %w", err)
			}
			return ferramentas, nil
		}
		s.logger.Warn("índice de busca indisponível, usando o banco", zap.String("termo", termo), zap.Error(err))
	}

	ferramentas, err := s.ferramentas.BuscarTexto(ctx, termo, categoriaID)
	if err != nil {
		return nil, fmt.Errorf("erro na busca: %w", err)
	}
	return ferramentas, nil
}

// BuscarPorID retorna uma unidade
func (s *FerramentaService) BuscarPorID(ctx context.Context, id int64) (*models.Ferramenta, error) {
	return buscarFerramenta(ctx, s.ferramentas, id)
}

// BuscarGrupo retorna o grupo da unidade e a unidade a ser usada na próxima
// ação: a primeira disponível ou, se não houver, a própria unidade consultada.
func (s *FerramentaService) BuscarGrupo(ctx context.Context, id int64) (*models.GrupoDetalhe, error) {
	f, err := s.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	grupo, err := carregarGrupo(ctx, s.ferramentas, s.catalogo, f.Nome, f.CategoriaID)
	if err != nil {
		return nil, err
	}
	if grupo == nil {
		return nil, ErrFerramentaNaoEncontrada
	}

	selecionada := *f
	if disponivel := agrupamento.BuscarDisponivel(grupo); disponivel != nil {
		selecionada = *disponivel
	}

	return &models.GrupoDetalhe{
		Grupo:        *grupo,
		Selecionada:  selecionada,
		DetalhesHTML: utils.MarkdownParaHTML(grupo.Detalhes),
	}, nil
}

// Criar cadastra uma unidade com patrimônio
func (s *FerramentaService) Criar(ctx context.Context, req models.FerramentaRequest, usuarioID int64) (*models.Ferramenta, error) {
	if !s.catalogo.Valida(req.CategoriaID) {
		return nil, ErrCategoriaInvalida
	}
	patrimonio := strings.TrimSpace(req.Patrimonio)

	f := &models.Ferramenta{
		Nome:          strings.TrimSpace(req.Nome),
		CategoriaID:   req.CategoriaID,
		CategoriaNome: s.catalogo.Nome(req.CategoriaID),
		Patrimonio:    patrimonio,
		Disponivel:    true,
		ImagemURL:     req.ImagemURL,
		Detalhes:      req.Detalhes,
		Local:         req.Local,
		QRCodeURL:     qrcode.GerarPayload(patrimonio, s.agora(), 0),
		AdicionadoPor: usuarioID,
	}

	if err := s.ferramentas.Inserir(ctx, f); err != nil {
		if errors.Is(err, store.ErrDuplicado) {
			return nil, ErrPatrimonioDuplicado
		}
		return nil, fmt.Errorf("erro ao cadastrar ferramenta: %w", err)
	}

	s.logger.Info("ferramenta cadastrada",
		zap.Int64("ferramenta_id", f.ID),
		zap.String("patrimonio", f.Patrimonio),
		zap.Int64("usuario_id", usuarioID),
	)
	s.indexar(ctx, *f)
	s.invalidarCache(ctx)
	return f, nil
}

// CriarSemPatrimonio cadastra várias unidades idênticas, cada uma com uma
// etiqueta gerada e um QR code próprio
func (s *FerramentaService) CriarSemPatrimonio(ctx context.Context, req models.FerramentaSemPatrimonioRequest, usuarioID int64) ([]models.Ferramenta, error) {
	if req.Quantidade < 1 || req.Quantidade > maxUnidadesSemPatrimonio {
		return nil, ErrQuantidadeInvalida
	}
	if !s.catalogo.Valida(req.CategoriaID) {
		return nil, ErrCategoriaInvalida
	}

	instante := s.agora()
	etiquetas := s.etiquetasSemPatrimonio(instante, req.Quantidade)

	novas := make([]models.Ferramenta, 0, req.Quantidade)
	for i, patrimonio := range etiquetas {
		novas = append(novas, models.Ferramenta{
			Nome:          strings.TrimSpace(req.Nome),
			CategoriaID:   req.CategoriaID,
			CategoriaNome: s.catalogo.Nome(req.CategoriaID),
			Patrimonio:    patrimonio,
			Disponivel:    true,
			ImagemURL:     req.ImagemURL,
			Detalhes:      req.Detalhes,
			Local:         req.Local,
			QRCodeURL:     qrcode.GerarPayload(patrimonio, instante, i),
			AdicionadoPor: usuarioID,
		})
	}

	criadas, err := s.ferramentas.InserirLote(ctx, novas)
	if err != nil {
		if errors.Is(err, store.ErrDuplicado) {
			return nil, ErrPatrimonioDuplicado
		}
		return nil, fmt.Errorf("erro ao cadastrar ferramentas: %w", err)
	}

	s.logger.Info("ferramentas sem patrimônio cadastradas",
		zap.String("nome", req.Nome),
		zap.Int("quantidade", len(criadas)),
		zap.Int64("usuario_id", usuarioID),
	)
	for _, f := range criadas {
		s.indexar(ctx, f)
	}
	s.invalidarCache(ctx)
	return criadas, nil
}

// etiquetasSemPatrimonio gera "SEM PATRIMONIO-{ms}-{n}" sem repetir n no lote
func (s *FerramentaService) etiquetasSemPatrimonio(instante time.Time, quantidade int) []string {
	usados := make(map[int]bool, quantidade)
	etiquetas := make([]string, 0, quantidade)
	for len(etiquetas) < quantidade {
		n := s.aleatorio(sufixosSemPatrimonio)
		if usados[n] {
			continue
		}
		usados[n] = true
		etiquetas = append(etiquetas, fmt.Sprintf("%s-%d-%d", agrupamento.PrefixoSemPatrimonio, instante.UnixMilli(), n))
	}
	return etiquetas
}

// Atualizar altera os campos editáveis de uma unidade
func (s *FerramentaService) Atualizar(ctx context.Context, id int64, req models.AtualizarFerramentaRequest) (*models.Ferramenta, error) {
	f, err := s.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoriaID != "" {
		if !s.catalogo.Valida(req.CategoriaID) {
			return nil, ErrCategoriaInvalida
		}
		f.CategoriaID = req.CategoriaID
		f.CategoriaNome = s.catalogo.Nome(req.CategoriaID)
	}

	f.Nome = strings.TrimSpace(req.Nome)
	f.Local = req.Local
	f.Detalhes = req.Detalhes
	if req.ImagemURL != "" {
		f.ImagemURL = req.ImagemURL
	}

	if err := s.ferramentas.Atualizar(ctx, f); err != nil {
		if errors.Is(err, store.ErrNaoEncontrado) {
			return nil, ErrFerramentaNaoEncontrada
		}
		return nil, fmt.Errorf("erro ao atualizar ferramenta: %w", err)
	}

	s.indexar(ctx, *f)
	s.invalidarCache(ctx)
	return f, nil
}

// AtualizarQRCode grava o conteúdo do QR code impresso na unidade
func (s *FerramentaService) AtualizarQRCode(ctx context.Context, id int64, payload string) (*models.Ferramenta, error) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, qrcode.Prefixo) {
		return nil, ErrQRCodeInvalido
	}
	if err := s.ferramentas.AtualizarQRCode(ctx, id, payload); err != nil {
		if errors.Is(err, store.ErrNaoEncontrado) {
			return nil, ErrFerramentaNaoEncontrada
		}
		if errors.Is(err, store.ErrDuplicado) {
			return nil, ErrPatrimonioDuplicado
		}
		return nil, fmt.Errorf("erro ao atualizar QR code: %w", err)
	}
	return s.BuscarPorID(ctx, id)
}

// ResolverQRCode encontra a unidade de um QR code lido pela câmera.
// Primeiro procura o conteúdo exato salvo; depois interpreta o formato e
// procura pelo único patrimônio ou id que ele representa.
func (s *FerramentaService) ResolverQRCode(ctx context.Context, payload string) (*models.Ferramenta, error) {
	payload = strings.TrimSpace(payload)
	f, err := s.ferramentas.BuscarPorQRCode(ctx, payload)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, store.ErrNaoEncontrado) {
		return nil, fmt.Errorf("erro ao buscar QR code: %w", err)
	}

	ref, err := qrcode.Interpretar(payload)
	if err != nil {
		return nil, ErrQRCodeInvalido
	}
	if ref.FerramentaID != 0 {
		return s.BuscarPorID(ctx, ref.FerramentaID)
	}

	f, err = s.ferramentas.BuscarPorPatrimonio(ctx, ref.Patrimonio)
	if errors.Is(err, store.ErrNaoEncontrado) {
		return nil, ErrFerramentaNaoEncontrada
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar patrimônio: %w", err)
	}
	return f, nil
}

// DecidirExclusao monta o plano de exclusão: unidades emprestadas ficam de fora
func DecidirExclusao(ferramentas []models.Ferramenta) models.Plano {
	plano := models.Plano{Acao: models.AcaoExcluir, Afetadas: []int64{}}
	for _, f := range ferramentas {
		if f.Disponivel {
			plano.Afetadas = append(plano.Afetadas, f.ID)
		} else {
			plano.Bloqueadas = append(plano.Bloqueadas, f.ID)
		}
	}
	if len(plano.Afetadas) > 0 {
		plano.ReferenciaID = plano.Afetadas[0]
	}

	switch {
	case len(plano.Afetadas) == 0 && len(plano.Bloqueadas) == 0:
		plano.Acao = models.AcaoNenhuma
		plano.Mensagem = "Nenhuma unidade encontrada."
	case len(plano.Afetadas) == 0:
		plano.Acao = models.AcaoNenhuma
		plano.Mensagem = "Todas as unidades selecionadas estão emprestadas."
	case len(plano.Bloqueadas) > 0:
		plano.Mensagem = fmt.Sprintf("%d unidade(s) serão excluídas. %d emprestada(s) não serão afetadas.",
			len(plano.Afetadas), len(plano.Bloqueadas))
	default:
		plano.Mensagem = fmt.Sprintf("%d unidade(s) serão excluídas permanentemente.", len(plano.Afetadas))
	}
	return plano
}

// PlanejarExclusao carrega as unidades e decide o que será excluído
func (s *FerramentaService) PlanejarExclusao(ctx context.Context, ids []int64) (models.Plano, error) {
	ferramentas, err := s.ferramentas.ListarPorIDs(ctx, unicos(ids))
	if err != nil {
		return models.Plano{}, fmt.Errorf("erro ao carregar ferramentas: %w", err)
	}
	return DecidirExclusao(ferramentas), nil
}

// ExecutarExclusao exclui as unidades do plano. Sem confirmação nada é feito.
func (s *FerramentaService) ExecutarExclusao(ctx context.Context, plano models.Plano, conf models.Confirmacao) (*models.ResumoLote, error) {
	if !conf.Confirmado {
		return nil, ErrConfirmacaoNecessaria
	}
	if !plano.Executavel() {
		return &models.ResumoLote{}, nil
	}

	var referencia *models.Ferramenta
	if plano.ReferenciaID != 0 {
		var err error
		referencia, err = s.ferramentas.BuscarPorID(ctx, plano.ReferenciaID)
		if err != nil {
			s.logger.Warn("falha ao carregar unidade de referência da exclusão",
				zap.Int64("ferramenta_id", plano.ReferenciaID),
				zap.Error(err),
			)
		}
	}

	resumo := executarLote(ctx, plano.Afetadas, s.limite, func(ctx context.Context, id int64) error {
		if err := s.ferramentas.Excluir(ctx, id); err != nil {
			switch {
			case errors.Is(err, store.ErrNaoEncontrado):
				return ErrFerramentaNaoEncontrada
			case errors.Is(err, store.ErrEmUso):
				return ErrFerramentaEmUso
			}
			return err
		}
		s.removerDoIndice(ctx, id)
		return nil
	})

	s.logger.Info("exclusão em lote concluída",
		zap.Int("sucessos", resumo.Sucessos),
		zap.Int("falhas", resumo.Falhas),
	)
	if resumo.Sucessos > 0 {
		s.invalidarCache(ctx)
	}

	if referencia != nil {
		grupo, err := carregarGrupo(ctx, s.ferramentas, s.catalogo, referencia.Nome, referencia.CategoriaID)
		if err != nil {
			s.logger.Warn("falha ao recarregar grupo após exclusão", zap.Error(err))
		}
		resumo.Grupo = grupo
	}
	return &resumo, nil
}

// MaisUtilizadas retorna as unidades com mais empréstimos
func (s *FerramentaService) MaisUtilizadas(ctx context.Context, limite int) ([]models.FerramentaUso, error) {
	if limite <= 0 {
		limite = LimitePadraoMaisUtilizadas
	}
	if limite > limiteMaximoMaisUtilizadas {
		limite = limiteMaximoMaisUtilizadas
	}

	usarCache := s.cache != nil && limite == LimitePadraoMaisUtilizadas
	if usarCache {
		var cached []models.FerramentaUso
		if err := s.cache.Get(ctx, cache.ChaveMaisUtilizadas, &cached); err == nil {
			return cached, nil
		}
	}

	uso, err := s.ferramentas.MaisUtilizadas(ctx, limite)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ferramentas mais utilizadas: %w", err)
	}

	if usarCache {
		if err := s.cache.Set(ctx, cache.ChaveMaisUtilizadas, uso, ttlMaisUtilizadas); err != nil {
			s.logger.Warn("falha ao gravar cache", zap.String("chave", cache.ChaveMaisUtilizadas), zap.Error(err))
		}
	}
	return uso, nil
}

// ContagemPorCategoria soma unidades e disponíveis de cada categoria do catálogo
func (s *FerramentaService) ContagemPorCategoria(ctx context.Context) ([]models.CategoriaResumo, error) {
	ferramentas, err := s.Listar(ctx, "")
	if err != nil {
		return nil, err
	}

	contagem := make(map[string]*models.CategoriaResumo)
	resumos := make([]models.CategoriaResumo, 0, len(s.catalogo))
	for _, info := range s.catalogo.Ordenadas() {
		resumos = append(resumos, models.CategoriaResumo{ID: info.ID, Nome: info.Nome, Icone: info.Icone})
	}
	for i := range resumos {
		contagem[resumos[i].ID] = &resumos[i]
	}

	for _, f := range ferramentas {
		r, ok := contagem[f.CategoriaID]
		if !ok {
			continue
		}
		r.Total++
		if f.Disponivel {
			r.Disponivel++
		}
	}
	return resumos, nil
}

// EnviarImagem grava a foto de uma ferramenta e retorna a URL pública
func (s *FerramentaService) EnviarImagem(ctx context.Context, nome string, conteudo []byte, contentType string) (string, error) {
	if s.imagens == nil {
		return "", armazenamento.ErrNaoConfigurado
	}
	if len(conteudo) == 0 {
		return "", ErrImagemInvalida
	}
	return s.imagens.Enviar(ctx, nome, conteudo, contentType)
}

func (s *FerramentaService) indexar(ctx context.Context, f models.Ferramenta) {
	if s.indice == nil {
		return
	}
	if err := s.indice.Indexar(ctx, f); err != nil {
		s.logger.Warn("falha ao indexar ferramenta", zap.Int64("ferramenta_id", f.ID), zap.Error(err))
	}
}

func (s *FerramentaService) removerDoIndice(ctx context.Context, id int64) {
	if s.indice == nil {
		return
	}
	if err := s.indice.Remover(ctx, id); err != nil {
		s.logger.Warn("falha ao remover ferramenta do índice", zap.Int64("ferramenta_id", id), zap.Error(err))
	}
}

func (s *FerramentaService) invalidarCache(ctx context.Context) {
	invalidar(ctx, s.cache, s.logger)
}

// invalidar descarta os valores derivados do inventário
func invalidar(ctx context.Context, c cache.Cache, logger *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, cache.ChaveEstatisticas, cache.ChaveMaisUtilizadas); err != nil {
		logger.Warn("falha ao invalidar cache", zap.Error(err))
	}
}

func unicos(ids []int64) []int64 {
	vistos := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || vistos[id] {
			continue
		}
		vistos[id] = true
		out = append(out, id)
	}
	return out
}
