package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/agrupamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/cache"
	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
)

const (
	// JanelaEmprestimos é quantos empréstimos recentes entram nas estatísticas
	JanelaEmprestimos = 200
	maxTopUsuarios    = 5
	diasTendencia     = 7

	// SemCategoriaUsada aparece quando ainda não houve empréstimos
	SemCategoriaUsada = "Nenhuma"

	AbaInventario = "Inventário"
	AbaUnidades   = "Unidades"
)

var diasSemana = [...]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."}

// DashboardService calcula os indicadores do painel e exporta o inventário
type DashboardService struct {
	storage  *store.Storage
	cache    cache.Cache
	ttl      time.Duration
	catalogo constants.Catalogo
	logger   *zap.Logger
	agora    func() time.Time
}

func NewDashboardService(st *store.Storage, c cache.Cache, ttl time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		storage:  st,
		cache:    c,
		ttl:      ttl,
		catalogo: constants.CategoriasPadrao,
		logger:   logger,
		agora:    time.Now,
	}
}

// ComFuso faz o painel contar os dias no fuso informado
func (s *DashboardService) ComFuso(loc *time.Location) *DashboardService {
	s.agora = func() time.Time { return time.Now().In(loc) }
	return s
}

// Estatisticas retorna os indicadores, usando o cache quando possível
func (s *DashboardService) Estatisticas(ctx context.Context) (*models.Estatisticas, error) {
	if s.cache != nil {
		var cached models.Estatisticas
		if err := s.cache.Get(ctx, cache.ChaveEstatisticas, &cached); err == nil {
			return &cached, nil
		}
	}

	ferramentas, err := s.storage.Ferramentas.Listar(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ferramentas: %w", err)
	}
	emprestimos, err := s.storage.Emprestimos.Recentes(ctx, JanelaEmprestimos)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar empréstimos: %w", err)
	}

	ids := make([]int64, 0, len(emprestimos))
	for _, e := range emprestimos {
		ids = append(ids, e.UsuarioID)
	}
	nomes, err := s.storage.Usuarios.NomesPorIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("falha ao carregar nomes de usuários", zap.Error(err))
		nomes = map[int64]string{}
	}

	stats := CalcularEstatisticas(ferramentas, emprestimos, nomes, s.agora(), s.catalogo)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.ChaveEstatisticas, stats, s.ttl); err != nil {
			s.logger.Warn("falha ao gravar cache", zap.String("chave", cache.ChaveEstatisticas), zap.Error(err))
		}
	}
	return &stats, nil
}

// CalcularEstatisticas deriva os indicadores do inventário e dos empréstimos.
// Datas são comparadas no fuso de agora.
func CalcularEstatisticas(ferramentas []models.Ferramenta, emprestimos []models.Emprestimo, nomes map[int64]string, agora time.Time, catalogo constants.Catalogo) models.Estatisticas {
	stats := models.Estatisticas{
		TotalFerramentas:   len(ferramentas),
		TotalEmprestimos:   len(emprestimos),
		CategoriaMaisUsada: SemCategoriaUsada,
		TopUsuarios:        []models.UsoUsuario{},
	}

	categoriaDe := make(map[int64]string, len(ferramentas))
	for _, f := range ferramentas {
		if f.Disponivel {
			stats.Disponiveis++
		}
		categoriaDe[f.ID] = f.CategoriaID
	}
	stats.EmUso = stats.TotalFerramentas - stats.Disponiveis

	loc := agora.Location()
	hoje := dia(agora)

	var (
		concluidos int
		soma       time.Duration
	)
	porCategoria := make(map[string]int)
	porUsuario := make(map[int64]int)
	porDia := make(map[string]int)

	for _, e := range emprestimos {
		data := dia(e.DataEmprestimo.In(loc))
		if data.Equal(hoje) {
			stats.EmprestimosHoje++
		}
		porDia[data.Format("2006-01-02")]++
		porUsuario[e.UsuarioID]++
		if cat := categoriaDe[e.FerramentaID]; cat != "" {
			porCategoria[cat]++
		}

		if e.DataDevolucao != nil {
			concluidos++
			if d := e.DataDevolucao.Sub(e.DataEmprestimo); d > 0 {
				soma += d
			}
		}
	}

	if concluidos > 0 {
		stats.TempoMedioHoras = int(math.Round(soma.Hours() / float64(concluidos)))
	}

	if cat := categoriaMaisUsada(porCategoria); cat != "" {
		if nome := catalogo.Nome(cat); nome != "" {
			stats.CategoriaMaisUsada = nome
		} else {
			stats.CategoriaMaisUsada = cat
		}
	}

	stats.TopUsuarios = topUsuarios(porUsuario, nomes)

	stats.TendenciaSemanal = make([]models.PontoTendencia, 0, diasTendencia)
	for i := diasTendencia - 1; i >= 0; i-- {
		d := hoje.AddDate(0, 0, -i)
		chave := d.Format("2006-01-02")
		stats.TendenciaSemanal = append(stats.TendenciaSemanal, models.PontoTendencia{
			Dia:         diasSemana[d.Weekday()],
			Data:        chave,
			Emprestimos: porDia[chave],
		})
	}
	return stats
}

func dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// categoriaMaisUsada escolhe a de maior contagem; no empate vence o maior id
func categoriaMaisUsada(contagem map[string]int) string {
	melhor, maior := "", 0
	for cat, n := range contagem {
		if n > maior || (n == maior && maiorID(cat, melhor)) {
			melhor, maior = cat, n
		}
	}
	return melhor
}

func maiorID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na > nb
	}
	return a > b
}

func topUsuarios(contagem map[int64]int, nomes map[int64]string) []models.UsoUsuario {
	out := make([]models.UsoUsuario, 0, len(contagem))
	for id, n := range contagem {
		nome := nomes[id]
		if nome == "" {
			nome = fmt.Sprintf("Usuário %d", id)
		}
		out = append(out, models.UsoUsuario{UsuarioID: id, Nome: nome, Emprestimos: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Emprestimos != out[j].Emprestimos {
			return out[i].Emprestimos > out[j].Emprestimos
		}
		return out[i].UsuarioID < out[j].UsuarioID
	})
	if len(out) > maxTopUsuarios {
		out = out[:maxTopUsuarios]
	}
	return out
}

// ExportarInventario gera uma planilha com uma aba de grupos e outra de unidades
func (s *DashboardService) ExportarInventario(ctx context.Context) ([]byte, error) {
	ferramentas, err := s.storage.Ferramentas.Listar(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ferramentas: %w", err)
	}
	return GerarPlanilha(agrupamento.AgruparComCatalogo(ferramentas, s.catalogo))
}

// GerarPlanilha escreve os grupos em xlsx
func GerarPlanilha(grupos []models.GrupoFerramentas) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AbaInventario); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(AbaUnidades); err != nil {
		return nil, err
	}

	negrito, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	cabecalhoGrupos := []interface{}{"Ferramenta", "Categoria", "Local", "Total", "Disponíveis", "Emprestadas"}
	if err := escreverLinha(f, AbaInventario, 1, cabecalhoGrupos); err != nil {
		return nil, err
	}
	cabecalhoUnidades := []interface{}{"ID", "Ferramenta", "Categoria", "Patrimônio", "Situação", "Local", "Cadastro"}
	if err := escreverLinha(f, AbaUnidades, 1, cabecalhoUnidades); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(AbaInventario, "A1", "F1", negrito); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(AbaUnidades, "A1", "G1", negrito); err != nil {
		return nil, err
	}

	linhaUnidade := 2
	for i, g := range grupos {
		linha := []interface{}{g.Nome, g.CategoriaNome, g.Local, g.Total, g.Disponivel, g.Total - g.Disponivel}
		if err := escreverLinha(f, AbaInventario, i+2, linha); err != nil {
			return nil, err
		}

		for _, u := range g.Ferramentas {
			situacao := "Disponível"
			if !u.Disponivel {
				situacao = "Emprestada"
			}
			linha := []interface{}{
				u.ID, u.Nome, g.CategoriaNome, agrupamento.FormatarPatrimonio(u.Patrimonio),
				situacao, u.Local, u.DataCriacao.Format("02/01/2006"),
			}
			if err := escreverLinha(f, AbaUnidades, linhaUnidade, linha); err != nil {
				return nil, err
			}
			linhaUnidade++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

func escreverLinha(f *excelize.File, aba string, linha int, valores []interface{}) error {
	celula, err := excelize.CoordinatesToCellName(1, linha)
	if err != nil {
		return err
	}
	return f.SetSheetRow(aba, celula, &valores)
}
