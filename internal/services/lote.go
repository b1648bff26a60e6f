package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/prefeitura-rio/app-ferramentas/internal/agrupamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/store"
)

// ConcorrenciaLote limita as operações simultâneas de um lote
const ConcorrenciaLote = 4

// executarLote aplica op a cada id. Uma falha não interrompe as demais e a
// função só retorna depois que todas terminaram.
func executarLote(ctx context.Context, ids []int64, limite int, op func(ctx context.Context, id int64) error) models.ResumoLote {
	if limite < 1 {
		limite = 1
	}

	falhas := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(limite)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				falhas[i] = err
				return nil
			}
			falhas[i] = op(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	resumo := models.ResumoLote{}
	for i, err := range falhas {
		if err == nil {
			resumo.Sucessos++
			continue
		}
		resumo.Falhas++
		resumo.Erros = append(resumo.Erros, fmt.Sprintf("%d: %v", ids[i], err))
	}
	return resumo
}

// carregarGrupo recalcula o grupo ao qual a unidade pertence.
// Retorna nil quando o grupo não tem mais unidades.
func carregarGrupo(ctx context.Context, ferramentas store.Ferramentas, catalogo constants.Catalogo, nome, categoriaID string) (*models.GrupoFerramentas, error) {
	unidades, err := ferramentas.ListarPorNomeCategoria(ctx, nome, categoriaID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar grupo: %w", err)
	}
	grupos := agrupamento.AgruparComCatalogo(unidades, catalogo)
	if len(grupos) == 0 {
		return nil, nil
	}
	return &grupos[0], nil
}

// buscarFerramenta traduz a ausência da unidade para o erro do serviço
func buscarFerramenta(ctx context.Context, ferramentas store.Ferramentas, id int64) (*models.Ferramenta, error) {
	f, err := ferramentas.BuscarPorID(ctx, id)
	if errors.Is(err, store.ErrNaoEncontrado) {
		return nil, ErrFerramentaNaoEncontrada
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ferramenta %d: %w", id, err)
	}
	return f, nil
}
