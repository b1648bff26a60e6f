package services

import (
	"context"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

// IndiceBusca é o índice textual opcional das unidades
type IndiceBusca interface {
	Indexar(ctx context.Context, f models.Ferramenta) error
	Remover(ctx context.Context, id int64) error
	Buscar(ctx context.Context, termo, categoriaID string) ([]int64, error)
}

// ArmazenamentoImagens grava as fotos e devolve a URL pública
type ArmazenamentoImagens interface {
	Enviar(ctx context.Context, nomeOriginal string, conteudo []byte, contentType string) (string, error)
}
