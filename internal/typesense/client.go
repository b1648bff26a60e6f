// Package typesense mantém o índice de busca textual das ferramentas.
package typesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/migration/schemas"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
	"github.com/prefeitura-rio/app-ferramentas/internal/utils"
)

// MaxResultados é o limite de hits por página aceito pelo Typesense
const MaxResultados = 250

// MaxPaginas limita quantas páginas uma busca percorre
const MaxPaginas = 20

const camposBusca = "nome,nome_normalizado,patrimonio,local,detalhes"

type Client struct {
	client     *typesense.Client
	collection string
	logger     *zap.Logger
}

func NewClient(serverURL, apiKey, collection string, logger *zap.Logger) *Client {
	typesenseClient := typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(apiKey),
	)

	return &Client{
		client:     typesenseClient,
		collection: collection,
		logger:     logger,
	}
}

// EnsureCollection cria a collection se ela ainda não existir
func (c *Client) EnsureCollection(ctx context.Context) error {
	_, err := c.client.Collection(c.collection).Retrieve(ctx)
	if err == nil {
		return nil
	}

	if !naoEncontrado(err) {
		return err
	}

	c.logger.Info("collection de ferramentas não existe, criando", zap.String("collection", c.collection))

	if _, err := c.client.Collections().Create(ctx, schemas.SchemaFerramentas(c.collection)); err != nil {
		return fmt.Errorf("erro ao criar collection %s: %w", c.collection, err)
	}
	return nil
}

// Documento converte a unidade para o formato indexado
func Documento(f models.Ferramenta) map[string]interface{} {
	doc := map[string]interface{}{
		"id":               strconv.FormatInt(f.ID, 10),
		"ferramenta_id":    f.ID,
		"nome":             f.Nome,
		"nome_normalizado": utils.NormalizarTexto(f.Nome),
		"patrimonio":       f.Patrimonio,
		"disponivel":       f.Disponivel,
		"data_criacao":     f.DataCriacao.Unix(),
	}
	if f.CategoriaID != "" {
		doc["categoria_id"] = f.CategoriaID
	}
	if f.CategoriaNome != "" {
		doc["categoria_nome"] = f.CategoriaNome
	}
	if f.Local != "" {
		doc["local"] = f.Local
	}
	if f.Detalhes != "" {
		doc["detalhes"] = utils.StripMarkdown(f.Detalhes)
	}
	return doc
}

// Indexar cria ou substitui o documento da unidade
func (c *Client) Indexar(ctx context.Context, f models.Ferramenta) error {
	_, err := c.client.Collection(c.collection).Documents().Upsert(ctx, Documento(f), &api.DocumentIndexParameters{})
	if err != nil {
		return fmt.Errorf("erro ao indexar ferramenta %d: %w", f.ID, err)
	}
	return nil
}

// Remover apaga o documento da unidade; documentos inexistentes são ignorados
func (c *Client) Remover(ctx context.Context, id int64) error {
	_, err := c.client.Collection(c.collection).Document(strconv.FormatInt(id, 10)).Delete(ctx)
	if err != nil && !naoEncontrado(err) {
		return fmt.Errorf("erro ao remover ferramenta %d do índice: %w", id, err)
	}
	return nil
}

// Buscar retorna os ids das unidades que casam com o termo, na ordem de relevância.
// Percorre as páginas até reunir todos os hits encontrados ou atingir MaxPaginas.
func (c *Client) Buscar(ctx context.Context, termo, categoriaID string) ([]int64, error) {
	ids := make([]int64, 0)
	encontrados := 0

	for pagina := 1; pagina <= MaxPaginas; pagina++ {
		params := &api.SearchCollectionParams{
			Q:       pointer.String(termo),
			QueryBy: pointer.String(camposBusca),
			PerPage: pointer.Int(MaxResultados),
			Page:    pointer.Int(pagina),
		}
		if categoriaID != "" {
			params.FilterBy = pointer.String(fmt.Sprintf("categoria_id:=`%s`", categoriaID))
		}

		result, err := c.client.Collection(c.collection).Documents().Search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("erro na busca: %w", err)
		}
		if result.Found != nil {
			encontrados = *result.Found
		}
		if result.Hits == nil || len(*result.Hits) == 0 {
			break
		}

		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := idDoDocumento(*hit.Document); ok {
				ids = append(ids, id)
			}
		}

		if len(*result.Hits) < MaxResultados || pagina*MaxResultados >= encontrados {
			break
		}
	}

	if encontrados > len(ids) {
		c.logger.Warn("busca truncada",
			zap.String("termo", termo),
			zap.Int("encontrados", encontrados),
			zap.Int("retornados", len(ids)),
		)
	}

	c.logger.Debug("busca de ferramentas", zap.String("termo", termo), zap.Int("hits", len(ids)))
	return ids, nil
}

// naoEncontrado reconhece a resposta 404 do servidor
func naoEncontrado(err error) bool {
	var httpErr *typesense.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}

func idDoDocumento(doc map[string]interface{}) (int64, bool) {
	switch v := doc["ferramenta_id"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	}
	if s, ok := doc["id"].(string); ok {
		id, err := strconv.ParseInt(s, 10, 64)
		return id, err == nil
	}
	return 0, false
}

// Health verifica se o servidor responde
func (c *Client) Health(ctx context.Context) error {
	ok, err := c.client.Health(ctx, 2*time.Second)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("typesense não está saudável")
	}
	return nil
}
