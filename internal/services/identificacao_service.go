package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

const (
	timeoutIdentificacao = 30 * time.Second
	maxImagemBytes       = 10 << 20
)

// GeradorConteudo responde a uma imagem com um JSON estruturado
type GeradorConteudo interface {
	GerarJSON(ctx context.Context, imagem []byte, mimeType, prompt string, schema *genai.Schema) (string, error)
}

// GeminiGerador usa o Gemini com saída estruturada
type GeminiGerador struct {
	client *genai.Client
	modelo string
}

func NewGeminiGerador(ctx context.Context, apiKey, modelo string) (*GeminiGerador, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}
	return &GeminiGerador{client: client, modelo: modelo}, nil
}

func (g *GeminiGerador) GerarJSON(ctx context.Context, imagem []byte, mimeType, prompt string, schema *genai.Schema) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(imagem, mimeType),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelo, []*genai.Content{content}, config)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("resposta vazia do modelo")
	}
	return resp.Text(), nil
}

// IdentificacaoService sugere nome e categoria a partir da foto de uma ferramenta
type IdentificacaoService struct {
	gerador  GeradorConteudo
	catalogo constants.Catalogo
	logger   *zap.Logger
}

// NewIdentificacaoService cria o serviço; gerador nil deixa a identificação desligada
func NewIdentificacaoService(gerador GeradorConteudo, logger *zap.Logger) *IdentificacaoService {
	return &IdentificacaoService{
		gerador:  gerador,
		catalogo: constants.CategoriasPadrao,
		logger:   logger,
	}
}

// Disponivel indica se há um modelo configurado
func (s *IdentificacaoService) Disponivel() bool {
	return s.gerador != nil
}

func (s *IdentificacaoService) schema() *genai.Schema {
	ids := make([]string, 0, len(s.catalogo))
	for _, c := range s.catalogo.Ordenadas() {
		ids = append(ids, c.ID)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"nome": {
				Type:        genai.TypeString,
				Description: "Nome curto da ferramenta em português",
			},
			"categoria_id": {
				Type:        genai.TypeString,
				Description: "Id da categoria do catálogo",
				Enum:        ids,
			},
			"detalhes": {
				Type:        genai.TypeString,
				Description: "Características visíveis, como marca, modelo e tamanho",
			},
		},
		Required: []string{"nome", "categoria_id"},
	}
}

func (s *IdentificacaoService) prompt() string {
	linhas := make([]string, 0, len(s.catalogo))
	for _, c := range s.catalogo.Ordenadas() {
		linhas = append(linhas, fmt.Sprintf("%s - %s", c.ID, c.Nome))
	}

	return fmt.Sprintf(`Identifique a ferramenta da foto para cadastro em um almoxarifado.

Categorias:
%s

Use a categoria %s quando nenhuma outra servir. Responda em português.`, strings.Join(linhas, "\n"), constants.CategoriaOutros)
}

// Identificar analisa a imagem. Categorias fora do catálogo viram "Outros".
func (s *IdentificacaoService) Identificar(ctx context.Context, imagem []byte, mimeType string) (*models.IdentificacaoResponse, error) {
	if s.gerador == nil {
		return nil, ErrIdentificacaoIndisponivel
	}
	if len(imagem) == 0 || len(imagem) > maxImagemBytes || !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrImagemInvalida
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutIdentificacao)
	defer cancel()

	inicio := time.Now()
	texto, err := s.gerador.GerarJSON(ctx, imagem, mimeType, s.prompt(), s.schema())
	if err != nil {
		s.logger.Error("falha na identificação", zap.Error(err))
		return nil, ErrIdentificacaoFalhou
	}

	var out models.IdentificacaoResponse
	if err := json.Unmarshal([]byte(texto), &out); err != nil {
		s.logger.Warn("resposta de identificação inválida", zap.String("resposta", texto), zap.Error(err))
		return nil, ErrIdentificacaoFalhou
	}
	out.Nome = strings.TrimSpace(out.Nome)
	if out.Nome == "" {
		return nil, ErrIdentificacaoFalhou
	}
	if !s.catalogo.Valida(out.CategoriaID) {
		out.CategoriaID = constants.CategoriaOutros
	}
	out.CategoriaNome = s.catalogo.Nome(out.CategoriaID)

	s.logger.Info("ferramenta identificada",
		zap.String("nome", out.Nome),
		zap.String("categoria_id", out.CategoriaID),
		zap.Duration("duracao", time.Since(inicio)),
	)
	return &out, nil
}
