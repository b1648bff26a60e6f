// Package armazenamento envia as fotos das ferramentas para o storage de objetos.
//
// O cliente fala a API REST do Supabase Storage:
//
//	POST   {base}/object/{bucket}/{caminho}         envia o arquivo
//	DELETE {base}/object/{bucket}/{caminho}         remove o arquivo
//	GET    {base}/object/public/{bucket}/{caminho}  URL pública
package armazenamento

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prefeitura-rio/app-ferramentas/internal/utils"
)

var (
	ErrNaoConfigurado = errors.New("armazenamento de imagens não configurado")
	ErrTipoInvalido   = errors.New("tipo de arquivo não suportado")
)

// TiposPermitidos são os formatos de imagem aceitos no envio
var TiposPermitidos = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

type StorageClient struct {
	http    *resty.Client
	baseURL string
	bucket  string
	logger  *zap.Logger
}

// NewStorageClient cria o cliente; baseURL vazio retorna nil
func NewStorageClient(baseURL, key, bucket string, logger *zap.Logger) *StorageClient {
	if baseURL == "" {
		return nil
	}
	baseURL = strings.TrimRight(baseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetAuthToken(key).
		SetHeader("apikey", key)

	return &StorageClient{
		http:    client,
		baseURL: baseURL,
		bucket:  bucket,
		logger:  logger,
	}
}

// Enviar grava a imagem com um nome único e retorna a URL pública
func (c *StorageClient) Enviar(ctx context.Context, nomeOriginal string, conteudo []byte, contentType string) (string, error) {
	if c == nil {
		return "", ErrNaoConfigurado
	}
	ext, ok := TiposPermitidos[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTipoInvalido, contentType)
	}

	caminho := CaminhoObjeto(nomeOriginal, ext)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetBody(conteudo).
		Post(fmt.Sprintf("/object/%s/%s", c.bucket, caminho))
	if err != nil {
		c.logger.Error("falha ao enviar imagem", zap.String("caminho", caminho), zap.Error(err))
		return "", fmt.Errorf("erro ao enviar imagem: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("storage recusou a imagem",
			zap.String("caminho", caminho),
			zap.Int("status_code", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", fmt.Errorf("storage retornou status %d", resp.StatusCode())
	}

	c.logger.Info("imagem enviada", zap.String("caminho", caminho), zap.Int("bytes", len(conteudo)))
	return c.URLPublica(caminho), nil
}

// Remover apaga um objeto a partir da URL pública
func (c *StorageClient) Remover(ctx context.Context, urlPublica string) error {
	if c == nil {
		return ErrNaoConfigurado
	}
	prefixo := c.URLPublica("")
	if !strings.HasPrefix(urlPublica, prefixo) {
		return fmt.Errorf("URL não pertence ao bucket %s", c.bucket)
	}
	caminho := strings.TrimPrefix(urlPublica, prefixo)

	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/object/%s/%s", c.bucket, caminho))
	if err != nil {
		return fmt.Errorf("erro ao remover imagem: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("storage retornou status %d", resp.StatusCode())
	}
	return nil
}

// URLPublica monta a URL pública de um caminho do bucket
func (c *StorageClient) URLPublica(caminho string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, caminho)
}

// CaminhoObjeto gera ferramentas/{uuid}-{nome}{ext}
func CaminhoObjeto(nomeOriginal, ext string) string {
	base := strings.TrimSuffix(nomeOriginal, extensao(nomeOriginal))
	nome := utils.SanitizarNomeArquivo(base)
	if nome == "" {
		nome = "foto"
	}
	return fmt.Sprintf("ferramentas/%s-%s%s", uuid.NewString(), nome, ext)
}

func extensao(nome string) string {
	if i := strings.LastIndex(nome, "."); i > 0 {
		return nome[i:]
	}
	return ""
}
