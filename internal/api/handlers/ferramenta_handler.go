package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	middlewares "github.com/prefeitura-rio/app-ferramentas/internal/middleware"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

// MaxImagem é o tamanho máximo aceito para fotos enviadas
const MaxImagem = 10 << 20

// CampoImagem é o campo multipart que carrega a foto
const CampoImagem = "imagem"

type FerramentaHandler struct {
	ferramentas   FerramentaServico
	identificacao IdentificacaoServico
	validator     *validator.Validate
}

func NewFerramentaHandler(ferramentas FerramentaServico, identificacao IdentificacaoServico) *FerramentaHandler {
	return &FerramentaHandler{
		ferramentas:   ferramentas,
		identificacao: identificacao,
		validator:     validator.New(),
	}
}

// List godoc
// @Summary Lista as unidades
// @Tags ferramentas
// @Produce json
// @Param categoria query string false "ID da categoria"
// @Success 200 {array} models.Ferramenta
// @Failure 500 {object} ErrorResponse
// @Router /api/ferramentas [get]
func (h *FerramentaHandler) List(c *gin.Context) {
	h.listar(c, c.Query("categoria"))
}

// ListByCategory godoc
// @Summary Lista as unidades de uma categoria
// @Tags ferramentas
// @Produce json
// @Param categoryId path string true "ID da categoria"
// @Success 200 {array} models.Ferramenta
// @Failure 500 {object} ErrorResponse
// @Router /api/ferramentas/categoria/{categoryId} [get]
func (h *FerramentaHandler) ListByCategory(c *gin.Context) {
	h.listar(c, c.Param("categoryId"))
}

func (h *FerramentaHandler) listar(c *gin.Context, categoriaID string) {
	ferramentas, err := h.ferramentas.Listar(c.Request.Context(), categoriaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ferramentas)
}

// ListGroups godoc
// @Summary Lista as ferramentas agrupadas por nome e categoria
// @Description Grupos em ordem alfabética (pt-BR) com total e disponíveis. A busca textual usa o Typesense quando configurado.
// @Tags ferramentas
// @Produce json
// @Param categoria query string false "ID da categoria"
// @Param q query string false "Texto da busca"
// @Success 200 {object} models.ListaGruposResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/ferramentas/grupos [get]
func (h *FerramentaHandler) ListGroups(c *gin.Context) {
	grupos, err := h.ferramentas.ListarGrupos(c.Request.Context(), models.FiltroFerramentas{
		CategoriaID: c.Query("categoria"),
		Busca:       c.Query("q"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ListaGruposResponse{Total: len(grupos), Grupos: grupos})
}

// MostUsed godoc
// @Summary Ferramentas mais emprestadas
// @Tags ferramentas
// @Produce json
// @Param limite query int false "Quantidade (máximo 50)" default(6)
// @Success 200 {array} models.FerramentaUso
// @Failure 500 {object} ErrorResponse
// @Router /api/ferramentas/mais-utilizadas [get]
func (h *FerramentaHandler) MostUsed(c *gin.Context) {
	uso, err := h.ferramentas.MaisUtilizadas(c.Request.Context(), parseIntQuery(c, "limite", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, uso)
}

// ResolveQRCode godoc
// @Summary Encontra a unidade de um QR code
// @Tags ferramentas
// @Produce json
// @Param payload query string true "Conteúdo lido do QR code"
// @Success 200 {object} models.Ferramenta
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/ferramentas/qrcode [get]
func (h *FerramentaHandler) ResolveQRCode(c *gin.Context) {
	payload := strings.TrimSpace(c.Query("payload"))
	if payload == "" {
		respondBadRequest(c, "Parâmetro payload é obrigatório", nil)
		return
	}

	f, err := h.ferramentas.ResolverQRCode(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Get godoc
// @Summary Busca uma unidade
// @Tags ferramentas
// @Produce json
// @Param id path int true "ID da unidade"
// @Success 200 {object} models.Ferramenta
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/ferramentas/{id} [get]
func (h *FerramentaHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	f, err := h.ferramentas.BuscarPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// GetGroup godoc
// @Summary Grupo de uma unidade
// @Description Refaz o grupo a partir do banco e indica a unidade disponível que será usada no próximo empréstimo
// @Tags ferramentas
// @Produce json
// @Param id path int true "ID de qualquer unidade do grupo"
// @Success 200 {object} models.GrupoDetalhe
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/ferramentas/{id}/grupo [get]
func (h *FerramentaHandler) GetGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detalhe, err := h.ferramentas.BuscarGrupo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detalhe)
}

// Create godoc
// @Summary Cadastra uma unidade com patrimônio
// @Tags ferramentas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ferramenta body models.FerramentaRequest true "Dados da unidade"
// @Success 201 {object} models.Ferramenta
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/ferramentas [post]
func (h *FerramentaHandler) Create(c *gin.Context) {
	var req models.FerramentaRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	f, err := h.ferramentas.Criar(c.Request.Context(), req, middlewares.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// CreateWithoutTag godoc
// @Summary Cadastra várias unidades sem patrimônio
// @Description Cada unidade recebe uma etiqueta SEM PATRIMONIO gerada e um QR code próprio
// @Tags ferramentas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ferramenta body models.FerramentaSemPatrimonioRequest true "Dados e quantidade"
// @Success 201 {array} models.Ferramenta
// @Failure 400 {object} ErrorResponse
// @Router /api/ferramentas/sem-patrimonio [post]
func (h *FerramentaHandler) CreateWithoutTag(c *gin.Context) {
	var req models.FerramentaSemPatrimonioRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	ferramentas, err := h.ferramentas.CriarSemPatrimonio(c.Request.Context(), req, middlewares.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ferramentas)
}

// Update godoc
// @Summary Edita uma unidade
// @Tags ferramentas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da unidade"
// @Param ferramenta body models.AtualizarFerramentaRequest true "Campos editáveis"
// @Success 200 {object} models.Ferramenta
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/ferramentas/{id} [put]
func (h *FerramentaHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AtualizarFerramentaRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	f, err := h.ferramentas.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// UpdateQRCode godoc
// @Summary Grava o QR code de uma unidade
// @Tags ferramentas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da unidade"
// @Param qrcode body models.QRCodeRequest true "Conteúdo do QR code (tool-...)"
// @Success 200 {object} models.Ferramenta
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/ferramentas/{id}/qrcode [put]
func (h *FerramentaHandler) UpdateQRCode(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.QRCodeRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	f, err := h.ferramentas.AtualizarQRCode(c.Request.Context(), id, req.QRCodeURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Delete godoc
// @Summary Exclui uma unidade
// @Description Sem confirmar=true devolve apenas o plano da exclusão
// @Tags ferramentas
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da unidade"
// @Param confirmar query bool false "Executa a exclusão" default(false)
// @Success 200 {object} models.ResumoLote
// @Failure 400 {object} ErrorResponse
// @Router /api/ferramentas/{id} [delete]
func (h *FerramentaHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	confirmar, _ := strconv.ParseBool(c.DefaultQuery("confirmar", "false"))
	h.excluir(c, []int64{id}, confirmar)
}

// BulkDelete godoc
// @Summary Exclui várias unidades
// @Description Unidades emprestadas nunca são excluídas. Sem confirmar=true devolve apenas o plano.
// @Tags ferramentas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exclusao body models.ExclusaoRequest true "IDs e confirmação"
// @Success 200 {object} models.ResumoLote
// @Failure 400 {object} ErrorResponse
// @Router /api/ferramentas/excluir [post]
func (h *FerramentaHandler) BulkDelete(c *gin.Context) {
	var req models.ExclusaoRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	h.excluir(c, req.IDs, req.Confirmar)
}

func (h *FerramentaHandler) excluir(c *gin.Context, ids []int64, confirmar bool) {
	ctx := c.Request.Context()
	plano, err := h.ferramentas.PlanejarExclusao(ctx, ids)
	if err != nil {
		respondError(c, err)
		return
	}
	if !confirmar {
		c.JSON(http.StatusOK, models.PlanoResponse{Plano: plano, RequerConfirmacao: plano.Executavel()})
		return
	}

	resumo, err := h.ferramentas.ExecutarExclusao(ctx, plano, models.Confirmacao{Confirmado: true})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumo)
}

// Upload godoc
// @Summary Envia a foto de uma ferramenta
// @Tags ferramentas
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param imagem formData file true "Foto (jpeg, png, webp ou heic, até 10MB)"
// @Success 201 {object} models.UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/ferramentas/upload [post]
func (h *FerramentaHandler) Upload(c *gin.Context) {
	nome, conteudo, contentType, ok := lerImagem(c)
	if !ok {
		return
	}

	url, err := h.ferramentas.EnviarImagem(c.Request.Context(), nome, conteudo, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.UploadResponse{URL: url})
}

// Identify godoc
// @Summary Sugere nome e categoria a partir de uma foto
// @Tags ferramentas
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param imagem formData file true "Foto da ferramenta"
// @Success 200 {object} models.IdentificacaoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/ferramentas/identificar [post]
func (h *FerramentaHandler) Identify(c *gin.Context) {
	if h.identificacao == nil || !h.identificacao.Disponivel() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Identificação por foto indisponível"})
		return
	}
	_, conteudo, contentType, ok := lerImagem(c)
	if !ok {
		return
	}

	sugestao, err := h.identificacao.Identificar(c.Request.Context(), conteudo, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sugestao)
}

// lerImagem lê o arquivo multipart e descobre o tipo pelo header ou pelo conteúdo
func lerImagem(c *gin.Context) (string, []byte, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImagem+(1<<20))

	header, err := c.FormFile(CampoImagem)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Imagem maior que 10MB"})
			return "", nil, "", false
		}
		respondBadRequest(c, "Arquivo de imagem é obrigatório", err)
		return "", nil, "", false
	}
	if header.Size > MaxImagem {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Imagem maior que 10MB"})
		return "", nil, "", false
	}

	arquivo, err := header.Open()
	if err != nil {
		respondBadRequest(c, "Não foi possível ler a imagem", err)
		return "", nil, "", false
	}
	defer arquivo.Close()

	conteudo, err := io.ReadAll(arquivo)
	if err != nil {
		respondBadRequest(c, "Não foi possível ler a imagem", err)
		return "", nil, "", false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(conteudo)
	}
	return header.Filename, conteudo, contentType, true
}
