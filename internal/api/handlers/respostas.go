package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prefeitura-rio/app-ferramentas/internal/armazenamento"
	"github.com/prefeitura-rio/app-ferramentas/internal/services"
)

// ErrorResponse é o corpo de todas as respostas de erro
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type mapeamento struct {
	erro   error
	status int
	msg    string
}

var mapeamentos = []mapeamento{
	{services.ErrFerramentaNaoEncontrada, http.StatusNotFound, "Ferramenta não encontrada"},
	{services.ErrEmprestimoNaoEncontrado, http.StatusNotFound, "Empréstimo não encontrado"},
	{services.ErrUsuarioNaoEncontrado, http.StatusNotFound, "Usuário não encontrado"},

	{services.ErrPatrimonioDuplicado, http.StatusConflict, "Patrimônio já cadastrado"},
	{services.ErrFerramentaEmUso, http.StatusConflict, "Ferramenta emprestada"},
	{services.ErrFerramentaIndisponivel, http.StatusConflict, "Ferramenta indisponível"},
	{services.ErrSemUnidadeDisponivel, http.StatusConflict, "Nenhuma unidade disponível"},
	{services.ErrEmprestimoJaDevolvido, http.StatusConflict, "Empréstimo já devolvido"},
	{services.ErrNomeEmUso, http.StatusConflict, "Nome de usuário já cadastrado"},

	{services.ErrCategoriaInvalida, http.StatusBadRequest, "Categoria inválida"},
	{services.ErrQuantidadeInvalida, http.StatusBadRequest, "Quantidade inválida"},
	{services.ErrQRCodeInvalido, http.StatusBadRequest, "QR code inválido"},
	{services.ErrImagemInvalida, http.StatusBadRequest, "Imagem inválida"},
	{services.ErrConfirmacaoNecessaria, http.StatusBadRequest, "Confirmação necessária"},
	{services.ErrSenhaAtualIncorreta, http.StatusBadRequest, "Senha atual incorreta"},
	{armazenamento.ErrTipoInvalido, http.StatusUnsupportedMediaType, "Tipo de arquivo não suportado"},

	{services.ErrCredenciaisInvalidas, http.StatusUnauthorized, "Nome ou senha inválidos"},
	{services.ErrTokenInvalido, http.StatusUnauthorized, "Token inválido ou expirado"},
	{services.ErrNaoResponsavel, http.StatusForbidden, "Apenas quem retirou pode devolver"},
	{services.ErrAcessoNegado, http.StatusForbidden, "Acesso negado"},

	{services.ErrIdentificacaoFalhou, http.StatusBadGateway, "Não foi possível identificar a ferramenta"},
	{services.ErrIdentificacaoIndisponivel, http.StatusServiceUnavailable, "Identificação por foto indisponível"},
	{armazenamento.ErrNaoConfigurado, http.StatusServiceUnavailable, "Envio de imagens indisponível"},
}

// respondError converte os erros dos serviços em status HTTP
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	for _, m := range mapeamentos {
		if errors.Is(err, m.erro) {
			c.JSON(m.status, ErrorResponse{Error: m.msg, Details: err.Error()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Erro interno do servidor"})
}

func respondBadRequest(c *gin.Context, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// bindJSON decodifica e valida o corpo; em caso de erro já responde 400
func bindJSON(c *gin.Context, v *validator.Validate, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondBadRequest(c, "Dados inválidos", err)
		return false
	}
	if err := v.Struct(dest); err != nil {
		respondBadRequest(c, "Validação falhou", err)
		return false
	}
	return true
}

// paramID lê um id numérico positivo da rota
func paramID(c *gin.Context, nome string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(nome), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "ID inválido", err)
		return 0, false
	}
	return id, true
}
