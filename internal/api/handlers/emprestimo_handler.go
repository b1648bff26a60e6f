package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	middlewares "github.com/prefeitura-rio/app-ferramentas/internal/middleware"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

type EmprestimoHandler struct {
	emprestimos EmprestimoServico
	validator   *validator.Validate
}

func NewEmprestimoHandler(emprestimos EmprestimoServico) *EmprestimoHandler {
	return &EmprestimoHandler{
		emprestimos: emprestimos,
		validator:   validator.New(),
	}
}

// Borrow godoc
// @Summary Registra um empréstimo
// @Description Informe ferramenta_id para uma unidade específica ou grupo_ferramenta_id para qualquer unidade disponível do grupo
// @Tags emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param emprestimo body models.EmprestimoRequest true "Unidade ou grupo"
// @Success 201 {object} models.Emprestimo
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/emprestimos [post]
func (h *EmprestimoHandler) Borrow(c *gin.Context) {
	var req models.EmprestimoRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	e, err := h.emprestimos.Registrar(c.Request.Context(), req, middlewares.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// Return godoc
// @Summary Registra a devolução
// @Tags emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do empréstimo"
// @Param devolucao body models.DevolucaoRequest false "Local da devolução"
// @Success 200 {object} models.Emprestimo
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/emprestimos/{id}/devolucao [put]
func (h *EmprestimoHandler) Return(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.DevolucaoRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, h.validator, &req) {
		return
	}

	e, err := h.emprestimos.RegistrarDevolucao(c.Request.Context(), id, req, middlewares.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// OpenLoan godoc
// @Summary Empréstimo em aberto de uma unidade
// @Description Retorna null quando a unidade não está emprestada
// @Tags emprestimos
// @Produce json
// @Param ferramenta_id path int true "ID da unidade"
// @Success 200 {object} models.Emprestimo
// @Failure 400 {object} ErrorResponse
// @Router /api/emprestimos/aberto/{ferramenta_id} [get]
func (h *EmprestimoHandler) OpenLoan(c *gin.Context) {
	id, ok := paramID(c, "ferramenta_id")
	if !ok {
		return
	}

	e, err := h.emprestimos.BuscarAberto(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// MyLoans godoc
// @Summary Empréstimos em aberto do usuário
// @Tags emprestimos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmprestimoDetalhado
// @Router /api/emprestimos/meus [get]
func (h *EmprestimoHandler) MyLoans(c *gin.Context) {
	abertos, err := h.emprestimos.MeusEmprestimos(c.Request.Context(), middlewares.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, abertos)
}

// ReturnGroup godoc
// @Summary Devolve todas as unidades do grupo que estão com o usuário
// @Description Sem confirmar=true devolve apenas o plano. Unidades emprestadas por outras pessoas aparecem em bloqueadas e não são tocadas.
// @Tags emprestimos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ferramenta_id path int true "ID de qualquer unidade do grupo"
// @Param confirmacao body models.ConfirmacaoRequest false "Confirmação e local"
// @Success 200 {object} models.ResumoLote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/emprestimos/devolver-grupo/{ferramenta_id} [post]
func (h *EmprestimoHandler) ReturnGroup(c *gin.Context) {
	id, ok := paramID(c, "ferramenta_id")
	if !ok {
		return
	}
	var req models.ConfirmacaoRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, h.validator, &req) {
		return
	}

	ctx := c.Request.Context()
	usuarioID := middlewares.GetUserID(c)
	plano, err := h.emprestimos.PlanejarDevolucaoGrupo(ctx, id, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !req.Confirmar {
		c.JSON(http.StatusOK, models.PlanoResponse{Plano: plano, RequerConfirmacao: plano.Executavel()})
		return
	}

	resumo, err := h.emprestimos.ExecutarDevolucaoGrupo(ctx, plano, models.Confirmacao{Confirmado: true}, req.LocalDevolucao)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumo)
}
