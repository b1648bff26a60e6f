package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	middlewares "github.com/prefeitura-rio/app-ferramentas/internal/middleware"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

type AuthHandler struct {
	auth      AuthServico
	validator *validator.Validate
}

func NewAuthHandler(auth AuthServico) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator.New(),
	}
}

// Register godoc
// @Summary Cadastra um usuário
// @Description Cria o usuário com senha criptografada e já devolve o token de acesso
// @Tags auth
// @Accept json
// @Produce json
// @Param usuario body models.RegistroRequest true "Nome e senha"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegistroRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.auth.Registrar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Autentica um usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param credenciais body models.LoginRequest true "Nome e senha"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Check godoc
// @Summary Retorna o usuário do token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Usuario
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/check [get]
func (h *AuthHandler) Check(c *gin.Context) {
	u, err := h.auth.Verificar(c.Request.Context(), middlewares.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser godoc
// @Summary Atualiza o próprio perfil
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do usuário"
// @Param perfil body models.AtualizarUsuarioRequest true "Dados do perfil"
// @Success 200 {object} models.Usuario
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/auth/users/{id} [put]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AtualizarUsuarioRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	u, err := h.auth.AtualizarPerfil(c.Request.Context(), id, middlewares.GetUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePassword godoc
// @Summary Troca a senha do próprio usuário
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do usuário"
// @Param senha body models.AlterarSenhaRequest true "Senha atual e nova"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/auth/users/{id}/senha [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AlterarSenhaRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	if err := h.auth.AlterarSenha(c.Request.Context(), id, middlewares.GetUserID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
