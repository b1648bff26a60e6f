package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prefeitura-rio/app-ferramentas/internal/migration"
)

// StatusMigracoes é satisfeito por *migration.Migrator
type StatusMigracoes interface {
	Status(ctx context.Context) ([]migration.Status, error)
}

// MigrationHandler expõe o estado das migrações do banco
type MigrationHandler struct {
	migrator    StatusMigracoes
	versaoAtual string
}

// NewMigrationHandler recebe a última versão registrada no código
func NewMigrationHandler(migrator StatusMigracoes, versaoAtual string) *MigrationHandler {
	return &MigrationHandler{migrator: migrator, versaoAtual: versaoAtual}
}

// MigrationStatusResponse resume as migrações aplicadas e pendentes
type MigrationStatusResponse struct {
	VersaoAtual string             `json:"versao_atual"`
	Pendentes   int                `json:"pendentes"`
	Bloqueado   bool               `json:"bloqueado"`
	Migracoes   []migration.Status `json:"migracoes"`
}

// GetStatus godoc
// @Summary Obtém o status das migrações
// @Description Enquanto houver migração pendente, cadastros, empréstimos e devoluções respondem 503
// @Tags migration
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MigrationStatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/admin/migracoes [get]
func (h *MigrationHandler) GetStatus(c *gin.Context) {
	status, err := h.migrator.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	pendentes := 0
	for _, s := range status {
		if !s.Aplicada {
			pendentes++
		}
	}

	c.JSON(http.StatusOK, MigrationStatusResponse{
		VersaoAtual: h.versaoAtual,
		Pendentes:   pendentes,
		Bloqueado:   pendentes > 0,
		Migracoes:   status,
	})
}
