package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const tipoXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	dashboard DashboardServico
	agora     func() time.Time
}

func NewDashboardHandler(dashboard DashboardServico) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, agora: time.Now}
}

// Stats godoc
// @Summary Estatísticas de uso
// @Description Totais, tempo médio de uso, categoria mais usada, usuários mais ativos e tendência dos últimos 7 dias
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Estatisticas
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Estatisticas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export godoc
// @Summary Exporta o inventário em planilha
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard/exportar [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	conteudo, err := h.dashboard.ExportarInventario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	nome := fmt.Sprintf("inventario-%s.xlsx", h.agora().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, nome))
	c.Data(http.StatusOK, tipoXLSX, conteudo)
}
