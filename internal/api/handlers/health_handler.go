package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Checagem testa uma dependência externa
type Checagem func(ctx context.Context) error

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	obrigatorias map[string]Checagem
	opcionais    map[string]Checagem
	agora        func() time.Time
}

// NewHealthHandler recebe as dependências que impedem o tráfego (banco, cache)
// e as que só degradam o serviço (busca). Checagens nil aparecem como "disabled".
func NewHealthHandler(obrigatorias, opcionais map[string]Checagem) *HealthHandler {
	return &HealthHandler{
		obrigatorias: obrigatorias,
		opcionais:    opcionais,
		agora:        time.Now,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: h.agora().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se a aplicação está pronta para receber tráfego. Falha só quando banco ou cache estão fora; a busca é informada mas não bloqueia.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: h.agora().Unix(),
	}

	falhas := executarChecagens(ctx, h.obrigatorias, response.Checks)
	executarChecagens(ctx, h.opcionais, response.Checks)

	statusCode := http.StatusOK
	if len(falhas) > 0 {
		response.Status = "not_ready"
		response.Error = "Dependência indisponível: " + falhas[0]
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// executarChecagens preenche checks e retorna os nomes que falharam, em ordem
func executarChecagens(ctx context.Context, checagens map[string]Checagem, checks map[string]string) []string {
	var falhas []string
	for nome, checar := range checagens {
		if checar == nil {
			checks[nome] = "disabled"
			continue
		}
		if err := checar(ctx); err != nil {
			checks[nome] = "failed"
			falhas = append(falhas, nome)
			continue
		}
		checks[nome] = "ok"
	}
	sort.Strings(falhas)
	return falhas
}
