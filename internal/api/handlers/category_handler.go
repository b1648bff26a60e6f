package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

// CategoryHandler expõe o catálogo de categorias com os contadores de unidades
type CategoryHandler struct {
	ferramentas FerramentaServico
}

func NewCategoryHandler(ferramentas FerramentaServico) *CategoryHandler {
	return &CategoryHandler{ferramentas: ferramentas}
}

// GetCategories godoc
// @Summary Lista as categorias com total e disponíveis
// @Tags categorias
// @Produce json
// @Param sort_by query string false "Ordenação" Enums(catalogo, count, alpha) default(catalogo)
// @Param include_empty query bool false "Incluir categorias sem unidades" default(true)
// @Success 200 {array} models.CategoriaResumo
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/categorias [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	sortBy := c.DefaultQuery("sort_by", "catalogo")
	validSortBy := map[string]bool{
		"catalogo": true,
		"count":    true,
		"alpha":    true,
	}
	if !validSortBy[sortBy] {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Parâmetro sort_by inválido",
			Details: "Valores válidos: catalogo, count, alpha",
		})
		return
	}

	resumos, err := h.ferramentas.ContagemPorCategoria(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if c.DefaultQuery("include_empty", "true") == "false" {
		filtrados := resumos[:0]
		for _, r := range resumos {
			if r.Total > 0 {
				filtrados = append(filtrados, r)
			}
		}
		resumos = filtrados
	}

	ordenarCategorias(resumos, sortBy)
	c.JSON(http.StatusOK, resumos)
}

// ordenarCategorias mantém a ordem do catálogo como desempate
func ordenarCategorias(resumos []models.CategoriaResumo, sortBy string) {
	switch sortBy {
	case "count":
		sort.SliceStable(resumos, func(i, j int) bool {
			return resumos[i].Total > resumos[j].Total
		})
	case "alpha":
		col := collate.New(language.BrazilianPortuguese, collate.Loose)
		sort.SliceStable(resumos, func(i, j int) bool {
			return col.CompareString(resumos[i].Nome, resumos[j].Nome) < 0
		})
	}
}

// parseIntQuery faz parse de query parameter inteiro com valor default
func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
