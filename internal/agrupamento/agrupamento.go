// Package agrupamento reúne as unidades de ferramentas em grupos por nome e
// categoria e escolhe unidades disponíveis para as ações de empréstimo.
//
// Todas as funções são puras: não fazem I/O, não guardam estado entre chamadas
// e podem ser chamadas concorrentemente.
package agrupamento

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prefeitura-rio/app-ferramentas/internal/constants"
	"github.com/prefeitura-rio/app-ferramentas/internal/models"
)

const (
	// SemCategoria substitui a categoria ausente na chave do grupo
	SemCategoria = "sem_categoria"

	// PrefixoSemPatrimonio marca unidades cadastradas sem patrimônio real
	PrefixoSemPatrimonio = "SEM PATRIMONIO"
)

// chave identifica um grupo. O par é comparado campo a campo, então nomes ou
// categorias contendo "_" não colidem entre si.
type chave struct {
	nome      string
	categoria string
}

// ChaveCategoria normaliza a categoria usada no agrupamento
func ChaveCategoria(categoriaID string) string {
	if categoriaID == "" {
		return SemCategoria
	}
	return categoriaID
}

var escapeNome = strings.NewReplacer(`\`, `\\`, "_", `\_`)

// IDGrupo monta o identificador sintético de um grupo. "\" e "_" do nome são
// escapados, então o primeiro "_" sem escape separa nome e categoria e grupos
// distintos nunca compartilham o id.
func IDGrupo(nome, categoriaID string) string {
	return escapeNome.Replace(nome) + "_" + ChaveCategoria(categoriaID)
}

// Agrupar converte a lista de unidades em grupos ordenados pelo nome.
// Os campos representativos de cada grupo vêm da primeira unidade encontrada
// e as unidades mantêm a ordem de entrada.
func Agrupar(ferramentas []models.Ferramenta) []models.GrupoFerramentas {
	return AgruparComCatalogo(ferramentas, nil)
}

// AgruparComCatalogo funciona como Agrupar e preenche o nome da categoria a
// partir do catálogo quando a unidade representativa não o traz.
func AgruparComCatalogo(ferramentas []models.Ferramenta, catalogo constants.Catalogo) []models.GrupoFerramentas {
	indices := make(map[chave]int, len(ferramentas))
	grupos := make([]models.GrupoFerramentas, 0)

	for _, f := range ferramentas {
		k := chave{nome: f.Nome, categoria: ChaveCategoria(f.CategoriaID)}

		i, ok := indices[k]
		if !ok {
			grupos = append(grupos, novoGrupo(f, catalogo))
			i = len(grupos) - 1
			indices[k] = i
		}

		g := &grupos[i]
		g.Ferramentas = append(g.Ferramentas, f)
		g.Total++
		if f.Disponivel {
			g.Disponivel++
		}
	}

	ordenarPorNome(grupos)
	return grupos
}

func novoGrupo(f models.Ferramenta, catalogo constants.Catalogo) models.GrupoFerramentas {
	categoriaNome := f.CategoriaNome
	if categoriaNome == "" && catalogo != nil {
		categoriaNome = catalogo.Nome(f.CategoriaID)
	}

	return models.GrupoFerramentas{
		ID:             IDGrupo(f.Nome, f.CategoriaID),
		Nome:           f.Nome,
		CategoriaID:    f.CategoriaID,
		CategoriaNome:  categoriaNome,
		ImagemURL:      f.ImagemURL,
		Detalhes:       f.Detalhes,
		Local:          f.Local,
		PatrimonioBase: f.Patrimonio,
		AdicionadoPor:  f.AdicionadoPor,
		DataCriacao:    f.DataCriacao,
		Ferramentas:    make([]models.Ferramenta, 0, 1),
	}
}

// ordenarPorNome usa a ordem alfabética do português do Brasil.
// O collator não é seguro para uso concorrente, por isso é criado a cada chamada.
func ordenarPorNome(grupos []models.GrupoFerramentas) {
	if len(grupos) < 2 {
		return
	}
	c := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(grupos, func(i, j int) bool {
		return c.CompareString(grupos[i].Nome, grupos[j].Nome) < 0
	})
}

// FormatarPatrimonio prepara o patrimônio para exibição, escondendo o sufixo
// gerado das unidades sem patrimônio real.
func FormatarPatrimonio(patrimonio string) string {
	if strings.HasPrefix(patrimonio, PrefixoSemPatrimonio) {
		return PrefixoSemPatrimonio
	}
	return patrimonio
}
