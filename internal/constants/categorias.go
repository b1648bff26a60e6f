package constants

import "sort"

// CategoriaInfo descreve uma categoria de ferramenta
type CategoriaInfo struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Icone string `json:"icone"`
}

// Catalogo mapeia o id da categoria para seus dados de exibição
type Catalogo map[string]CategoriaInfo

// CategoriaOutros recebe as ferramentas que não se encaixam nas demais
const CategoriaOutros = "6"

// CategoriasPadrao é a tabela única de categorias do sistema
var CategoriasPadrao = Catalogo{
	"1": {ID: "1", Nome: "Furadeiras", Icone: "build-outline"},
	"2": {ID: "2", Nome: "Chaves", Icone: "key-outline"},
	"3": {ID: "3", Nome: "Alicates", Icone: "cut-outline"},
	"4": {ID: "4", Nome: "Medidores", Icone: "speedometer-outline"},
	"5": {ID: "5", Nome: "Serras", Icone: "construct-outline"},
	"6": {ID: "6", Nome: "Outros", Icone: "ellipsis-horizontal-circle-outline"},
}

// Nome retorna o nome de exibição da categoria ou vazio se não existir
func (c Catalogo) Nome(id string) string {
	if info, ok := c[id]; ok {
		return info.Nome
	}
	return ""
}

// Valida indica se o id pertence ao catálogo
func (c Catalogo) Valida(id string) bool {
	_, ok := c[id]
	return ok
}

// Ordenadas retorna as categorias pela ordem numérica dos ids
func (c Catalogo) Ordenadas() []CategoriaInfo {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return menorID(ids[i], ids[j]) })

	out := make([]CategoriaInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, c[id])
	}
	return out
}

// menorID compara ids numéricos sem convertê-los: ids mais curtos vêm antes
func menorID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
