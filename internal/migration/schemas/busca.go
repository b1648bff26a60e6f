package schemas

import (
	"github.com/typesense/typesense-go/v3/typesense/api"
)

// SchemaFerramentas retorna o schema da collection de busca textual das ferramentas
func SchemaFerramentas(nome string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: nome,
		Fields: []api.Field{
			{Name: "ferramenta_id", Type: "int64"},
			{Name: "nome", Type: "string", Locale: StringPtr("pt")},
			{Name: "nome_normalizado", Type: "string"},
			{Name: "categoria_id", Type: "string", Facet: BoolPtr(true), Optional: BoolPtr(true)},
			{Name: "categoria_nome", Type: "string", Facet: BoolPtr(true), Optional: BoolPtr(true)},
			{Name: "patrimonio", Type: "string"},
			{Name: "local", Type: "string", Optional: BoolPtr(true)},
			{Name: "detalhes", Type: "string", Optional: BoolPtr(true)},
			{Name: "disponivel", Type: "bool", Facet: BoolPtr(true)},
			{Name: "data_criacao", Type: "int64"},
		},
		DefaultSortingField: StringPtr("data_criacao"),
	}
}
