package agrupamento

import "github.com/prefeitura-rio/app-ferramentas/internal/models"

// BuscarDisponivel retorna a primeira unidade disponível do grupo, na ordem
// em que as unidades foram agrupadas, ou nil se não houver nenhuma.
// O retorno é uma cópia: alterá-lo não afeta o grupo.
func BuscarDisponivel(grupo *models.GrupoFerramentas) *models.Ferramenta {
	if grupo == nil {
		return nil
	}
	for _, f := range grupo.Ferramentas {
		if f.Disponivel {
			escolhida := f
			return &escolhida
		}
	}
	return nil
}

// ObterDisponiveis lista as unidades disponíveis preservando a ordem
func ObterDisponiveis(grupo *models.GrupoFerramentas) []models.Ferramenta {
	return filtrar(grupo, true)
}

// ObterEmprestadas lista as unidades emprestadas preservando a ordem
func ObterEmprestadas(grupo *models.GrupoFerramentas) []models.Ferramenta {
	return filtrar(grupo, false)
}

func filtrar(grupo *models.GrupoFerramentas, disponivel bool) []models.Ferramenta {
	out := make([]models.Ferramenta, 0)
	if grupo == nil {
		return out
	}
	for _, f := range grupo.Ferramentas {
		if f.Disponivel == disponivel {
			out = append(out, f)
		}
	}
	return out
}

// IDs extrai os ids das unidades na mesma ordem
func IDs(ferramentas []models.Ferramenta) []int64 {
	ids := make([]int64, 0, len(ferramentas))
	for _, f := range ferramentas {
		ids = append(ids, f.ID)
	}
	return ids
}
