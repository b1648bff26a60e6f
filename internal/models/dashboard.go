package models

// Estatisticas alimenta o painel de uso
type Estatisticas struct {
	TotalFerramentas   int              `json:"total_ferramentas"`
	Disponiveis        int              `json:"disponiveis"`
	EmUso              int              `json:"em_uso"`
	TotalEmprestimos   int              `json:"total_emprestimos"`
	EmprestimosHoje    int              `json:"emprestimos_hoje"`
	TempoMedioHoras    int              `json:"tempo_medio_horas"`
	CategoriaMaisUsada string           `json:"categoria_mais_usada"`
	TopUsuarios        []UsoUsuario     `json:"top_usuarios"`
	TendenciaSemanal   []PontoTendencia `json:"tendencia_semanal"`
}

// UsoUsuario conta empréstimos por usuário
type UsoUsuario struct {
	UsuarioID   int64  `json:"usuario_id"`
	Nome        string `json:"nome"`
	Emprestimos int    `json:"emprestimos"`
}

// PontoTendencia é a quantidade de empréstimos de um dia
type PontoTendencia struct {
	Dia         string `json:"dia"`
	Data        string `json:"data"`
	Emprestimos int    `json:"emprestimos"`
}

// CategoriaResumo é uma entrada do catálogo com a contagem de unidades
type CategoriaResumo struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	Icone      string `json:"icone"`
	Total      int    `json:"total"`
	Disponivel int    `json:"disponivel"`
}
