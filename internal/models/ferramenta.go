package models

import "time"

// Ferramenta representa uma unidade física de ferramenta, controlada individualmente
type Ferramenta struct {
	ID            int64     `json:"id" db:"id"`
	Nome          string    `json:"nome" db:"nome"`
	CategoriaID   string    `json:"categoria_id,omitempty" db:"categoria_id"`
	CategoriaNome string    `json:"categoria_nome,omitempty" db:"categoria_nome"`
	Patrimonio    string    `json:"patrimonio" db:"patrimonio"`
	Disponivel    bool      `json:"disponivel" db:"disponivel"`
	ImagemURL     string    `json:"imagem_url,omitempty" db:"imagem_url"`
	Detalhes      string    `json:"detalhes,omitempty" db:"detalhes"`
	Local         string    `json:"local,omitempty" db:"local"`
	QRCodeURL     string    `json:"qrcode_url,omitempty" db:"qrcode_url"`
	AdicionadoPor int64     `json:"adicionado_por,omitempty" db:"adicionado_por"`
	DataCriacao   time.Time `json:"data_criacao" db:"data_criacao"`
}

// GrupoFerramentas é a visão agregada das unidades que compartilham nome e categoria.
// É calculado a cada consulta e nunca persistido.
type GrupoFerramentas struct {
	ID             string       `json:"id"`
	Nome           string       `json:"nome"`
	CategoriaID    string       `json:"categoria_id,omitempty"`
	CategoriaNome  string       `json:"categoria_nome,omitempty"`
	ImagemURL      string       `json:"imagem_url,omitempty"`
	Detalhes       string       `json:"detalhes,omitempty"`
	Local          string       `json:"local,omitempty"`
	PatrimonioBase string       `json:"patrimonio_base,omitempty"`
	AdicionadoPor  int64        `json:"adicionado_por,omitempty"`
	DataCriacao    time.Time    `json:"data_criacao"`
	Total          int          `json:"total"`
	Disponivel     int          `json:"disponivel"`
	Ferramentas    []Ferramenta `json:"ferramentas"`
}

// FerramentaRequest representa os dados de entrada para cadastrar uma ferramenta com patrimônio
type FerramentaRequest struct {
	Nome        string `json:"nome" validate:"required,max=200"`
	CategoriaID string `json:"categoria_id" validate:"required,max=20"`
	Patrimonio  string `json:"patrimonio" validate:"required,max=120"`
	Local       string `json:"local" validate:"required,max=200"`
	Detalhes    string `json:"detalhes,omitempty" validate:"max=20000"`
	ImagemURL   string `json:"imagem_url,omitempty" validate:"omitempty,url"`
}

// FerramentaSemPatrimonioRequest cadastra várias unidades iguais sem patrimônio real
type FerramentaSemPatrimonioRequest struct {
	Nome        string `json:"nome" validate:"required,max=200"`
	CategoriaID string `json:"categoria_id" validate:"required,max=20"`
	Local       string `json:"local" validate:"required,max=200"`
	Detalhes    string `json:"detalhes,omitempty" validate:"max=20000"`
	ImagemURL   string `json:"imagem_url,omitempty" validate:"omitempty,url"`
	Quantidade  int    `json:"quantidade" validate:"required,min=1,max=100"`
}

// AtualizarFerramentaRequest contém os campos editáveis de uma unidade
type AtualizarFerramentaRequest struct {
	Nome        string `json:"nome" validate:"required,max=200"`
	CategoriaID string `json:"categoria_id,omitempty" validate:"max=20"`
	Local       string `json:"local,omitempty" validate:"max=200"`
	Detalhes    string `json:"detalhes,omitempty" validate:"max=20000"`
	ImagemURL   string `json:"imagem_url,omitempty" validate:"omitempty,url"`
}

// QRCodeRequest atualiza o conteúdo do QR code de uma unidade
type QRCodeRequest struct {
	QRCodeURL string `json:"qrcode_url" validate:"required,max=2000"`
}

// ExclusaoRequest pede a exclusão de várias unidades de uma vez
type ExclusaoRequest struct {
	IDs       []int64 `json:"ids" validate:"required,min=1,max=500,dive,gt=0"`
	Confirmar bool    `json:"confirmar"`
}

// FiltroFerramentas restringe a listagem agrupada
type FiltroFerramentas struct {
	CategoriaID string
	Busca       string
}

// GrupoDetalhe é o grupo de uma unidade junto com a unidade escolhida para ação
type GrupoDetalhe struct {
	Grupo        GrupoFerramentas `json:"grupo"`
	Selecionada  Ferramenta       `json:"selecionada"`
	DetalhesHTML string           `json:"detalhes_html,omitempty"`
}

// FerramentaUso é uma unidade com a quantidade de empréstimos já registrados
type FerramentaUso struct {
	Ferramenta
	TotalEmprestimos int `json:"total_emprestimos" db:"total_emprestimos"`
}

// ListaGruposResponse representa a resposta de listagem agrupada
type ListaGruposResponse struct {
	Total  int                `json:"total"`
	Grupos []GrupoFerramentas `json:"grupos"`
}

// UploadResponse é o retorno do envio de imagem
type UploadResponse struct {
	URL string `json:"url"`
}

// IdentificacaoResponse é a sugestão de cadastro gerada a partir de uma foto
type IdentificacaoResponse struct {
	Nome          string `json:"nome"`
	CategoriaID   string `json:"categoria_id"`
	CategoriaNome string `json:"categoria_nome"`
	Detalhes      string `json:"detalhes,omitempty"`
}
