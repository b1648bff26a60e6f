package models

import "time"

// Situações possíveis de um empréstimo
const (
	StatusEmprestado = "emprestado"
	StatusDevolvido  = "devolvido"
)

// Emprestimo vincula uma unidade a um usuário durante o período de uso
type Emprestimo struct {
	ID              int64      `json:"id" db:"id"`
	FerramentaID    int64      `json:"ferramenta_id" db:"ferramenta_id"`
	UsuarioID       int64      `json:"usuario_id" db:"usuario_id"`
	UsuarioNome     string     `json:"usuario_nome,omitempty" db:"usuario_nome"`
	DataEmprestimo  time.Time  `json:"data_emprestimo" db:"data_emprestimo"`
	DataDevolucao   *time.Time `json:"data_devolucao,omitempty" db:"data_devolucao"`
	Status          string     `json:"status" db:"status"`
	LocalEmprestimo string     `json:"local_emprestimo,omitempty" db:"local_emprestimo"`
	LocalDevolucao  string     `json:"local_devolucao,omitempty" db:"local_devolucao"`
}

// Aberto indica se a unidade ainda não foi devolvida
func (e Emprestimo) Aberto() bool {
	return e.DataDevolucao == nil && e.Status != StatusDevolvido
}

// EmprestimoRequest registra um empréstimo de uma unidade específica ou de
// qualquer unidade disponível do grupo da unidade informada
type EmprestimoRequest struct {
	FerramentaID      int64  `json:"ferramenta_id" validate:"required_without=GrupoFerramentaID,omitempty,gt=0"`
	GrupoFerramentaID int64  `json:"grupo_ferramenta_id" validate:"required_without=FerramentaID,omitempty,gt=0"`
	LocalEmprestimo   string `json:"local_emprestimo" validate:"max=200"`
}

// DevolucaoRequest fecha um empréstimo
type DevolucaoRequest struct {
	LocalDevolucao string `json:"local_devolucao" validate:"max=200"`
}

// EmprestimoDetalhado é um empréstimo aberto com os dados da unidade
type EmprestimoDetalhado struct {
	Emprestimo
	Ferramenta Ferramenta `json:"ferramenta" db:"ferramenta"`
}

// ConfirmacaoRequest carrega a resposta do usuário a uma ação destrutiva
type ConfirmacaoRequest struct {
	Confirmar      bool   `json:"confirmar"`
	LocalDevolucao string `json:"local_devolucao,omitempty" validate:"max=200"`
}

// Ações planejadas antes de uma execução em lote
const (
	AcaoExcluir       = "excluir"
	AcaoDevolverGrupo = "devolver_grupo"
	AcaoNenhuma       = "nenhuma"
)

// Plano descreve o que uma ação destrutiva fará, sem executá-la.
// Na devolução em grupo, Emprestimos acompanha Afetadas na mesma ordem.
type Plano struct {
	Acao        string  `json:"acao"`
	Afetadas    []int64 `json:"afetadas"`
	Bloqueadas  []int64 `json:"bloqueadas,omitempty"`
	Emprestimos []int64 `json:"emprestimos,omitempty"`
	Mensagem    string  `json:"mensagem"`

	// ReferenciaID é a unidade usada para refazer o grupo após a execução
	ReferenciaID int64 `json:"referencia_id,omitempty"`
	UsuarioID    int64 `json:"-"`
}

// Executavel indica se há alguma unidade a processar
func (p Plano) Executavel() bool {
	return p.Acao != AcaoNenhuma && len(p.Afetadas) > 0
}

// Confirmacao é o resultado explícito do diálogo de confirmação
type Confirmacao struct {
	Confirmado bool
}

// PlanoResponse é devolvido quando a ação ainda precisa de confirmação
type PlanoResponse struct {
	Plano             Plano `json:"plano"`
	RequerConfirmacao bool  `json:"requer_confirmacao"`
}

// ResumoLote resume uma operação em lote
type ResumoLote struct {
	Sucessos int               `json:"sucessos"`
	Falhas   int               `json:"falhas"`
	Erros    []string          `json:"erros,omitempty"`
	Grupo    *GrupoFerramentas `json:"grupo,omitempty"`
}
