package services

import "errors"

// Erros de negócio traduzidos para status HTTP pelos handlers
var (
	ErrFerramentaNaoEncontrada   = errors.New("ferramenta não encontrada")
	ErrPatrimonioDuplicado       = errors.New("patrimônio já cadastrado")
	ErrCategoriaInvalida         = errors.New("categoria inválida")
	ErrQuantidadeInvalida        = errors.New("quantidade deve estar entre 1 e 100")
	ErrQRCodeInvalido            = errors.New("QR code não reconhecido")
	ErrFerramentaEmUso           = errors.New("ferramenta possui empréstimo em aberto")
	ErrFerramentaIndisponivel    = errors.New("ferramenta já está emprestada")
	ErrSemUnidadeDisponivel      = errors.New("nenhuma unidade disponível neste grupo")
	ErrEmprestimoNaoEncontrado   = errors.New("empréstimo não encontrado")
	ErrEmprestimoJaDevolvido     = errors.New("empréstimo já foi devolvido")
	ErrNaoResponsavel            = errors.New("apenas quem retirou a ferramenta pode devolvê-la")
	ErrConfirmacaoNecessaria     = errors.New("ação requer confirmação")
	ErrUsuarioNaoEncontrado      = errors.New("usuário não encontrado")
	ErrNomeEmUso                 = errors.New("nome de usuário já cadastrado")
	ErrCredenciaisInvalidas      = errors.New("usuário ou senha inválidos")
	ErrSenhaAtualIncorreta       = errors.New("senha atual incorreta")
	ErrAcessoNegado              = errors.New("acesso negado")
	ErrTokenInvalido             = errors.New("token inválido ou expirado")
	ErrIdentificacaoIndisponivel = errors.New("identificação por imagem não configurada")
	ErrIdentificacaoFalhou       = errors.New("não foi possível identificar a ferramenta")
	ErrImagemInvalida            = errors.New("imagem inválida")
)
