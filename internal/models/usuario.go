package models

import "time"

// Usuario representa uma pessoa cadastrada no sistema
type Usuario struct {
	ID          int64      `json:"id" db:"id"`
	Nome        string     `json:"nome" db:"nome"`
	Senha       string     `json:"-" db:"senha"`
	Nascimento  *time.Time `json:"nascimento,omitempty" db:"nascimento"`
	Codigo      string     `json:"codigo,omitempty" db:"codigo"`
	Cargo       string     `json:"cargo,omitempty" db:"cargo"`
	DataCriacao time.Time  `json:"data_criacao" db:"data_criacao"`
}

// RegistroRequest cadastra um novo usuário
type RegistroRequest struct {
	Nome           string `json:"nome" validate:"required,min=3,max=100"`
	Senha          string `json:"senha" validate:"required,min=6,max=72"`
	ConfirmarSenha string `json:"confirmarSenha" validate:"required,eqfield=Senha"`
}

// LoginRequest autentica um usuário
type LoginRequest struct {
	Nome  string `json:"nome" validate:"required,max=100"`
	Senha string `json:"senha" validate:"required,max=72"`
}

// AtualizarUsuarioRequest atualiza o perfil do próprio usuário
type AtualizarUsuarioRequest struct {
	Nome       string `json:"nome" validate:"required,min=3,max=100"`
	Nascimento string `json:"nascimento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Codigo     string `json:"codigo,omitempty" validate:"max=50"`
	Cargo      string `json:"cargo,omitempty" validate:"max=100"`
}

// AlterarSenhaRequest troca a senha do próprio usuário
type AlterarSenhaRequest struct {
	SenhaAtual     string `json:"senhaAtual" validate:"required,max=72"`
	NovaSenha      string `json:"novaSenha" validate:"required,min=6,max=72"`
	ConfirmarSenha string `json:"confirmarSenha" validate:"required,eqfield=NovaSenha"`
}

// AuthResponse é retornado no login e no registro
type AuthResponse struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"usuario"`
}
